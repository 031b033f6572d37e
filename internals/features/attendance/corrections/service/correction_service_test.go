package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/attendance/corrections/model"
	"kampusku_backend/internals/features/attendance/corrections/repository"
	recmodel "kampusku_backend/internals/features/attendance/records/model"
	recservice "kampusku_backend/internals/features/attendance/records/service"
)

/* ===================== fakes ===================== */

type fakeCorrectionRepo struct {
	byID map[uuid.UUID]*model.AttendanceCorrectionModel
}

func newFakeCorrectionRepo() *fakeCorrectionRepo {
	return &fakeCorrectionRepo{byID: make(map[uuid.UUID]*model.AttendanceCorrectionModel)}
}

func (f *fakeCorrectionRepo) Create(_ context.Context, m *model.AttendanceCorrectionModel) error {
	m.AttendanceCorrectionId = uuid.New()
	m.AttendanceCorrectionCreatedAt = time.Now()
	cp := *m
	f.byID[m.AttendanceCorrectionId] = &cp
	return nil
}

func (f *fakeCorrectionRepo) HasPending(_ context.Context, recordID, studentID uuid.UUID) (bool, error) {
	for _, m := range f.byID {
		if m.AttendanceCorrectionRecordId == recordID &&
			m.AttendanceCorrectionStudentId == studentID &&
			m.AttendanceCorrectionStatus == model.CorrectionStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCorrectionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AttendanceCorrectionModel, error) {
	if m, ok := f.byID[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCorrectionRepo) Update(_ context.Context, m *model.AttendanceCorrectionModel) error {
	cp := *m
	f.byID[m.AttendanceCorrectionId] = &cp
	return nil
}

type fakeRecordStore struct {
	byID map[uuid.UUID]*recmodel.AttendanceRecordModel
}

func (f *fakeRecordStore) FindByID(_ context.Context, id uuid.UUID) (*recmodel.AttendanceRecordModel, error) {
	if m, ok := f.byID[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRecordStore) UpdateStatus(_ context.Context, id uuid.UUID, status recmodel.AttendanceStatus) error {
	m, ok := f.byID[id]
	if !ok {
		return errors.New("record hilang")
	}
	m.AttendanceRecordStatus = status
	return nil
}

// ListPendingByMarker di fake meniru join repo: pending + marked_by.
func (f *fakeCorrectionRepo) listPendingByMarkerWith(records *fakeRecordStore, facultyID uuid.UUID) []repository.PendingCorrectionRow {
	var out []repository.PendingCorrectionRow
	for _, m := range f.byID {
		if m.AttendanceCorrectionStatus != model.CorrectionStatusPending {
			continue
		}
		rec, ok := records.byID[m.AttendanceCorrectionRecordId]
		if !ok || rec.AttendanceRecordMarkedBy != facultyID {
			continue
		}
		out = append(out, repository.PendingCorrectionRow{
			AttendanceCorrectionId:        m.AttendanceCorrectionId,
			AttendanceCorrectionRecordId:  m.AttendanceCorrectionRecordId,
			AttendanceCorrectionStudentId: m.AttendanceCorrectionStudentId,
			AttendanceCorrectionReason:    m.AttendanceCorrectionReason,
			AttendanceCorrectionCreatedAt: m.AttendanceCorrectionCreatedAt,
			RecordCourseId:                rec.AttendanceRecordCourseId,
			RecordDate:                    rec.AttendanceRecordDate,
			RecordStatus:                  rec.AttendanceRecordStatus,
		})
	}
	return out
}

type fakeCorrectionRepoWithJoin struct {
	*fakeCorrectionRepo
	records *fakeRecordStore
}

func (f *fakeCorrectionRepoWithJoin) ListPendingByMarker(_ context.Context, facultyID uuid.UUID) ([]repository.PendingCorrectionRow, error) {
	return f.listPendingByMarkerWith(f.records, facultyID), nil
}

/* ===================== setup ===================== */

type fixture struct {
	svc      *CorrectionService
	corrRepo *fakeCorrectionRepoWithJoin
	records  *fakeRecordStore
	student  uuid.UUID
	faculty  uuid.UUID
	recordID uuid.UUID
}

func newFixture() *fixture {
	student := uuid.New()
	faculty := uuid.New()
	recordID := uuid.New()
	records := &fakeRecordStore{byID: map[uuid.UUID]*recmodel.AttendanceRecordModel{
		recordID: {
			AttendanceRecordId:        recordID,
			AttendanceRecordStudentId: student,
			AttendanceRecordCourseId:  uuid.New(),
			AttendanceRecordDate:      time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
			AttendanceRecordStatus:    recmodel.AttendanceStatusAbsent,
			AttendanceRecordMarkedBy:  faculty,
		},
	}}
	corrRepo := &fakeCorrectionRepoWithJoin{fakeCorrectionRepo: newFakeCorrectionRepo(), records: records}
	return &fixture{
		svc:      NewCorrectionService(corrRepo, records),
		corrRepo: corrRepo,
		records:  records,
		student:  student,
		faculty:  faculty,
		recordID: recordID,
	}
}

func statusPtr(s recmodel.AttendanceStatus) *recmodel.AttendanceStatus { return &s }

/* ===================== Submit ===================== */

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("sukses = pending", func(t *testing.T) {
		fx := newFixture()
		m, err := fx.svc.Submit(ctx, fx.recordID, fx.student, "saya hadir hari itu")
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if m.AttendanceCorrectionStatus != model.CorrectionStatusPending {
			t.Errorf("status = %s, want pending", m.AttendanceCorrectionStatus)
		}
	})

	t.Run("record tidak ada", func(t *testing.T) {
		fx := newFixture()
		_, err := fx.svc.Submit(ctx, uuid.New(), fx.student, "alasan")
		if !errors.Is(err, recservice.ErrRecordNotFound) {
			t.Fatalf("err = %v, want ErrRecordNotFound", err)
		}
	})

	t.Run("record milik student lain = not found", func(t *testing.T) {
		fx := newFixture()
		_, err := fx.svc.Submit(ctx, fx.recordID, uuid.New(), "alasan")
		if !errors.Is(err, recservice.ErrRecordNotFound) {
			t.Fatalf("err = %v, want ErrRecordNotFound", err)
		}
	})

	t.Run("duplikat pending = conflict", func(t *testing.T) {
		fx := newFixture()
		if _, err := fx.svc.Submit(ctx, fx.recordID, fx.student, "pertama"); err != nil {
			t.Fatalf("submit pertama: %v", err)
		}
		_, err := fx.svc.Submit(ctx, fx.recordID, fx.student, "kedua")
		if !errors.Is(err, ErrDuplicatePendingRequest) {
			t.Fatalf("err = %v, want ErrDuplicatePendingRequest", err)
		}
	})

	t.Run("setelah direview boleh submit lagi", func(t *testing.T) {
		fx := newFixture()
		first, _ := fx.svc.Submit(ctx, fx.recordID, fx.student, "pertama")
		if _, err := fx.svc.Review(ctx, first.AttendanceCorrectionId, DecisionRejected, fx.faculty, nil, nil); err != nil {
			t.Fatalf("review: %v", err)
		}
		if _, err := fx.svc.Submit(ctx, fx.recordID, fx.student, "kedua"); err != nil {
			t.Fatalf("submit kedua: %v", err)
		}
	})
}

/* ===================== ListPendingForFaculty ===================== */

func TestListPendingForFaculty(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	if _, err := fx.svc.Submit(ctx, fx.recordID, fx.student, "saya hadir"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	rows, err := fx.svc.ListPendingForFaculty(ctx, fx.faculty)
	if err != nil {
		t.Fatalf("ListPendingForFaculty: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].RecordStatus != recmodel.AttendanceStatusAbsent {
		t.Errorf("record status = %s, want absent", rows[0].RecordStatus)
	}

	// faculty lain tidak melihat antrian ini
	other, err := fx.svc.ListPendingForFaculty(ctx, uuid.New())
	if err != nil {
		t.Fatalf("ListPendingForFaculty(other): %v", err)
	}
	if len(other) != 0 {
		t.Errorf("rows faculty lain = %d, want 0", len(other))
	}
}

/* ===================== Review ===================== */

func TestReview(t *testing.T) {
	ctx := context.Background()
	note := "bukti valid"

	t.Run("id tidak dikenal", func(t *testing.T) {
		fx := newFixture()
		_, err := fx.svc.Review(ctx, uuid.New(), DecisionApproved, fx.faculty, nil, statusPtr(recmodel.AttendanceStatusPresent))
		if !errors.Is(err, ErrCorrectionNotFound) {
			t.Fatalf("err = %v, want ErrCorrectionNotFound", err)
		}
	})

	t.Run("keputusan tidak dikenal", func(t *testing.T) {
		fx := newFixture()
		req, _ := fx.svc.Submit(ctx, fx.recordID, fx.student, "alasan")
		_, err := fx.svc.Review(ctx, req.AttendanceCorrectionId, "maybe", fx.faculty, nil, nil)
		if !errors.Is(err, ErrInvalidDecision) {
			t.Fatalf("err = %v, want ErrInvalidDecision", err)
		}
	})

	t.Run("approve tanpa status koreksi", func(t *testing.T) {
		fx := newFixture()
		req, _ := fx.svc.Submit(ctx, fx.recordID, fx.student, "alasan")
		_, err := fx.svc.Review(ctx, req.AttendanceCorrectionId, DecisionApproved, fx.faculty, nil, nil)
		if !errors.Is(err, ErrCorrectedStatusRequired) {
			t.Fatalf("err = %v, want ErrCorrectedStatusRequired", err)
		}
	})

	t.Run("bukan penanda record = forbidden", func(t *testing.T) {
		fx := newFixture()
		req, _ := fx.svc.Submit(ctx, fx.recordID, fx.student, "alasan")
		_, err := fx.svc.Review(ctx, req.AttendanceCorrectionId, DecisionApproved, uuid.New(), nil, statusPtr(recmodel.AttendanceStatusPresent))
		if !errors.Is(err, ErrNotRecordMarker) {
			t.Fatalf("err = %v, want ErrNotRecordMarker", err)
		}
	})

	t.Run("approve memutasi record + stempel reviewer", func(t *testing.T) {
		fx := newFixture()
		req, _ := fx.svc.Submit(ctx, fx.recordID, fx.student, "alasan")
		got, err := fx.svc.Review(ctx, req.AttendanceCorrectionId, DecisionApproved, fx.faculty, &note, statusPtr(recmodel.AttendanceStatusPresent))
		if err != nil {
			t.Fatalf("Review: %v", err)
		}
		if got.AttendanceCorrectionStatus != model.CorrectionStatusApproved {
			t.Errorf("status = %s, want approved", got.AttendanceCorrectionStatus)
		}
		if got.AttendanceCorrectionReviewerId == nil || *got.AttendanceCorrectionReviewerId != fx.faculty {
			t.Error("reviewer tidak terstempel")
		}
		if got.AttendanceCorrectionReviewedAt == nil {
			t.Error("reviewed_at kosong")
		}
		if rec := fx.records.byID[fx.recordID]; rec.AttendanceRecordStatus != recmodel.AttendanceStatusPresent {
			t.Errorf("record status = %s, want present", rec.AttendanceRecordStatus)
		}
	})

	t.Run("reject tidak menyentuh record", func(t *testing.T) {
		fx := newFixture()
		req, _ := fx.svc.Submit(ctx, fx.recordID, fx.student, "alasan")
		got, err := fx.svc.Review(ctx, req.AttendanceCorrectionId, DecisionRejected, fx.faculty, &note, nil)
		if err != nil {
			t.Fatalf("Review: %v", err)
		}
		if got.AttendanceCorrectionStatus != model.CorrectionStatusRejected {
			t.Errorf("status = %s, want rejected", got.AttendanceCorrectionStatus)
		}
		if rec := fx.records.byID[fx.recordID]; rec.AttendanceRecordStatus != recmodel.AttendanceStatusAbsent {
			t.Errorf("record status = %s, want absent (tidak berubah)", rec.AttendanceRecordStatus)
		}
	})

	t.Run("request terminal tidak bisa direview ulang", func(t *testing.T) {
		fx := newFixture()
		req, _ := fx.svc.Submit(ctx, fx.recordID, fx.student, "alasan")
		if _, err := fx.svc.Review(ctx, req.AttendanceCorrectionId, DecisionApproved, fx.faculty, nil, statusPtr(recmodel.AttendanceStatusPresent)); err != nil {
			t.Fatalf("review pertama: %v", err)
		}
		_, err := fx.svc.Review(ctx, req.AttendanceCorrectionId, DecisionRejected, fx.faculty, nil, nil)
		if !errors.Is(err, ErrRequestNotPending) {
			t.Fatalf("err = %v, want ErrRequestNotPending", err)
		}
	})
}
