package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	recmodel "kampusku_backend/internals/features/attendance/records/model"
	recrepo "kampusku_backend/internals/features/attendance/records/repository"
	"kampusku_backend/internals/features/attendance/reports/model"
)

/* ===================== fakes ===================== */

type fakeRecordSource struct {
	pairs  []recrepo.StudentCoursePair
	counts map[string]map[recmodel.AttendanceStatus]int64 // key: student|course
	failOn *uuid.UUID                                     // student yang selalu error
}

func pairKey(studentID, courseID uuid.UUID) string {
	return studentID.String() + "|" + courseID.String()
}

func (f *fakeRecordSource) DistinctPairsInMonth(_ context.Context, _, _ int, courseID *uuid.UUID) ([]recrepo.StudentCoursePair, error) {
	if courseID == nil {
		return f.pairs, nil
	}
	var out []recrepo.StudentCoursePair
	for _, p := range f.pairs {
		if p.CourseId == *courseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRecordSource) StatusCountsInMonth(_ context.Context, studentID, courseID uuid.UUID, _, _ int) (map[recmodel.AttendanceStatus]int64, error) {
	if f.failOn != nil && *f.failOn == studentID {
		return nil, errors.New("koneksi putus")
	}
	return f.counts[pairKey(studentID, courseID)], nil
}

type fakeReportRepo struct {
	byKey map[string]*model.AttendanceReportModel // student|course|month|year
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{byKey: make(map[string]*model.AttendanceReportModel)}
}

func (f *fakeReportRepo) Upsert(_ context.Context, m *model.AttendanceReportModel) error {
	k := fmt.Sprintf("%s|%s|%d|%d",
		m.AttendanceReportStudentId, m.AttendanceReportCourseId,
		m.AttendanceReportMonth, m.AttendanceReportYear)
	cp := *m
	f.byKey[k] = &cp
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

/* ===================== tests ===================== */

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	studentA := uuid.New()
	studentB := uuid.New()
	courseX := uuid.New()
	courseY := uuid.New()

	newSource := func() *fakeRecordSource {
		return &fakeRecordSource{
			pairs: []recrepo.StudentCoursePair{
				{StudentId: studentA, CourseId: courseX},
				{StudentId: studentB, CourseId: courseX},
				{StudentId: studentA, CourseId: courseY},
			},
			counts: map[string]map[recmodel.AttendanceStatus]int64{
				pairKey(studentA, courseX): {
					recmodel.AttendanceStatusPresent: 2,
					recmodel.AttendanceStatusAbsent:  1,
				},
				pairKey(studentB, courseX): {
					recmodel.AttendanceStatusPresent: 4,
				},
				pairKey(studentA, courseY): {
					recmodel.AttendanceStatusLate:   1,
					recmodel.AttendanceStatusAbsent: 1,
				},
			},
		}
	}

	t.Run("periode tidak valid", func(t *testing.T) {
		gen := NewReportGenerator(newSource(), newFakeReportRepo(), 75, quietLogger())
		for _, p := range []struct{ m, y int }{{0, 2024}, {13, 2024}, {3, 1999}} {
			if _, err := gen.Generate(ctx, p.m, p.y, nil); !errors.Is(err, ErrInvalidPeriod) {
				t.Errorf("Generate(%02d/%d) err = %v, want ErrInvalidPeriod", p.m, p.y, err)
			}
		}
	})

	t.Run("satu laporan per pasangan, metrik benar", func(t *testing.T) {
		reports := newFakeReportRepo()
		gen := NewReportGenerator(newSource(), reports, 75, quietLogger())

		res, err := gen.Generate(ctx, 3, 2024, nil)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if res.Generated != 3 || res.Failed != 0 {
			t.Fatalf("generated/failed = %d/%d, want 3/0", res.Generated, res.Failed)
		}
		if len(reports.byKey) != 3 {
			t.Fatalf("laporan tersimpan = %d, want 3", len(reports.byKey))
		}

		got := reports.byKey[fmt.Sprintf("%s|%s|3|2024", studentA, courseX)]
		if got == nil {
			t.Fatal("laporan studentA/courseX tidak ada")
		}
		if got.AttendanceReportPercentage != 66.67 {
			t.Errorf("percentage = %v, want 66.67", got.AttendanceReportPercentage)
		}
		if got.AttendanceReportPresentCount != 2 || got.AttendanceReportAbsentCount != 1 || got.AttendanceReportTotalCount != 3 {
			t.Errorf("counts = %d/%d/%d, want 2/1/3",
				got.AttendanceReportPresentCount, got.AttendanceReportAbsentCount, got.AttendanceReportTotalCount)
		}
		if late, ok := got.AttendanceReportStatusBreakdown["late"]; !ok || late != int64(0) {
			t.Errorf("breakdown[late] = %v, want 0", late)
		}

		// late masuk hadir: 1/(2-0) dengan 1 absent → 50.00
		gotY := reports.byKey[fmt.Sprintf("%s|%s|3|2024", studentA, courseY)]
		if gotY.AttendanceReportPercentage != 50.00 {
			t.Errorf("percentage courseY = %v, want 50.00", gotY.AttendanceReportPercentage)
		}
	})

	t.Run("generate ulang idempotent", func(t *testing.T) {
		reports := newFakeReportRepo()
		gen := NewReportGenerator(newSource(), reports, 75, quietLogger())

		if _, err := gen.Generate(ctx, 3, 2024, nil); err != nil {
			t.Fatalf("generate pertama: %v", err)
		}
		if _, err := gen.Generate(ctx, 3, 2024, nil); err != nil {
			t.Fatalf("generate kedua: %v", err)
		}
		if len(reports.byKey) != 3 {
			t.Errorf("laporan setelah 2x generate = %d, want 3 (replace, bukan duplikat)", len(reports.byKey))
		}
	})

	t.Run("dibatasi satu course", func(t *testing.T) {
		reports := newFakeReportRepo()
		gen := NewReportGenerator(newSource(), reports, 75, quietLogger())

		res, err := gen.Generate(ctx, 3, 2024, &courseY)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if res.Generated != 1 || len(reports.byKey) != 1 {
			t.Errorf("generated = %d, tersimpan = %d, want 1/1", res.Generated, len(reports.byKey))
		}
	})

	t.Run("pasangan gagal tidak menghentikan batch", func(t *testing.T) {
		src := newSource()
		src.failOn = &studentB
		reports := newFakeReportRepo()
		gen := NewReportGenerator(src, reports, 75, quietLogger())

		res, err := gen.Generate(ctx, 3, 2024, nil)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if res.Generated != 2 || res.Failed != 1 {
			t.Errorf("generated/failed = %d/%d, want 2/1", res.Generated, res.Failed)
		}
		if len(reports.byKey) != 2 {
			t.Errorf("laporan tersimpan = %d, want 2", len(reports.byKey))
		}
	})
}
