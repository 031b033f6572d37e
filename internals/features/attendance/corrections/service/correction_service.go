package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/attendance/corrections/model"
	"kampusku_backend/internals/features/attendance/corrections/repository"
	recmodel "kampusku_backend/internals/features/attendance/records/model"
	recservice "kampusku_backend/internals/features/attendance/records/service"
)

var (
	ErrCorrectionNotFound      = errors.New("request koreksi tidak ditemukan")
	ErrDuplicatePendingRequest = errors.New("masih ada request koreksi pending untuk record ini")
	ErrRequestNotPending       = errors.New("request koreksi sudah direview")
	ErrCorrectedStatusRequired = errors.New("status koreksi wajib diisi saat approve")
	ErrInvalidDecision         = errors.New("keputusan review tidak dikenal")
	ErrNotRecordMarker         = errors.New("hanya faculty yang menandai record yang boleh me-review")
)

/* =========================================================
 * DEPENDENCIES
 * ========================================================= */

type CorrectionRepository interface {
	Create(ctx context.Context, m *model.AttendanceCorrectionModel) error
	HasPending(ctx context.Context, recordID, studentID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceCorrectionModel, error)
	ListPendingByMarker(ctx context.Context, facultyID uuid.UUID) ([]repository.PendingCorrectionRow, error)
	Update(ctx context.Context, m *model.AttendanceCorrectionModel) error
}

// RecordStore: akses record yang disengketakan (subset repo records).
type RecordStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*recmodel.AttendanceRecordModel, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status recmodel.AttendanceStatus) error
}

/* =========================================================
 * SERVICE (workflow koreksi absensi)
 * ========================================================= */

type CorrectionService struct {
	Corrections CorrectionRepository
	Records     RecordStore
}

func NewCorrectionService(corrections CorrectionRepository, records RecordStore) *CorrectionService {
	return &CorrectionService{Corrections: corrections, Records: records}
}

// Submit: student mengajukan sengketa atas satu record miliknya.
// Maks. satu pending per (record, student).
func (s *CorrectionService) Submit(ctx context.Context, recordID, studentID uuid.UUID, reason string) (*model.AttendanceCorrectionModel, error) {
	rec, err := s.Records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	// record orang lain diperlakukan sama dengan tidak ada
	if rec == nil || rec.AttendanceRecordStudentId != studentID {
		return nil, fmt.Errorf("%w: %s", recservice.ErrRecordNotFound, recordID)
	}

	exists, err := s.Corrections.HasPending(ctx, recordID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: record %s", ErrDuplicatePendingRequest, recordID)
	}

	m := &model.AttendanceCorrectionModel{
		AttendanceCorrectionRecordId:  recordID,
		AttendanceCorrectionStudentId: studentID,
		AttendanceCorrectionReason:    reason,
		AttendanceCorrectionStatus:    model.CorrectionStatusPending,
	}
	if err := s.Corrections.Create(ctx, m); err != nil {
		// backstop: partial unique index saat dua submit balapan
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: record %s", ErrDuplicatePendingRequest, recordID)
		}
		return nil, err
	}
	return m, nil
}

// ListPendingForFaculty: antrian review milik faculty tsb.
func (s *CorrectionService) ListPendingForFaculty(ctx context.Context, facultyID uuid.UUID) ([]repository.PendingCorrectionRow, error) {
	return s.Corrections.ListPendingByMarker(ctx, facultyID)
}

/* ===================== REVIEW ===================== */

type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "approved"
	DecisionRejected ReviewDecision = "rejected"
)

// Review: transisi pending → approved|rejected, sekali saja.
//
// Approve WAJIB membawa correctedStatus (kontrak: target status disuplai
// caller, bukan ditebak) dan memutasi record yang disengketakan. Reject tidak
// menyentuh record.
func (s *CorrectionService) Review(ctx context.Context, requestID uuid.UUID, decision ReviewDecision, reviewerID uuid.UUID, note *string, correctedStatus *recmodel.AttendanceStatus) (*model.AttendanceCorrectionModel, error) {
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, string(decision))
	}

	req, err := s.Corrections.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrectionNotFound, requestID)
	}
	if req.AttendanceCorrectionStatus != model.CorrectionStatusPending {
		return nil, fmt.Errorf("%w: status %s", ErrRequestNotPending, req.AttendanceCorrectionStatus)
	}

	rec, err := s.Records.FindByID(ctx, req.AttendanceCorrectionRecordId)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", recservice.ErrRecordNotFound, req.AttendanceCorrectionRecordId)
	}
	if rec.AttendanceRecordMarkedBy != reviewerID {
		return nil, ErrNotRecordMarker
	}

	if decision == DecisionApproved {
		if correctedStatus == nil {
			return nil, ErrCorrectedStatusRequired
		}
		if !correctedStatus.Valid() {
			return nil, fmt.Errorf("%w: %q", recservice.ErrInvalidStatus, string(*correctedStatus))
		}
		// mutasi record dulu; kalau gagal, request tetap pending dan bisa
		// direview ulang
		if err := s.Records.UpdateStatus(ctx, rec.AttendanceRecordId, *correctedStatus); err != nil {
			return nil, err
		}
		req.AttendanceCorrectionCorrectedStatus = correctedStatus
	}

	now := time.Now()
	req.AttendanceCorrectionStatus = model.CorrectionStatus(decision)
	req.AttendanceCorrectionReviewerId = &reviewerID
	req.AttendanceCorrectionReviewNote = note
	req.AttendanceCorrectionReviewedAt = &now
	if err := s.Corrections.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
