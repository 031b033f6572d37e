package dto

import (
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/attendance/corrections/model"
	recmodel "kampusku_backend/internals/features/attendance/records/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Student mengajukan koreksi (JSON)
type SubmitCorrectionRequest struct {
	AttendanceCorrectionRecordId uuid.UUID `json:"attendance_correction_record_id" validate:"required"`
	AttendanceCorrectionReason   string    `json:"attendance_correction_reason"    validate:"required,min=5,max=500"`
}

// Faculty me-review (JSON)
type ReviewCorrectionRequest struct {
	Decision   string  `json:"decision" validate:"required,oneof=approved rejected"`
	ReviewNote *string `json:"review_note" validate:"omitempty,max=500"`

	// Wajib saat decision=approved: status baru untuk record yang disengketakan
	CorrectedStatus *string `json:"corrected_status" validate:"omitempty,oneof=present absent late excused"`
}

func (r ReviewCorrectionRequest) CorrectedStatusModel() *recmodel.AttendanceStatus {
	if r.CorrectedStatus == nil {
		return nil
	}
	st, _ := recmodel.ParseAttendanceStatus(*r.CorrectedStatus)
	return &st
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AttendanceCorrectionResponse struct {
	AttendanceCorrectionId        uuid.UUID `json:"attendance_correction_id"`
	AttendanceCorrectionRecordId  uuid.UUID `json:"attendance_correction_record_id"`
	AttendanceCorrectionStudentId uuid.UUID `json:"attendance_correction_student_id"`

	AttendanceCorrectionReason string             `json:"attendance_correction_reason"`
	AttendanceCorrectionStatus m.CorrectionStatus `json:"attendance_correction_status"`

	AttendanceCorrectionReviewerId      *uuid.UUID                 `json:"attendance_correction_reviewer_id,omitempty"`
	AttendanceCorrectionReviewNote      *string                    `json:"attendance_correction_review_note,omitempty"`
	AttendanceCorrectionCorrectedStatus *recmodel.AttendanceStatus `json:"attendance_correction_corrected_status,omitempty"`
	AttendanceCorrectionReviewedAt      *time.Time                 `json:"attendance_correction_reviewed_at,omitempty"`

	AttendanceCorrectionCreatedAt time.Time `json:"attendance_correction_created_at"`
}

func NewAttendanceCorrectionResponse(mdl m.AttendanceCorrectionModel) AttendanceCorrectionResponse {
	return AttendanceCorrectionResponse{
		AttendanceCorrectionId:              mdl.AttendanceCorrectionId,
		AttendanceCorrectionRecordId:        mdl.AttendanceCorrectionRecordId,
		AttendanceCorrectionStudentId:       mdl.AttendanceCorrectionStudentId,
		AttendanceCorrectionReason:          mdl.AttendanceCorrectionReason,
		AttendanceCorrectionStatus:          mdl.AttendanceCorrectionStatus,
		AttendanceCorrectionReviewerId:      mdl.AttendanceCorrectionReviewerId,
		AttendanceCorrectionReviewNote:      mdl.AttendanceCorrectionReviewNote,
		AttendanceCorrectionCorrectedStatus: mdl.AttendanceCorrectionCorrectedStatus,
		AttendanceCorrectionReviewedAt:      mdl.AttendanceCorrectionReviewedAt,
		AttendanceCorrectionCreatedAt:       mdl.AttendanceCorrectionCreatedAt,
	}
}
