package model

import (
	"time"

	"github.com/google/uuid"

	recmodel "kampusku_backend/internals/features/attendance/records/model"
)

// CorrectionStatus: state machine pending → approved | rejected (terminal).
type CorrectionStatus string

const (
	CorrectionStatusPending  CorrectionStatus = "pending"
	CorrectionStatusApproved CorrectionStatus = "approved"
	CorrectionStatusRejected CorrectionStatus = "rejected"
)

func (s CorrectionStatus) Terminal() bool {
	return s == CorrectionStatusApproved || s == CorrectionStatusRejected
}

// Maksimal satu request pending per (record, student) — dijaga partial unique
// index di migration:
//
//	CREATE UNIQUE INDEX uq_attendance_corrections_pending
//	  ON attendance_corrections (attendance_correction_record_id, attendance_correction_student_id)
//	  WHERE attendance_correction_status = 'pending';
type AttendanceCorrectionModel struct {
	AttendanceCorrectionId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_correction_id" json:"attendance_correction_id"`

	AttendanceCorrectionRecordId  uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_correction_record_id"  json:"attendance_correction_record_id"`
	AttendanceCorrectionStudentId uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_correction_student_id" json:"attendance_correction_student_id"`

	AttendanceCorrectionReason string           `gorm:"type:text;not null;column:attendance_correction_reason"                          json:"attendance_correction_reason"`
	AttendanceCorrectionStatus CorrectionStatus `gorm:"type:varchar(10);not null;default:'pending';column:attendance_correction_status" json:"attendance_correction_status"`

	// Diisi saat review
	AttendanceCorrectionReviewerId      *uuid.UUID                 `gorm:"type:uuid;column:attendance_correction_reviewer_id"             json:"attendance_correction_reviewer_id,omitempty"`
	AttendanceCorrectionReviewNote      *string                    `gorm:"type:text;column:attendance_correction_review_note"             json:"attendance_correction_review_note,omitempty"`
	AttendanceCorrectionCorrectedStatus *recmodel.AttendanceStatus `gorm:"type:varchar(10);column:attendance_correction_corrected_status" json:"attendance_correction_corrected_status,omitempty"`
	AttendanceCorrectionReviewedAt      *time.Time                 `gorm:"column:attendance_correction_reviewed_at"                       json:"attendance_correction_reviewed_at,omitempty"`

	AttendanceCorrectionCreatedAt time.Time  `gorm:"column:attendance_correction_created_at;autoCreateTime" json:"attendance_correction_created_at"`
	AttendanceCorrectionUpdatedAt *time.Time `gorm:"column:attendance_correction_updated_at;autoUpdateTime" json:"attendance_correction_updated_at,omitempty"`
}

func (AttendanceCorrectionModel) TableName() string { return "attendance_corrections" }
