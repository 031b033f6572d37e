package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/attendance/corrections/model"
	recmodel "kampusku_backend/internals/features/attendance/records/model"
)

type AttendanceCorrectionRepository struct {
	DB *gorm.DB
}

func NewAttendanceCorrectionRepository(db *gorm.DB) *AttendanceCorrectionRepository {
	return &AttendanceCorrectionRepository{DB: db}
}

func (r *AttendanceCorrectionRepository) Create(ctx context.Context, m *model.AttendanceCorrectionModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// HasPending: sudah ada request pending untuk (record, student)?
func (r *AttendanceCorrectionRepository) HasPending(ctx context.Context, recordID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.AttendanceCorrectionModel{}).
		Where("attendance_correction_record_id = ? AND attendance_correction_student_id = ? AND attendance_correction_status = ?",
			recordID, studentID, model.CorrectionStatusPending).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID mengembalikan (nil, nil) kalau request tidak ada.
func (r *AttendanceCorrectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceCorrectionModel, error) {
	var m model.AttendanceCorrectionModel
	err := r.DB.WithContext(ctx).
		Where("attendance_correction_id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// PendingCorrectionRow: request pending + field record yang disengketakan
// (join eksplisit, DTO termaterialisasi — tanpa lazy loading).
type PendingCorrectionRow struct {
	AttendanceCorrectionId        uuid.UUID `gorm:"column:attendance_correction_id"         json:"attendance_correction_id"`
	AttendanceCorrectionRecordId  uuid.UUID `gorm:"column:attendance_correction_record_id"  json:"attendance_correction_record_id"`
	AttendanceCorrectionStudentId uuid.UUID `gorm:"column:attendance_correction_student_id" json:"attendance_correction_student_id"`
	AttendanceCorrectionReason    string    `gorm:"column:attendance_correction_reason"     json:"attendance_correction_reason"`
	AttendanceCorrectionCreatedAt time.Time `gorm:"column:attendance_correction_created_at" json:"attendance_correction_created_at"`

	RecordCourseId uuid.UUID                 `gorm:"column:attendance_record_course_id" json:"record_course_id"`
	RecordDate     time.Time                 `gorm:"column:attendance_record_date"      json:"record_date"`
	RecordStatus   recmodel.AttendanceStatus `gorm:"column:attendance_record_status"    json:"record_status"`
}

// ListPendingByMarker: request pending yang record-nya ditandai oleh faculty
// tsb — faculty hanya me-review koreksi atas markingnya sendiri.
func (r *AttendanceCorrectionRepository) ListPendingByMarker(ctx context.Context, facultyID uuid.UUID) ([]PendingCorrectionRow, error) {
	var out []PendingCorrectionRow
	err := r.DB.WithContext(ctx).
		Table("attendance_corrections").
		Select(`attendance_corrections.attendance_correction_id,
		        attendance_corrections.attendance_correction_record_id,
		        attendance_corrections.attendance_correction_student_id,
		        attendance_corrections.attendance_correction_reason,
		        attendance_corrections.attendance_correction_created_at,
		        attendance_records.attendance_record_course_id,
		        attendance_records.attendance_record_date,
		        attendance_records.attendance_record_status`).
		Joins("JOIN attendance_records ON attendance_records.attendance_record_id = attendance_corrections.attendance_correction_record_id").
		Where("attendance_corrections.attendance_correction_status = ?", model.CorrectionStatusPending).
		Where("attendance_records.attendance_record_marked_by = ?", facultyID).
		Order("attendance_corrections.attendance_correction_created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *AttendanceCorrectionRepository) Update(ctx context.Context, m *model.AttendanceCorrectionModel) error {
	return r.DB.WithContext(ctx).Save(m).Error
}
