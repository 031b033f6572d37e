package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kampusku_backend/internals/features/attendance/records/model"
)

type AttendanceRecordRepository struct {
	DB *gorm.DB
}

func NewAttendanceRecordRepository(db *gorm.DB) *AttendanceRecordRepository {
	return &AttendanceRecordRepository{DB: db}
}

// Upsert: satu mark per (student, course, date); konflik → last write wins
// (status, marked_by, marked_at di-overwrite).
func (r *AttendanceRecordRepository) Upsert(ctx context.Context, m *model.AttendanceRecordModel) (*model.AttendanceRecordModel, error) {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_student_id"},
				{Name: "attendance_record_course_id"},
				{Name: "attendance_record_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_status",
				"attendance_record_marked_by",
				"attendance_record_marked_at",
				"attendance_record_updated_at",
			}),
		}, clause.Returning{}).
		Create(m).Error
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByStudentAndCourse: kronologis by tanggal.
func (r *AttendanceRecordRepository) ListByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) ([]model.AttendanceRecordModel, error) {
	var out []model.AttendanceRecordModel
	err := r.DB.WithContext(ctx).
		Where("attendance_record_student_id = ? AND attendance_record_course_id = ?", studentID, courseID).
		Order("attendance_record_date ASC").
		Find(&out).Error
	return out, err
}

// StatusCounts: hitung per status untuk satu (student, course).
func (r *AttendanceRecordRepository) StatusCounts(ctx context.Context, studentID, courseID uuid.UUID) (map[model.AttendanceStatus]int64, error) {
	return r.statusCounts(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("attendance_record_student_id = ? AND attendance_record_course_id = ?", studentID, courseID)
	})
}

// StatusCountsInMonth: seperti StatusCounts, dibatasi satu periode bulan.
func (r *AttendanceRecordRepository) StatusCountsInMonth(ctx context.Context, studentID, courseID uuid.UUID, month, year int) (map[model.AttendanceStatus]int64, error) {
	start, end := monthRange(month, year)
	return r.statusCounts(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("attendance_record_student_id = ? AND attendance_record_course_id = ?", studentID, courseID).
			Where("attendance_record_date >= ? AND attendance_record_date < ?", start, end)
	})
}

func (r *AttendanceRecordRepository) statusCounts(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (map[model.AttendanceStatus]int64, error) {
	type row struct {
		Status model.AttendanceStatus `gorm:"column:attendance_record_status"`
		N      int64                  `gorm:"column:n"`
	}
	var rows []row
	q := r.DB.WithContext(ctx).
		Model(&model.AttendanceRecordModel{}).
		Select("attendance_record_status, COUNT(*) AS n").
		Group("attendance_record_status")
	if err := scope(q).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[model.AttendanceStatus]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.N
	}
	return out, nil
}

// FindByID mengembalikan (nil, nil) kalau record tidak ada.
func (r *AttendanceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceRecordModel, error) {
	var m model.AttendanceRecordModel
	err := r.DB.WithContext(ctx).
		Where("attendance_record_id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateStatus: mutasi status satu record (dipakai approval koreksi).
func (r *AttendanceRecordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AttendanceStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_id = ?", id).
		Updates(map[string]any{
			"attendance_record_status":    status,
			"attendance_record_marked_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StudentCoursePair: pasangan distinct untuk rekap bulanan.
type StudentCoursePair struct {
	StudentId uuid.UUID `gorm:"column:attendance_record_student_id" json:"student_id"`
	CourseId  uuid.UUID `gorm:"column:attendance_record_course_id"  json:"course_id"`
}

// DistinctPairsInMonth: semua (student, course) yang punya minimal satu record
// di bulan tsb; courseID != nil → dibatasi satu course.
func (r *AttendanceRecordRepository) DistinctPairsInMonth(ctx context.Context, month, year int, courseID *uuid.UUID) ([]StudentCoursePair, error) {
	start, end := monthRange(month, year)
	q := r.DB.WithContext(ctx).
		Model(&model.AttendanceRecordModel{}).
		Distinct("attendance_record_student_id", "attendance_record_course_id").
		Where("attendance_record_date >= ? AND attendance_record_date < ?", start, end)
	if courseID != nil {
		q = q.Where("attendance_record_course_id = ?", *courseID)
	}
	var out []StudentCoursePair
	err := q.Find(&out).Error
	return out, err
}

func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
