package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kampusku_backend/internals/features/attendance/reports/model"
)

type AttendanceReportRepository struct {
	DB *gorm.DB
}

func NewAttendanceReportRepository(db *gorm.DB) *AttendanceReportRepository {
	return &AttendanceReportRepository{DB: db}
}

// Upsert: replace semantics per (student, course, month, year).
func (r *AttendanceReportRepository) Upsert(ctx context.Context, m *model.AttendanceReportModel) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_report_student_id"},
				{Name: "attendance_report_course_id"},
				{Name: "attendance_report_month"},
				{Name: "attendance_report_year"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_report_percentage",
				"attendance_report_present_count",
				"attendance_report_absent_count",
				"attendance_report_total_count",
				"attendance_report_status_breakdown",
				"attendance_report_generated_at",
			}),
		}).
		Create(m).Error
}

// ReportFilter: filter list laporan (month/year wajib di controller).
type ReportFilter struct {
	Month     int
	Year      int
	CourseID  *uuid.UUID
	StudentID *uuid.UUID
	Offset    int
	Limit     int
}

func (r *AttendanceReportRepository) List(ctx context.Context, f ReportFilter) ([]model.AttendanceReportModel, int64, error) {
	q := r.DB.WithContext(ctx).
		Model(&model.AttendanceReportModel{}).
		Where("attendance_report_month = ? AND attendance_report_year = ?", f.Month, f.Year)
	if f.CourseID != nil {
		q = q.Where("attendance_report_course_id = ?", *f.CourseID)
	}
	if f.StudentID != nil {
		q = q.Where("attendance_report_student_id = ?", *f.StudentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.AttendanceReportModel
	err := q.Order("attendance_report_course_id, attendance_report_student_id").
		Offset(f.Offset).Limit(f.Limit).
		Find(&out).Error
	return out, total, err
}
