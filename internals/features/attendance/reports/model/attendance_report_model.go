package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Satu baris rekap per (student, course, month, year); regenerate me-replace,
// bukan menambah baris (unique index + upsert).
type AttendanceReportModel struct {
	AttendanceReportId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_report_id" json:"attendance_report_id"`

	AttendanceReportStudentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_reports_period;column:attendance_report_student_id" json:"attendance_report_student_id"`
	AttendanceReportCourseId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_reports_period;column:attendance_report_course_id"  json:"attendance_report_course_id"`
	AttendanceReportMonth     int       `gorm:"not null;check:attendance_report_month BETWEEN 1 AND 12;uniqueIndex:uq_attendance_reports_period;column:attendance_report_month" json:"attendance_report_month"`
	AttendanceReportYear      int       `gorm:"not null;uniqueIndex:uq_attendance_reports_period;column:attendance_report_year" json:"attendance_report_year"`

	AttendanceReportPercentage   float64 `gorm:"type:numeric(5,2);not null;column:attendance_report_percentage" json:"attendance_report_percentage"`
	AttendanceReportPresentCount int64   `gorm:"not null;column:attendance_report_present_count"                json:"attendance_report_present_count"`
	AttendanceReportAbsentCount  int64   `gorm:"not null;column:attendance_report_absent_count"                 json:"attendance_report_absent_count"`
	AttendanceReportTotalCount   int64   `gorm:"not null;column:attendance_report_total_count"                  json:"attendance_report_total_count"`

	// Breakdown lengkap per status (present/late/absent/excused) — JSONB
	AttendanceReportStatusBreakdown datatypes.JSONMap `gorm:"type:jsonb;column:attendance_report_status_breakdown" json:"attendance_report_status_breakdown"`

	AttendanceReportGeneratedAt time.Time `gorm:"not null;column:attendance_report_generated_at" json:"attendance_report_generated_at"`
}

func (AttendanceReportModel) TableName() string { return "attendance_reports" }
