package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "kampusku_backend/internals/features/attendance/reports/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Generate rekap (JSON)
type GenerateReportsRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year"  validate:"required,min=2000,max=2100"`

	// Opsional: batasi satu course
	CourseId *uuid.UUID `json:"course_id" validate:"omitempty"`
}

// Filter list (query)
type ListReportsRequest struct {
	Month     int        `query:"month" validate:"required,min=1,max=12"`
	Year      int        `query:"year"  validate:"required,min=2000,max=2100"`
	CourseId  *uuid.UUID `query:"course_id"  validate:"omitempty"`
	StudentId *uuid.UUID `query:"student_id" validate:"omitempty"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AttendanceReportResponse struct {
	AttendanceReportId        uuid.UUID `json:"attendance_report_id"`
	AttendanceReportStudentId uuid.UUID `json:"attendance_report_student_id"`
	AttendanceReportCourseId  uuid.UUID `json:"attendance_report_course_id"`
	AttendanceReportMonth     int       `json:"attendance_report_month"`
	AttendanceReportYear      int       `json:"attendance_report_year"`

	AttendanceReportPercentage      float64           `json:"attendance_report_percentage"`
	AttendanceReportPresentCount    int64             `json:"attendance_report_present_count"`
	AttendanceReportAbsentCount     int64             `json:"attendance_report_absent_count"`
	AttendanceReportTotalCount      int64             `json:"attendance_report_total_count"`
	AttendanceReportStatusBreakdown datatypes.JSONMap `json:"attendance_report_status_breakdown"`

	AttendanceReportGeneratedAt time.Time `json:"attendance_report_generated_at"`
}

func NewAttendanceReportResponse(mdl m.AttendanceReportModel) AttendanceReportResponse {
	return AttendanceReportResponse{
		AttendanceReportId:              mdl.AttendanceReportId,
		AttendanceReportStudentId:       mdl.AttendanceReportStudentId,
		AttendanceReportCourseId:        mdl.AttendanceReportCourseId,
		AttendanceReportMonth:           mdl.AttendanceReportMonth,
		AttendanceReportYear:            mdl.AttendanceReportYear,
		AttendanceReportPercentage:      mdl.AttendanceReportPercentage,
		AttendanceReportPresentCount:    mdl.AttendanceReportPresentCount,
		AttendanceReportAbsentCount:     mdl.AttendanceReportAbsentCount,
		AttendanceReportTotalCount:      mdl.AttendanceReportTotalCount,
		AttendanceReportStatusBreakdown: mdl.AttendanceReportStatusBreakdown,
		AttendanceReportGeneratedAt:     mdl.AttendanceReportGeneratedAt,
	}
}

func NewAttendanceReportResponses(mdls []m.AttendanceReportModel) []AttendanceReportResponse {
	out := make([]AttendanceReportResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, NewAttendanceReportResponse(mdl))
	}
	return out
}
