package dto

import (
	"time"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/attendance/records/model"
	svc "kampusku_backend/internals/features/attendance/records/service"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Mark satu student (JSON)
type MarkAttendanceRequest struct {
	AttendanceRecordCourseId  uuid.UUID `json:"attendance_record_course_id"  validate:"required"`
	AttendanceRecordStudentId uuid.UUID `json:"attendance_record_student_id" validate:"required"`

	// YYYY-MM-DD
	AttendanceRecordDate string `json:"attendance_record_date" validate:"required,datetime=2006-01-02"`

	AttendanceRecordStatus string `json:"attendance_record_status" validate:"required,oneof=present absent late excused"`
}

// Mark banyak student sekaligus (satu course + tanggal)
type BulkMarkAttendanceRequest struct {
	AttendanceRecordCourseId uuid.UUID `json:"attendance_record_course_id" validate:"required"`

	// YYYY-MM-DD
	AttendanceRecordDate string `json:"attendance_record_date" validate:"required,datetime=2006-01-02"`

	Entries []BulkMarkEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type BulkMarkEntryRequest struct {
	StudentId uuid.UUID `json:"student_id" validate:"required"`
	// sengaja tidak oneof: entry dengan status salah di-skip, bukan menggagalkan batch
	Status string `json:"status" validate:"required"`
}

func (r BulkMarkAttendanceRequest) ToEntries() []svc.BulkMarkEntry {
	out := make([]svc.BulkMarkEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		st, _ := m.ParseAttendanceStatus(e.Status)
		out = append(out, svc.BulkMarkEntry{StudentID: e.StudentId, Status: st})
	}
	return out
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AttendanceRecordResponse struct {
	AttendanceRecordId        uuid.UUID          `json:"attendance_record_id"`
	AttendanceRecordStudentId uuid.UUID          `json:"attendance_record_student_id"`
	AttendanceRecordCourseId  uuid.UUID          `json:"attendance_record_course_id"`
	AttendanceRecordDate      string             `json:"attendance_record_date"`
	AttendanceRecordStatus    m.AttendanceStatus `json:"attendance_record_status"`
	AttendanceRecordMarkedBy  uuid.UUID          `json:"attendance_record_marked_by"`
	AttendanceRecordMarkedAt  time.Time          `json:"attendance_record_marked_at"`
}

func NewAttendanceRecordResponse(mdl m.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordId:        mdl.AttendanceRecordId,
		AttendanceRecordStudentId: mdl.AttendanceRecordStudentId,
		AttendanceRecordCourseId:  mdl.AttendanceRecordCourseId,
		AttendanceRecordDate:      mdl.AttendanceRecordDate.Format("2006-01-02"),
		AttendanceRecordStatus:    mdl.AttendanceRecordStatus,
		AttendanceRecordMarkedBy:  mdl.AttendanceRecordMarkedBy,
		AttendanceRecordMarkedAt:  mdl.AttendanceRecordMarkedAt,
	}
}

func NewAttendanceRecordResponses(mdls []m.AttendanceRecordModel) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, NewAttendanceRecordResponse(mdl))
	}
	return out
}

type BulkMarkAttendanceResponse struct {
	SavedCount   int                        `json:"saved_count"`
	SkippedCount int                        `json:"skipped_count"`
	Saved        []AttendanceRecordResponse `json:"saved"`
	Skipped      []svc.BulkMarkSkip         `json:"skipped"`
}

func NewBulkMarkAttendanceResponse(res svc.BulkMarkResult) BulkMarkAttendanceResponse {
	return BulkMarkAttendanceResponse{
		SavedCount:   len(res.Saved),
		SkippedCount: len(res.Skipped),
		Saved:        NewAttendanceRecordResponses(res.Saved),
		Skipped:      res.Skipped,
	}
}

type StudentCourseAttendanceResponse struct {
	Records []AttendanceRecordResponse `json:"records"`
	Summary svc.AttendanceSummary      `json:"summary"`
}

func NewStudentCourseAttendanceResponse(a svc.StudentCourseAttendance) StudentCourseAttendanceResponse {
	return StudentCourseAttendanceResponse{
		Records: NewAttendanceRecordResponses(a.Records),
		Summary: a.Summary,
	}
}
