package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceStatus: status satu entri absensi.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// ParseAttendanceStatus menormalkan input bebas ("Present", " LATE ") ke enum.
func ParseAttendanceStatus(raw string) (AttendanceStatus, bool) {
	s := AttendanceStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Satu mark per (student, course, date) — dijaga unique index; tulisan kedua
// untuk tuple yang sama meng-overwrite lewat upsert, bukan menduplikasi.
type AttendanceRecordModel struct {
	AttendanceRecordId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordStudentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_student_course_date;column:attendance_record_student_id" json:"attendance_record_student_id"`
	AttendanceRecordCourseId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_student_course_date;column:attendance_record_course_id"  json:"attendance_record_course_id"`
	AttendanceRecordDate      time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_records_student_course_date;column:attendance_record_date"       json:"attendance_record_date"`

	AttendanceRecordStatus AttendanceStatus `gorm:"type:varchar(10);not null;column:attendance_record_status" json:"attendance_record_status"`

	// Faculty yang menandai (users.user_id)
	AttendanceRecordMarkedBy uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_marked_by" json:"attendance_record_marked_by"`
	AttendanceRecordMarkedAt time.Time `gorm:"not null;column:attendance_record_marked_at"           json:"attendance_record_marked_at"`

	AttendanceRecordCreatedAt time.Time      `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time     `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`
	AttendanceRecordDeletedAt gorm.DeletedAt `gorm:"column:attendance_record_deleted_at;index"          json:"attendance_record_deleted_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
