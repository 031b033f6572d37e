package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`

	CourseCode string `gorm:"type:varchar(20);uniqueIndex;not null;column:course_code" json:"course_code"`
	CourseName string `gorm:"not null;column:course_name"                              json:"course_name"`

	// Pengampu utama (faculty user id)
	CourseFacultyId *uuid.UUID `gorm:"type:uuid;column:course_faculty_id" json:"course_faculty_id,omitempty"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt *time.Time     `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at,omitempty"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index"          json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
