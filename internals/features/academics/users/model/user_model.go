package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
)

type UserModel struct {
	UserId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserFullName string `gorm:"not null;column:user_full_name"           json:"user_full_name"`
	UserEmail    string `gorm:"uniqueIndex;not null;column:user_email"   json:"user_email"`

	// role ∈ admin|faculty|student|accounts (lihat constants)
	UserRole string `gorm:"type:varchar(20);not null;default:'student';column:user_role" json:"user_role"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index"          json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) IsAdmin() bool    { return u.UserRole == constants.RoleAdmin }
func (u *UserModel) IsFaculty() bool  { return u.UserRole == constants.RoleFaculty }
func (u *UserModel) IsStudent() bool  { return u.UserRole == constants.RoleStudent }
func (u *UserModel) IsAccounts() bool { return u.UserRole == constants.RoleAccounts }
