package constants

import "fmt"

// ==========================
// ✅ Role names
// ==========================
const (
	RoleAdmin    = "admin"
	RoleFaculty  = "faculty"
	RoleStudent  = "student"
	RoleAccounts = "accounts"
)

// Template pesan error role
const (
	ErrOnlyFacultyCanAccess  = "❌ Hanya faculty atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess = "❌ Hanya student yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess    = "❌ Hanya staff (non-student) yang boleh mengakses fitur %s."
	ErrRoleNotAllowed        = "❌ Role '%s' tidak diizinkan mengakses fitur %s."
)

func RoleErrorNotAllowed(role, feature string) string {
	return fmt.Sprintf(ErrRoleNotAllowed, role, feature)
}

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorFaculty(feature string) string {
	return fmt.Sprintf(ErrOnlyFacultyCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleFaculty,
		RoleStudent,
		RoleAccounts,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleFaculty,
		RoleAccounts,
	}

	FacultyAndAbove = []string{
		RoleFaculty,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)
