package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kampusku_backend/internals/constants"
)

// Locals keys yang di-hydrate oleh middleware AuthJWT.
const (
	LocUserID = "user_id"
	LocRole   = "role"
)

// GetUserIDFromToken mengambil user_id (UUID) dari Locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id pada token tidak valid")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id pada token tidak valid")
	}
	return id, nil
}

// GetRoleFromToken mengambil role (lowercase) dari Locals.
func GetRoleFromToken(c *fiber.Ctx) string {
	if v := c.Locals(LocRole); v != nil {
		if s, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

// ==========================
// ✅ Role predicates
// ==========================

func IsAdmin(c *fiber.Ctx) bool   { return GetRoleFromToken(c) == constants.RoleAdmin }
func IsFaculty(c *fiber.Ctx) bool { return GetRoleFromToken(c) == constants.RoleFaculty }
func IsStudent(c *fiber.Ctx) bool { return GetRoleFromToken(c) == constants.RoleStudent }

// ==========================
// ✅ Declarative role guard
// ==========================

// RequireRoles: satu guard untuk semua endpoint. Dipasang per route group dengan
// daftar role yang diizinkan (lihat constants.FacultyAndAbove dkk), bukan cek
// boolean ad-hoc di tiap handler.
func RequireRoles(feature string, allowed ...string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[strings.ToLower(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRoleFromToken(c)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Role tidak ditemukan di token")
		}
		if _, ok := set[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorNotAllowed(role, feature))
		}
		return c.Next()
	}
}
