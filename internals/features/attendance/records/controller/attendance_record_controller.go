package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courserepo "kampusku_backend/internals/features/academics/courses/repository"
	userrepo "kampusku_backend/internals/features/academics/users/repository"
	"kampusku_backend/internals/features/attendance/records/dto"
	"kampusku_backend/internals/features/attendance/records/model"
	"kampusku_backend/internals/features/attendance/records/repository"
	"kampusku_backend/internals/features/attendance/records/service"

	"kampusku_backend/internals/configs"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

type AttendanceRecordController struct {
	DB       *gorm.DB
	Service  *service.AttendanceService
	Validate *validator.Validate
}

func NewAttendanceRecordController(db *gorm.DB) *AttendanceRecordController {
	svc := service.NewAttendanceService(
		repository.NewAttendanceRecordRepository(db),
		userrepo.NewUserRepository(db),
		courserepo.NewCourseRepository(db),
		configs.AttendanceMinPercent,
	)
	return &AttendanceRecordController{
		DB:       db,
		Service:  svc,
		Validate: validator.New(),
	}
}

/* ===================== MARK (single) ===================== */
// POST /api/f/attendance-records
func (ctrl *AttendanceRecordController) MarkAttendance(c *fiber.Ctx) error {
	facultyID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", req.AttendanceRecordDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Tanggal tidak valid (format YYYY-MM-DD)")
	}
	status, _ := model.ParseAttendanceStatus(req.AttendanceRecordStatus)

	rec, err := ctrl.Service.MarkOne(c.UserContext(), req.AttendanceRecordCourseId, req.AttendanceRecordStudentId, date, status, facultyID)
	if err != nil {
		return mapAttendanceError(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Absensi tersimpan", dto.NewAttendanceRecordResponse(*rec))
}

/* ===================== MARK (bulk) ===================== */
// POST /api/f/attendance-records/bulk
func (ctrl *AttendanceRecordController) MarkAttendanceBulk(c *fiber.Ctx) error {
	facultyID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkMarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", req.AttendanceRecordDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Tanggal tidak valid (format YYYY-MM-DD)")
	}

	res, err := ctrl.Service.MarkBulk(c.UserContext(), req.AttendanceRecordCourseId, date, facultyID, req.ToEntries())
	if err != nil {
		return mapAttendanceError(err)
	}

	return helper.Success(c, "Absensi bulk diproses", dto.NewBulkMarkAttendanceResponse(res))
}

/* ===================== SUMMARY (student) ===================== */
// GET /api/u/courses/:course_id/attendance
func (ctrl *AttendanceRecordController) GetMyCourseAttendance(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "course_id tidak valid")
	}

	out, err := ctrl.Service.StudentCourseSummary(c.UserContext(), studentID, courseID)
	if err != nil {
		return mapAttendanceError(err)
	}

	return helper.Success(c, "OK", dto.NewStudentCourseAttendanceResponse(*out))
}

// mapAttendanceError memetakan sentinel service → HTTP status.
func mapAttendanceError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses absensi")
	}
}
