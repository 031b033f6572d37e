package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/attendance/corrections/dto"
	"kampusku_backend/internals/features/attendance/corrections/repository"
	"kampusku_backend/internals/features/attendance/corrections/service"
	recrepo "kampusku_backend/internals/features/attendance/records/repository"
	recservice "kampusku_backend/internals/features/attendance/records/service"

	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

type AttendanceCorrectionController struct {
	DB       *gorm.DB
	Service  *service.CorrectionService
	Validate *validator.Validate
}

func NewAttendanceCorrectionController(db *gorm.DB) *AttendanceCorrectionController {
	svc := service.NewCorrectionService(
		repository.NewAttendanceCorrectionRepository(db),
		recrepo.NewAttendanceRecordRepository(db),
	)
	return &AttendanceCorrectionController{
		DB:       db,
		Service:  svc,
		Validate: validator.New(),
	}
}

/* ===================== SUBMIT (student) ===================== */
// POST /api/u/attendance-corrections
func (ctrl *AttendanceCorrectionController) SubmitCorrection(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitCorrectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.Submit(c.UserContext(), req.AttendanceCorrectionRecordId, studentID, req.AttendanceCorrectionReason)
	if err != nil {
		return mapCorrectionError(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Request koreksi terkirim", dto.NewAttendanceCorrectionResponse(*m))
}

/* ===================== PENDING LIST (faculty) ===================== */
// GET /api/f/attendance-corrections/pending
func (ctrl *AttendanceCorrectionController) ListPendingCorrections(c *fiber.Ctx) error {
	facultyID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rows, err := ctrl.Service.ListPendingForFaculty(c.UserContext(), facultyID)
	if err != nil {
		return mapCorrectionError(err)
	}

	return helper.Success(c, "OK", rows)
}

/* ===================== REVIEW (faculty) ===================== */
// PUT /api/f/attendance-corrections/:id/review
func (ctrl *AttendanceCorrectionController) ReviewCorrection(c *fiber.Ctx) error {
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id request tidak valid")
	}

	var req dto.ReviewCorrectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctrl.Service.Review(
		c.UserContext(),
		requestID,
		service.ReviewDecision(req.Decision),
		reviewerID,
		req.ReviewNote,
		req.CorrectedStatusModel(),
	)
	if err != nil {
		return mapCorrectionError(err)
	}

	return helper.Success(c, "Review tersimpan", dto.NewAttendanceCorrectionResponse(*m))
}

// mapCorrectionError memetakan sentinel service → HTTP status.
func mapCorrectionError(err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicatePendingRequest):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRequestNotPending):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrCorrectionNotFound),
		errors.Is(err, recservice.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCorrectedStatusRequired),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, recservice.ErrInvalidStatus):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotRecordMarker):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses koreksi absensi")
	}
}
