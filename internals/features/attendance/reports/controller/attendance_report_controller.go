package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	recrepo "kampusku_backend/internals/features/attendance/records/repository"
	"kampusku_backend/internals/features/attendance/reports/dto"
	"kampusku_backend/internals/features/attendance/reports/repository"
	"kampusku_backend/internals/features/attendance/reports/service"

	"kampusku_backend/internals/configs"
	helper "kampusku_backend/internals/helpers"
)

type AttendanceReportController struct {
	DB        *gorm.DB
	Generator *service.ReportGenerator
	Repo      *repository.AttendanceReportRepository
	Validate  *validator.Validate
}

func NewAttendanceReportController(db *gorm.DB) *AttendanceReportController {
	repo := repository.NewAttendanceReportRepository(db)
	gen := service.NewReportGenerator(
		recrepo.NewAttendanceRecordRepository(db),
		repo,
		configs.AttendanceMinPercent,
		logrus.StandardLogger(),
	)
	return &AttendanceReportController{
		DB:        db,
		Generator: gen,
		Repo:      repo,
		Validate:  validator.New(),
	}
}

/* ===================== GENERATE ===================== */
// POST /api/a/attendance-reports/generate
func (ctrl *AttendanceReportController) GenerateReports(c *fiber.Ctx) error {
	var req dto.GenerateReportsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctrl.Generator.Generate(c.UserContext(), req.Month, req.Year, req.CourseId)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal generate laporan absensi")
	}

	return helper.Success(c, "Laporan absensi digenerate", res)
}

/* ===================== LIST ===================== */
// GET /api/a/attendance-reports?month=&year=&course_id=&student_id=
func (ctrl *AttendanceReportController) ListReports(c *fiber.Ctx) error {
	var req dto.ListReportsRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctrl.Repo.List(c.UserContext(), repository.ReportFilter{
		Month:     req.Month,
		Year:      req.Year,
		CourseID:  req.CourseId,
		StudentID: req.StudentId,
		Offset:    paging.Offset,
		Limit:     paging.Limit,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil laporan absensi")
	}

	return helper.Success(c, "OK", fiber.Map{
		"reports":    dto.NewAttendanceReportResponses(rows),
		"pagination": helper.BuildPagination(total, paging, len(rows)),
	})
}
