package details

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	corrController "kampusku_backend/internals/features/attendance/corrections/controller"
	recController "kampusku_backend/internals/features/attendance/records/controller"
	reportController "kampusku_backend/internals/features/attendance/reports/controller"
	helperAuth "kampusku_backend/internals/helpers/auth"
	"kampusku_backend/internals/middlewares"
	authMw "kampusku_backend/internals/middlewares/auth"
)

func AttendanceRoutes(app *fiber.App, db *gorm.DB) {
	recordCtrl := recController.NewAttendanceRecordController(db)
	corrCtrl := corrController.NewAttendanceCorrectionController(db)
	reportCtrl := reportController.NewAttendanceReportController(db)

	jwt := authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	})

	// ===================== STUDENT (/api/u) =====================
	student := app.Group("/api/u",
		jwt,
		helperAuth.RequireRoles("absensi (student)", constants.StudentOnly...),
	)
	student.Get("/courses/:course_id/attendance", recordCtrl.GetMyCourseAttendance)
	student.Post("/attendance-corrections", corrCtrl.SubmitCorrection)

	// ===================== FACULTY (/api/f) =====================
	faculty := app.Group("/api/f",
		jwt,
		helperAuth.RequireRoles("absensi (faculty)", constants.FacultyAndAbove...),
	)
	faculty.Post("/attendance-records", recordCtrl.MarkAttendance)
	faculty.Post("/attendance-records/bulk", recordCtrl.MarkAttendanceBulk)
	faculty.Get("/attendance-corrections/pending", corrCtrl.ListPendingCorrections)
	faculty.Put("/attendance-corrections/:id/review", corrCtrl.ReviewCorrection)

	// ===================== ADMIN / STAFF (/api/a) =====================
	admin := app.Group("/api/a",
		jwt,
		helperAuth.RequireRoles("laporan absensi", constants.StaffRoles...),
	)
	admin.Get("/attendance-reports", reportCtrl.ListReports)
	admin.Post("/attendance-reports/generate",
		middlewares.ReportGenerateRateLimiter(),
		reportCtrl.GenerateReports,
	)
}
