package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"

	loggerMiddleware "kampusku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global (urutan penting: recovery paling luar).
func SetupMiddlewares(app *fiber.App) {
	log.Println("[INFO] Memasang global middlewares...")

	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
