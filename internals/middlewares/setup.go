package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "robotdan_backend/internals/middlewares/logger"
)

// SetupMiddlewares — 공통 미들웨어 일괄 등록
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
