package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/Pelito1/PrimeMarket-back/config"
)

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// NewApp builds the Fiber application with middleware, the health check and
// every API route under cfg.BasePath.
func NewApp(cfg config.ServerConfig, log *zap.Logger, h Handlers, health HealthCheck) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "PrimeMarket",
		ReadTimeout:  cfg.ReadTimeout,
		ErrorHandler: ErrorHandler,
		UnescapePath: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(RequestLogger(log.Named("http")))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		if health != nil {
			if err := health(ctx.UserContext()); err != nil {
				return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "error": err.Error()})
			}
		}
		return ctx.JSON(fiber.Map{"status": "up"})
	})

	RegisterRoutes(app.Group(cfg.BasePath), h)
	return app
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", ctx.GetRespHeader(fiber.HeaderXRequestID)),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Info("request", fields...)
		}
		return err
	}
}
