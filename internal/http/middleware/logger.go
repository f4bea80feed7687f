package middleware

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"cvdoc/internal/logging"
)

// Logger logs each request as one JSON line on stdout.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.Local)
}

// LoggerWithWriter logs request_id, method, path, status and latency (milliseconds, float)
// once the handler chain has finished.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	log := logging.New(w, loc, slog.LevelInfo).With("component", "http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		latency := float64(time.Since(start).Microseconds()) / 1000

		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(c.UserContext(), level, "request",
			"request_id", rid,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", latency,
		)

		return err
	}
}

// statusOf mirrors the status the error handler will write.
func statusOf(err error) int {
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
