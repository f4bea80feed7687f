package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
)

// Recover turns a panic further down the chain into an error for the app's error handler
// and logs it with its stack and the request id.
func Recover(log *slog.Logger) fiber.Handler {
	return fiberrecover.New(fiberrecover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			rid, _ := c.Locals(RequestIDLocalKey).(string)
			log.Error("handler panic",
				"event", "panic_recovered",
				"request_id", rid,
				"method", c.Method(),
				"path", c.Path(),
				"panic", fmt.Sprint(e),
				"stack", string(debug.Stack()),
			)
		},
	})
}
