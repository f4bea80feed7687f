package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when a limited route stays saturated for the whole wait.
var ErrBusy = fiber.NewError(fiber.StatusServiceUnavailable, "renderer is busy, retry later")

// ConcurrencyLimit lets at most n requests run the wrapped handlers at once. Others wait up
// to wait for a slot and then fail with ErrBusy. n <= 0 disables the limit.
func ConcurrencyLimit(n int, wait time.Duration) fiber.Handler {
	if n <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	sem := semaphore.NewWeighted(int64(n))

	return func(c *fiber.Ctx) error {
		if !sem.TryAcquire(1) {
			ctx, cancel := context.WithTimeout(c.UserContext(), wait)
			err := sem.Acquire(ctx, 1)
			cancel()
			if err != nil {
				return ErrBusy
			}
		}
		defer sem.Release(1)
		return c.Next()
	}
}
