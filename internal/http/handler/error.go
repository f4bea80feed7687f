package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cvdoc/internal/fields"
	"cvdoc/internal/http/middleware"
	"cvdoc/internal/render"
	"cvdoc/internal/scene"
	"cvdoc/internal/service"
	"cvdoc/internal/templates"
	"cvdoc/internal/transform"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorDetails(c, status, code, message, nil)
}

func writeErrorDetails(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps a service error to one JSON error. Only messages built from
// validated input are passed through.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		invalid   *fields.ValidationError
		malformed *scene.MalformedError
		artifact  *render.ArtifactError
	)
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "cv not found")
	case errors.Is(err, service.ErrExportNotFound):
		return writeError(c, fiber.StatusNotFound, "EXPORT_NOT_FOUND", "export not found")
	case errors.Is(err, templates.ErrTemplateNotFound):
		return writeError(c, fiber.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found")
	case errors.Is(err, service.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "format must be pdf or png")
	case errors.Is(err, service.ErrLanguageRequired):
		return writeError(c, fiber.StatusBadRequest, "LANGUAGE_REQUIRED", "target language is required")
	case errors.Is(err, service.ErrEmptyDocument):
		return writeError(c, fiber.StatusUnprocessableEntity, "EMPTY_DOCUMENT", "cv has no document")
	case errors.As(err, &invalid):
		return writeErrorDetails(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", "invalid field record", invalid.Problems)
	case errors.As(err, &malformed):
		return writeError(c, fiber.StatusBadRequest, "MALFORMED_DOCUMENT", malformed.Error())
	case errors.Is(err, scene.ErrMalformedDocument):
		return writeError(c, fiber.StatusBadRequest, "MALFORMED_DOCUMENT", "malformed document")
	case errors.Is(err, transform.ErrUnavailable):
		return writeError(c, fiber.StatusBadGateway, "TRANSFORM_UNAVAILABLE", "translation service unavailable")
	case errors.Is(err, render.ErrPageTooLarge):
		return writeError(c, fiber.StatusUnprocessableEntity, "PAGE_TOO_LARGE", "page is too large to rasterize at this dpi")
	case errors.Is(err, render.ErrPageNotFound), errors.As(err, &artifact):
		return writeError(c, fiber.StatusInternalServerError, "RENDER_FAILED", "could not render document")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", "service busy, retry later")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
