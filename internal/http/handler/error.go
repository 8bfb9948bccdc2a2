package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
)

// errorPayload is the standardized error response body. The widget contract
// keys on ok/message; request_id is carried for log correlation.
type errorPayload struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
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

// writeError writes a standardized JSON error response without leaking
// internal errors. message must be safe to surface to the caller.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{
		OK:        false,
		Message:   message,
		RequestID: requestIDFromCtx(c),
	})
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
			return writeError(c, status, "Bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "Unauthorized")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "Payload too large")
		default:
			return writeError(c, status, "Server error")
		}
	}
}
