package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader propagates request IDs between services.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the context-locals key the Logger middleware and
	// error payloads read the request ID from.
	RequestIDLocalKey = "request_id"
)

// RequestID guarantees every request carries an ID: the incoming
// X-Request-ID is reused when present, otherwise a fresh UUID is minted.
// The ID is stored in context locals and echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
