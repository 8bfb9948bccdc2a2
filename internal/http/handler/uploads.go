package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/storage"
)

// ServeUpload streams an attachment back from object storage so that
// resolved image URLs dereference to the exact bytes originally uploaded.
func ServeUpload(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("file")
		// Stored keys are uuid+ext directly under the prefix; anything with
		// a path separator cannot name one of our objects.
		if name == "" || strings.ContainsAny(name, "/\\") {
			return writeError(c, fiber.StatusNotFound, "Not found")
		}

		obj, info, err := store.Get(c.UserContext(), "uploads/"+name)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "Not found")
		}
		// obj is closed by the HTTP layer once the stream is drained.

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		if info.Size > 0 {
			c.Set(fiber.HeaderContentLength, strconv.FormatInt(info.Size, 10))
			return c.SendStream(obj, int(info.Size))
		}
		return c.SendStream(obj)
	}
}
