package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminPasswordHeader is where operator clients normally present the secret.
const AdminPasswordHeader = "x-admin-password"

// AdminAuth guards moderation routes with a single shared operator secret.
// The credential may arrive as the x-admin-password header, an admin_password
// query parameter, or an admin_password form field; there are no sessions, so
// every request re-presents it.
func AdminAuth(password string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pw := c.Get(AdminPasswordHeader)
		if pw == "" {
			pw = c.Query("admin_password")
		}
		if pw == "" {
			pw = c.FormValue("admin_password")
		}
		if pw == "" || pw != password {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":      false,
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}
