package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/publicurl"
	"reviewapi/internal/service"
	"reviewapi/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; the services own the pipeline.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	store storage.Storage,
	intake service.IntakeService,
	feed service.FeedService,
	moderation service.ModerationService,
	resolver publicurl.Resolver,
	adminPassword string,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Attachment bytes, addressed by the locator stored on review rows.
	app.Get("/uploads/:file", ServeUpload(store))

	api := app.Group("/api")

	// Submission endpoint plus the alias some widget builds POST to.
	api.Post("/submit-review", SubmitReview(intake, resolver))
	api.Post("/reviews", SubmitReview(intake, resolver))

	// Public feed: approved only, no auth.
	api.Get("/reviews", ListPublicReviews(feed, resolver))

	// Moderation routes re-present the shared secret on every request.
	admin := api.Group("/admin", middleware.AdminAuth(adminPassword))
	admin.Get("/reviews", ListAdminReviews(moderation, resolver))
	admin.Post("/approve/:id", ApproveReview(moderation))
	admin.Delete("/review/:id", DeleteReview(moderation))
}
