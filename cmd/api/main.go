package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviewapi/internal/config"
	"reviewapi/internal/database"
	"reviewapi/internal/database/migration"
	handlers "reviewapi/internal/http/handler"
	"reviewapi/internal/http/middleware"
	"reviewapi/internal/otel"
	"reviewapi/internal/publicurl"
	"reviewapi/internal/repository/postgres"
	"reviewapi/internal/service"
	"reviewapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.UTC

	shutdownTracing, err := otel.Init(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// First boot creates the reviews schema; subsequent boots are no-ops.
	if err := migration.EnsureMigrated(context.Background(), db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	reviewRepo := postgres.NewReviewPostgres(db)
	intakeSvc := service.NewIntakeService(objStore, reviewRepo, cfg.Review.AutoApprove, cfg.Review.MaxUploadBytes)
	feedSvc := service.NewFeedService(reviewRepo)
	moderationSvc := service.NewModerationService(objStore, reviewRepo)

	resolver := publicurl.Resolver{Base: cfg.Review.PublicURL}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// The attachment cap is enforced in the intake service; the body
		// limit only needs headroom for the multipart envelope.
		BodyLimit: int(cfg.Review.MaxUploadBytes) + 1<<20,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to set up metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, objStore, intakeSvc, feedSvc, moderationSvc, resolver, cfg.Review.AdminPassword)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
