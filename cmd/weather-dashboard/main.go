package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/wxdash/weather-dashboard/internal/api/http"
	"github.com/wxdash/weather-dashboard/internal/config"
	"github.com/wxdash/weather-dashboard/internal/dashboard"
	"github.com/wxdash/weather-dashboard/internal/scheduler"
	"github.com/wxdash/weather-dashboard/internal/storage"
	"github.com/wxdash/weather-dashboard/internal/summary"
	"github.com/wxdash/weather-dashboard/internal/weather/providers"
)

func main() {
	watch := flag.Bool("watch", false, "rerun the pipeline on FETCH_INTERVAL instead of exiting")
	serve := flag.Bool("serve", false, "like -watch, plus an HTTP API exposing the latest results")
	dryRun := flag.Bool("dry-run", false, "store objects in memory instead of S3")
	ensureBucket := flag.Bool("ensure-bucket", false, "create the S3 bucket at startup when it does not exist")
	flag.Parse()

	// Remaining arguments are city names, one token per city.
	cities := flag.Args()
	if len(cities) == 0 {
		cities = dashboard.DefaultCities
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)

	var store storage.ObjectStore
	if *dryRun {
		log.Printf("dry run: objects will be kept in memory, not uploaded to %q", cfg.BucketName)
		store = storage.NewMemoryStore()
	} else {
		s3Store, err := storage.NewS3Store(ctx, cfg.BucketName, cfg.AWSRegion)
		if err != nil {
			log.Fatalf("failed to initialize storage: %v", err)
		}
		store = s3Store
	}

	if *ensureBucket {
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatalf("failed to ensure bucket %q: %v", cfg.BucketName, err)
		}
	}

	svc := dashboard.NewService(provider, summaryClient(cfg), storage.NewWriter(store))

	if *watch || *serve {
		runDaemon(cfg, svc, cities, *serve)
		return
	}

	report := svc.Run(ctx, cities)
	os.Exit(report.ExitCode())
}

// summaryClient picks the LLM backend from the configured keys; nil means
// fallback summaries only.
func summaryClient(cfg *config.AppConfig) summary.Client {
	switch {
	case cfg.OpenAIAPIKey != "":
		return summary.NewOpenAIClient(cfg.OpenAIAPIKey)
	case cfg.AnthropicAPIKey != "":
		return summary.NewAnthropicClient(cfg.AnthropicAPIKey)
	default:
		log.Printf("INFO: no LLM API key configured; summaries will use the fallback template")
		return nil
	}
}

// runDaemon keeps the pipeline running on a schedule until SIGINT/SIGTERM,
// optionally serving the latest results over HTTP.
func runDaemon(cfg *config.AppConfig, svc *dashboard.Service, cities []string, serve bool) {
	// First pass immediately so the API has data before the first tick.
	runCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	svc.Run(runCtx, cities)
	cancel()

	sched := scheduler.New(cities, cfg.FetchInterval, svc)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	var app *fiber.App
	if serve {
		app = fiber.New(fiber.Config{
			AppName:               "weather-dashboard",
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          10 * time.Second,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				// Centralized error response
				code := fiber.StatusInternalServerError
				if e, ok := err.(*fiber.Error); ok {
					code = e.Code
				}
				return c.Status(code).JSON(fiber.Map{
					"error":   true,
					"message": err.Error(),
				})
			},
		})

		app.Use(logger.New())
		app.Use(recover.New())

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"status":  "ok",
				"service": "weather-dashboard",
			})
		})

		httpapi.RegisterRoutes(app, svc)

		go func() {
			if err := app.Listen(":" + cfg.Port); err != nil {
				log.Printf("fiber server stopped: %v", err)
			}
		}()
	}

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	if app != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
	}
}
