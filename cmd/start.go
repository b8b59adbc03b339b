package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"order-manager/core/loader"
	"order-manager/core/logger"
	"order-manager/core/middleware/auth"
	"order-manager/core/middleware/ratelimit"
	"order-manager/core/middleware/rayid"
	"order-manager/feature/audit"
	"order-manager/feature/categories"
	"order-manager/feature/health"
	"order-manager/feature/orders"
	"order-manager/feature/stocks"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "order-manager/docs/swagger"
)

// @title Order Manager API
// @version 1.0
// @description Orders, stocks and categories with per-size inventory reservation.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the order manager server",
	Long:  `Opens the configured store, seeds categories and serves the HTTP API.`,
	RunE:  runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.close()
	zap.ReplaceGlobals(rt.logger)
	logg := rt.logger

	categoryFeature := categories.NewFeature(rt.store, logg)
	if _, err := categoryFeature.Service().Seed(ctx, rt.cfg.Catalog.SeedCategories); err != nil {
		return err
	}

	mgr := loader.NewManager()
	mgr.Register(health.NewFeature(rt.healthDeps(), logg))
	mgr.Register(categoryFeature)
	mgr.Register(stocks.NewFeature(rt.store, logg))
	mgr.Register(orders.NewFeature(rt.store, rt.publisher, logg))
	mgr.Register(audit.NewFeature(rt.store, logg))

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			l.Error("Request error", append(fields, zap.Error(err))...)
			return err
		}
		l.Info("Request handled", fields...)
		return nil
	})
	if rt.cfg.Server.RateLimitEnabled() {
		app.Use(ratelimit.New(rt.cfg.Server.RateLimit))
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{
		ApiKey: rt.cfg.Server.ApiKey,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))

	loaded, err := mgr.LoadAll(app.Group("/api"))
	if err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}
	logg.Info("Features loaded", zap.String("features", strings.Join(loaded, ",")))

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
		errCh <- app.Listen(":" + rt.cfg.Server.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logg.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout()); err != nil {
		logg.Warn("Shutdown did not complete", zap.Error(err))
	}
	return nil
}
