package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"model-sync/core/config"
	"model-sync/core/database"
	"model-sync/core/loader"
	"model-sync/core/logger"
	"model-sync/core/middleware/auth"
	"model-sync/core/middleware/rayid"
	"model-sync/core/session"
	"model-sync/core/storage"
	"model-sync/feature/integrity"
	"model-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "model-sync/docs/swagger"
)

// @title Model Sync API
// @version 1.0
// @description API for synchronising stream objects into analysis model records.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the model sync server",
	Long:  `Starts the HTTP server holding live sync sessions, one per stream.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Pass history (optional)
		db, history := openHistory(cfg.Database, logg)

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		registry := session.NewRegistry(cfg.Sync, logg)
		svc := sync.NewService(registry, history, store, cfg.Storage.Bucket, logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(sync.NewFeature(svc, logg))
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, logg, db))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
	},
}

// openHistory connects the pass history database. History is optional: failures are
// logged and a nil history is returned.
func openHistory(cfg database.Config, logg *zap.Logger) (*gorm.DB, *sync.History) {
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed, pass history disabled", zap.Error(err))
		return nil, nil
	}

	history := sync.NewHistory(db)
	if err := history.Migrate(); err != nil {
		logg.Warn("Pass history disabled", zap.Error(err))
		return db, nil
	}
	logg.Info("Pass history enabled", zap.String("driver", cfg.Driver))
	return db, history
}

func init() {
	RootCmd.AddCommand(startCmd)
}
