package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Macro303/Neptunes-Pride/backend/handlers"
	"github.com/Macro303/Neptunes-Pride/backend/middleware"
	"github.com/Macro303/Neptunes-Pride/neptunes"
	"github.com/Macro303/Neptunes-Pride/neptunes/database"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/Macro303/Neptunes-Pride/neptunes/ledger"
	"github.com/Macro303/Neptunes-Pride/neptunes/logger"
	"github.com/Macro303/Neptunes-Pride/neptunes/providers"
	"github.com/Macro303/Neptunes-Pride/neptunes/reconcile"
	"github.com/Macro303/Neptunes-Pride/neptunes/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	syncNow := flag.Bool("sync-now", false, "run one reconciliation pass immediately and exit")
	flag.Parse()

	cfg, err := neptunes.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logger.NewHandler("Neptunes", cfg.Log.Level)))
	slog.Info("Starting Neptune's Dashboard",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.Int("games", len(cfg.Games)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Database connection failed",
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Database ready",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	d := neptunes.New(*cfg, version, commit)
	d.DB = db
	d.GameRepository = repositories.NewGameRepository(db.BunDB())
	d.TeamRepository = repositories.NewTeamRepository(db.BunDB())
	d.PlayerRepository = repositories.NewPlayerRepository(db.BunDB())
	d.CycleRepository = repositories.NewCycleRepository(db.BunDB())

	d.Engine = reconcile.NewEngine(
		d.GameRepository,
		d.TeamRepository,
		d.PlayerRepository,
		d.CycleRepository,
		reconcile.WithIngestFinished(cfg.Fetch.IngestFinished),
	)
	d.Ledger = ledger.New(d.CycleRepository, cfg.Fetch.CycleHours)
	d.Search = services.NewSearchService(d.PlayerRepository, d.TeamRepository)

	registry := providers.NewRegistry()
	d.Scheduler = reconcile.NewScheduler(
		d.Engine,
		providers.NewClient(),
		registry,
		d.GameRepository,
		d.TrackedGames(),
		time.Duration(cfg.Fetch.IntervalMinutes)*time.Minute,
		cfg.Fetch.MaxConcurrent,
	)

	// A provider tag with no normalizer is a config error; fail it now.
	if err := d.Scheduler.ValidateProviders(); err != nil {
		slog.Error("Invalid provider configuration",
			slog.Any("error", err),
			slog.Any("known_providers", registry.Tags()))
		os.Exit(1)
	}

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if *syncNow {
		d.Scheduler.RunOnce(runCtx)
		return
	}

	d.Scheduler.Start(runCtx)

	app := fiber.New(fiber.Config{
		AppName:      "Neptunes-Dashboard",
		ServerHeader: "Neptunes-Dashboard",
	})
	app.Use(recover.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		DB:      db,
		Games:   d.GameRepository,
		Teams:   d.TeamRepository,
		Players: d.PlayerRepository,
		Ledger:  d.Ledger,
		Search:  d.Search,
		Version: version,
		Commit:  commit,
	}
	setupRoutes(app, webApp, cfg.Server.APIToken)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("Starting API server", slog.String("address", address))

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.Any("error", err))
			stop()
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case <-c:
	case <-runCtx.Done():
	}

	slog.Info("Shutting down...")
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.Any("error", err))
	}
	slog.Info("Shutdown complete")
}

// setupRoutes wires the read endpoints openly and the write endpoints behind
// the API token.
func setupRoutes(app *fiber.App, webApp *handlers.WebApp, apiToken string) {
	app.Get("/health", handlers.HealthCheck(webApp))

	api := app.Group("/api")

	api.Get("/games", handlers.GamesList(webApp))
	api.Get("/games/:number", handlers.GamesDetail(webApp))

	api.Get("/players", handlers.PlayersList(webApp))
	api.Get("/players/:alias", handlers.PlayersDetail(webApp))
	api.Get("/players/:alias/cycles", handlers.PlayersCycles(webApp))

	api.Get("/teams", handlers.TeamsList(webApp))
	api.Get("/teams/:name", handlers.TeamsDetail(webApp))

	write := api.Group("", middleware.TokenRequired(apiToken))
	write.Put("/players/:alias", handlers.PlayersUpdate(webApp))
	write.Put("/teams/:name", handlers.TeamsUpdate(webApp))
}
