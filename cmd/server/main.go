// Package main is the entry point of the application
package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blitzarena/chess-server/internal/auth"
	"github.com/blitzarena/chess-server/pkg/config"
	"github.com/blitzarena/chess-server/pkg/events"
	"github.com/blitzarena/chess-server/pkg/game"
	"github.com/blitzarena/chess-server/pkg/persist"
	"github.com/blitzarena/chess-server/pkg/rules"
	"github.com/blitzarena/chess-server/pkg/server"
)

// application encapsulates global dependencies
type application struct {
	Auth      *auth.APIKeyAuth
	Logger    *zap.Logger
	Config    *config.Config
	Publisher *events.Publisher
	Hub       *server.Hub
	Server    *http.Server

	StartTime time.Time
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	port := flag.String("port", "", "server port (overrides config)")
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	// Initialize logger
	logger := initLogger(*debug)
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config error", zap.Error(err))
	}
	if *port != "" {
		cfg.Port = *port
	}
	cfg.Debug = cfg.Debug || *debug

	// Initialize event publisher
	publisher := events.NewPublisher()

	// Persistence sink: Postgres when configured, log-only otherwise.
	var sink persist.Sink
	if cfg.DatabaseURL != "" {
		pg, err := persist.NewPostgresSink(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("connecting database error", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.EnsureSchema(context.Background()); err != nil {
			logger.Fatal("ensuring schema error", zap.Error(err))
		}
		sink = pg
	} else {
		sink = persist.NewLogSink(logger)
	}

	// Initialize the session core.
	store := game.NewStore()
	queue := game.NewQueue()
	scheduler := game.NewScheduler(time.Duration(cfg.TimerGraceMs)*time.Millisecond, logger)
	coordinator := game.NewCoordinator(
		store,
		queue,
		scheduler,
		rules.NewEngine(),
		publisher,
		logger,
		cfg.DefaultTimeControlMinutes,
	)

	// Finished sessions flow to the sink off the terminal path.
	publisher.Subscribe(events.EventSessionFinished, func(ev events.Event) {
		result, ok := ev.Payload.(game.Result)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sink.SaveResult(ctx, result); err != nil {
			logger.Error("persisting result failed",
				zap.String("session_id", ev.SessionID),
				zap.Error(err))
		}
	})

	hub := server.NewHub(coordinator, publisher, logger)

	apiAuth, err := auth.NewAPIKeyAuth(cfg.APIKeys)
	if err != nil {
		logger.Fatal("configuring api keys error", zap.Error(err))
	}

	app := &application{
		Auth:      apiAuth,
		Logger:    logger,
		Config:    cfg,
		Hub:       hub,
		Publisher: publisher,
		StartTime: time.Now(),
	}

	go app.Hub.Run()

	if err := app.serve(); err != nil {
		logger.Fatal("error serving", zap.Error(err))
	}
}

func initLogger(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	return logger
}

// Shutdown cleans up resources
func (app *application) Shutdown() {
	if app.Hub != nil {
		app.Hub.Shutdown()
	}

	app.Logger.Info("All components shut down successfully")
}
