package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/event-manager/config"
	"github.com/Dosada05/event-manager/db"
	"github.com/Dosada05/event-manager/handlers"
	"github.com/Dosada05/event-manager/messaging"
	"github.com/Dosada05/event-manager/notifications"
	"github.com/Dosada05/event-manager/realtime"
	"github.com/Dosada05/event-manager/repositories"
	api "github.com/Dosada05/event-manager/routes"
	"github.com/Dosada05/event-manager/services"
	"github.com/Dosada05/event-manager/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// @title Event Manager API
// @version 1.0
// @description Sports event management: events, join requests, teams, matches, announcements and alerts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.Bool("logo_storage", cfg.LogoStorageEnabled()),
		slog.Bool("broker", cfg.BrokerEnabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, dbConn, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if dbConn != nil {
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
	}

	var uploader storage.FileUploader
	if cfg.LogoStorageEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	hub := realtime.NewHub(logger)

	dispatcher := notifications.NewDispatcher(logger)
	dispatcher.Subscribe(notifications.NewAlertFanout(
		repos.Alerts, repos.Participants, repos.Teams, logger,
		notifications.NewLivePush(hub),
	))
	if cfg.BrokerEnabled() {
		rabbit, err := messaging.NewRabbit(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer rabbit.Close()
		dispatcher.Subscribe(notifications.NewBrokerForwarder(rabbit))
		logger.Info("domain events forwarded to broker", slog.String("exchange", cfg.RabbitMQExchange))
	}

	authService := services.NewAuthService(repos.Users, repos.Sessions, cfg.JWTSecretKey, cfg.SessionTTL, logger)
	userService := services.NewUserService(repos.Users)
	eventService := services.NewEventService(repos, uploader, logger)
	joinService := services.NewJoinService(repos, logger)
	teamService := services.NewTeamService(repos, dispatcher, logger)
	matchService := services.NewMatchService(repos, dispatcher, logger)
	announcementService := services.NewAnnouncementService(repos, dispatcher, logger)
	alertService := services.NewAlertService(repos.Alerts)
	logger.Info("services initialized")

	scheduler := services.NewScheduler(cfg.EventStatusCron, repos.Events, authService, logger)
	scheduler.RunNow(ctx)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		User:         handlers.NewUserHandler(userService),
		Event:        handlers.NewEventHandler(eventService),
		Join:         handlers.NewJoinHandler(joinService),
		Team:         handlers.NewTeamHandler(teamService),
		Match:        handlers.NewMatchHandler(matchService),
		Announcement: handlers.NewAnnouncementHandler(announcementService),
		Alert:        handlers.NewAlertHandler(alertService),
		WebSocket:    handlers.NewWebSocketHandler(hub, authService, cfg.CORSAllowedOrigins, logger),
	}, authService, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestLogging: true,
	}, logger)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// openRepositories returns the configured store. The *sql.DB is nil for the memory store.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.Repositories, *sql.DB, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("using in-memory storage")
		return repositories.NewMemoryStore().Repositories(), nil, nil
	}

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		return repositories.Repositories{}, nil, err
	}
	logger.Info("database migrations applied")

	dbConn, err := db.Connect(ctx, db.Options{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		PingTimeout:     5 * time.Second,
	})
	if err != nil {
		return repositories.Repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connection established")
	return repositories.NewPostgresRepositories(dbConn), dbConn, nil
}
