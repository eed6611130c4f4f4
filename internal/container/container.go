package container

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/usa-attractions/app/db"
	"github.com/FACorreiaa/usa-attractions/config"
	"github.com/FACorreiaa/usa-attractions/internal/api/attraction"
	"github.com/FACorreiaa/usa-attractions/internal/api/auth"
)

var ErrDatabaseNotReady = errors.New("database not ready after waiting")

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *slog.Logger
	Pool              *pgxpool.Pool
	AttractionRepo    *attraction.RepositoryImpl
	AuthService       *auth.AuthServiceImpl
	AuthHandler       *auth.AuthHandler
	AttractionHandler *attraction.HandlerImpl
}

// NewContainer migrates the store, opens the pool and wires repositories,
// services and handlers.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	if !database.WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, ErrDatabaseNotReady
	}

	attractionRepo := attraction.NewRepository(pool, logger)
	attractionService := attraction.NewService(attractionRepo, logger)
	attractionHandler := attraction.NewHandlerImpl(attractionService, logger)

	authRepo := auth.NewAuthRepoFactory(pool, logger)
	authService := auth.NewAuthService(authRepo, cfg.Auth, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	return &Container{
		Config:            cfg,
		Logger:            logger,
		Pool:              pool,
		AttractionRepo:    attractionRepo,
		AuthService:       authService,
		AuthHandler:       authHandler,
		AttractionHandler: attractionHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
