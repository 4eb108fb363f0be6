// Package app wires configuration, storage, services and the HTTP router
// into a runnable application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"themepark/internal/api"
	"themepark/internal/api/handlers"
	"themepark/internal/config"
	"themepark/internal/repository"
	"themepark/internal/repository/memory"
	redisrepo "themepark/internal/repository/redis"
	"themepark/internal/services"
)

// App contains all wired application components
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Storage
	Rides     repository.RideRepository
	Employees repository.EmployeeRepository

	// Services
	Narrator    *services.Narrator
	RideService *services.RideService

	closers []io.Closer
}

// New builds an App from cfg. The storage backend is chosen by
// cfg.Storage.Type; the Redis backend is pinged before New returns. A nil
// logger discards everything.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	a := &App{Config: cfg, Logger: logger}

	switch cfg.Storage.Type {
	case config.StorageTypeMemory:
		a.Rides = memory.NewRideRepository()
		a.Employees = memory.NewEmployeeRepository()
	case config.StorageTypeRedis:
		redisCfg := redisrepo.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		store, err := redisrepo.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Storage.RedisURL, err)
		}
		a.Rides = store.Rides()
		a.Employees = store.Employees()
		a.closers = append(a.closers, store)
	}

	a.Narrator = services.NewNarrator(logger)
	a.RideService = services.NewRideService(a.Rides, a.Employees, cfg, a.Narrator)

	logger.Info("application initialized",
		slog.String("storage", cfg.Storage.Type),
		slog.String("history_dir", cfg.History.Dir),
	)
	return a, nil
}

// Engine returns a gin engine with every route registered.
func (a *App) Engine() *gin.Engine {
	engine := gin.New()
	router := api.NewRouter(
		handlers.NewRideHandler(a.RideService),
		handlers.NewEmployeeHandler(a.RideService),
		a.Logger,
	)
	router.Setup(engine)
	return engine
}

// Close releases the storage backend.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewLogger builds the slog logger described by cfg, writing to w.
func NewLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be json or text", cfg.Format)
	}
}
