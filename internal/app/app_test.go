package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themepark/internal/config"
	"themepark/internal/repository/memory"
	redisrepo "themepark/internal/repository/redis"
	"themepark/internal/services"
)

func TestNew_Memory(t *testing.T) {
	cfg := config.NewDefaultConfig()

	a, err := New(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &memory.RideRepository{}, a.Rides)
	assert.IsType(t, &memory.EmployeeRepository{}, a.Employees)
	assert.NotNil(t, a.RideService)
}

func TestNew_Redis(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := config.NewDefaultConfig()
	cfg.Storage.Type = config.StorageTypeRedis
	cfg.Storage.RedisURL = "redis://" + mini.Addr()

	a, err := New(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &redisrepo.RideRepository{}, a.Rides)

	ctx := context.Background()
	ride, err := a.RideService.CreateRide(ctx, services.CreateRideRequest{Name: "Carousel"})
	require.NoError(t, err)

	got, err := a.RideService.GetRide(ctx, ride.ID())
	require.NoError(t, err)
	assert.Equal(t, "Carousel", got.Name())
	assert.True(t, mini.Exists("themepark:ride:"+ride.ID()))
}

func TestNew_RedisUnavailable(t *testing.T) {
	mini := miniredis.RunT(t)
	addr := mini.Addr()
	mini.Close()

	cfg := config.NewDefaultConfig()
	cfg.Storage.Type = config.StorageTypeRedis
	cfg.Storage.RedisURL = "redis://" + addr

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Storage.Type = "postgres"

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestEngine_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := New(config.NewDefaultConfig(), nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	a.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = NewLogger(config.LogConfig{Level: "loud", Format: "json"}, &buf)
	assert.Error(t, err)

	_, err = NewLogger(config.LogConfig{Level: "info", Format: "xml"}, &buf)
	assert.Error(t, err)
}
