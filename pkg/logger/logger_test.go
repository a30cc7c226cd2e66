package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetLogger(t *testing.T) {
	t.Helper()
	log = nil
	once = sync.Once{}
	t.Cleanup(func() {
		log = nil
		once = sync.Once{}
	})
}

func TestGetLogger_NopBeforeInit(t *testing.T) {
	resetLogger(t)
	require.NotNil(t, GetLogger())
	require.NotPanics(t, func() { Info(context.Background(), "before init") })
}

func TestInitAndContextLogging(t *testing.T) {
	resetLogger(t)
	Init("development")
	require.NotNil(t, GetLogger())

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	require.NotNil(t, WithContext(ctx))

	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/api/tokens", 200, 10*time.Millisecond, "127.0.0.1")
	LogRequest(ctx, "POST", "/api/tokens", 400, time.Millisecond, "127.0.0.1")
	LogRequest(ctx, "GET", "/api/tokens", 500, time.Millisecond, "127.0.0.1")
	Sync()
}

func TestWithContextNil(t *testing.T) {
	resetLogger(t)
	Init("development")
	//nolint:staticcheck // nil context is handled explicitly
	require.NotNil(t, WithContext(nil))
}

func TestInit_Production(t *testing.T) {
	resetLogger(t)
	Init("production")
	require.NotNil(t, GetLogger())
	require.NotNil(t, WithContext(context.Background()))
}

func TestInit_PanicWhenLoggerBuildFails(t *testing.T) {
	resetLogger(t)
	origBuild := buildLogger
	t.Cleanup(func() { buildLogger = origBuild })

	buildLogger = func(zap.Config) (*zap.Logger, error) {
		return nil, errors.New("build failed")
	}

	require.Panics(t, func() { Init("production") })
}
