package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"cashflow/internal/cache"
	"cashflow/internal/config"
	"cashflow/internal/database"
	"cashflow/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool = worker.NewPool
	newEcho = echo.New
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:   "db",
		SessionSecret: "0123456789abcdef0123456789abcdef",
		AppEnv:        "development",
		HTTPAddr:      ":9090",
		RedisAddr:     "127",
		RedisPassword: "pw",
		RedisDB:       1,
		WorkerCount:   3,
		LogLevel:      log.WARN,
	}
}

// stubAll 讓 run() 不碰任何外部資源
func stubAll(cfg *config.Config) {
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return nil }
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubAll(testConfig())
	called := make(map[string]bool)
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(_ context.Context, addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	newWorkerPool = func(n int) worker.Pool {
		require.Equal(t, 3, n)
		return worker.NewPool(n)
	}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":9090", addr)
		require.NotNil(t, e.Validator)
		require.Equal(t, log.WARN, e.Logger.Level())
		require.Equal(t, serverReadTimeout, e.Server.ReadTimeout)
		require.NotEmpty(t, e.Routes())
		return nil
	}

	require.NoError(t, run())
	for _, k := range []string{"pgx", "redis", "migrate", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
}

func TestRunWithoutRedis(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()
	cfg.RedisAddr = ""
	stubAll(cfg)
	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) {
		t.Fatal("redis must not be dialled")
		return nil, nil
	}
	var logs bytes.Buffer
	newEcho = func() *echo.Echo {
		e := echo.New()
		e.Logger.SetOutput(&logs)
		return e
	}
	require.NoError(t, run())
	require.Contains(t, logs.String(), "未啟用 session 撤銷清單")
}

func TestRunWithRedisDoesNotWarn(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubAll(testConfig())
	var logs bytes.Buffer
	newEcho = func() *echo.Echo {
		e := echo.New()
		e.Logger.SetOutput(&logs)
		return e
	}
	require.NoError(t, run())
	require.NotContains(t, logs.String(), "未啟用 session 撤銷清單")
}

func TestRunServerClosed(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubAll(testConfig())
	startServer = func(*echo.Echo, string) error { return http.ErrServerClosed }
	require.NoError(t, run())
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubAll(testConfig())

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.EqualError(t, run(), "config")
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.ErrorContains(t, run(), "DB 連線失敗")
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }

	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.ErrorContains(t, run(), "Migration 執行失敗")
	runMigrationsFn = func(string) error { return nil }

	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.ErrorContains(t, run(), "Redis 連線失敗")
	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }

	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.EqualError(t, run(), "start")
}

func TestMainFunction(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubAll(testConfig())
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Equal(t, 0, exitCode)
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubAll(testConfig())
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
