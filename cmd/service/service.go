// @title        Cash Flow API
// @version      1.0
// @description  月度現金流帳本的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth_session
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cashflow/internal/api"
	"cashflow/internal/cache"
	"cashflow/internal/config"
	"cashflow/internal/database"
	"cashflow/internal/router"
	"cashflow/internal/service"
	"cashflow/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "cashflow/docs" // 引入 swag 產出的 docs
)

const (
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 30 * time.Second
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	newEcho         = echo.New
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	e := newEcho()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)

	// 未設定 Redis 時 rc 保持 nil（不可傳入 typed nil）
	var rc cache.Cache
	if cfg.RedisEnabled() {
		rc, err = newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %v", err)
		}
		defer rc.Close()
	}
	sessions := service.NewSessionManager(cfg.SessionSecret, cfg.Production(), rc)
	if !sessions.RevocationEnabled() {
		e.Logger.Warn("未啟用 session 撤銷清單（REDIS_ADDR 未設定），登出後 session 在到期前仍然有效")
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	e.Validator = api.NewValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Server.ReadTimeout = serverReadTimeout
	e.Server.WriteTimeout = serverWriteTimeout

	router.Setup(e, db, rc, sessions, service.NewPasswords(wp))

	if err := startServer(e, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
