package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const minSessionSecretLen = 32

// Config 服務啟動所需設定，皆由環境變數提供
type Config struct {
	DatabaseURL   string
	SessionSecret string
	AppEnv        string
	HTTPAddr      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	WorkerCount   int
	LogLevel      log.Lvl
}

// Production 決定 cookie 是否帶 Secure
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// RedisEnabled 沒有 REDIS_ADDR 時不啟用 session 撤銷清單
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

var (
	loadDotenv = func() error { return godotenv.Load() }
	lookupEnv  = os.LookupEnv
)

// Load 先嘗試讀取 .env（不存在不算錯誤），再從環境變數組出設定
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("讀取 .env 失敗: %w", err)
	}

	cfg := &Config{
		DatabaseURL:   env("DATABASE_URL", ""),
		SessionSecret: env("SESSION_SECRET", ""),
		AppEnv:        env("APP_ENV", "development"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPassword: env("REDIS_PASSWORD", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("環境變數 SESSION_SECRET 未設定")
	}
	if len(cfg.SessionSecret) < minSessionSecretLen {
		return nil, fmt.Errorf("SESSION_SECRET 至少需要 %d bytes", minSessionSecretLen)
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0, 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", 2, 1); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLevel(env("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func env(key, def string) string {
	if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def, min int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return 0, fmt.Errorf("無效的 %s: %q", key, raw)
	}
	return n, nil
}

func parseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("無效的 LOG_LEVEL: %q", s)
}
