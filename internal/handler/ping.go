package handler

import (
	"net/http"

	"cashflow/internal/api"
	"cashflow/internal/cache"
	"cashflow/internal/database"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查（需通過認證）
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis（有設定時）連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /ping [get]
func PingHandler(db database.DB, rc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			c.Logger().Errorf("ping database: %v", err)
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "database unhealthy"})
		}
		if rc != nil {
			if err := rc.Ping(ctx).Err(); err != nil {
				c.Logger().Errorf("ping redis: %v", err)
				return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "redis unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
