package auth

import (
	"net/http"

	"cashflow/internal/api"
	"cashflow/internal/service"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 清除 session cookie，未登入也回傳成功
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.SuccessResponse
// @Router      /auth/logout [post]
func LogoutHandler(sessions *service.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sessions.Destroy(c); err != nil {
			// cookie 已清除，撤銷失敗只記錄
			c.Logger().Warnf("revoke session: %v", err)
		}
		return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
	}
}
