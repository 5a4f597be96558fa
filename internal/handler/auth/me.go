package auth

import (
	"net/http"

	"cashflow/internal/api"
	"cashflow/internal/middleware"

	"github.com/labstack/echo/v4"
)

// MeHandler 回傳目前登入者
// @Summary     目前使用者
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.CurrentUserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /auth/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		s := middleware.CurrentUser(c)
		if s == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "unauthorized"})
		}
		return c.JSON(http.StatusOK, api.CurrentUserResponse{User: api.SessionUser{
			ID:      s.UserID,
			Name:    s.Name,
			Email:   s.Email,
			IsAdmin: s.IsAdmin,
		}})
	}
}
