package auth

import (
	"errors"
	"net/http"
	"strings"

	"cashflow/internal/api"
	"cashflow/internal/database"
	"cashflow/internal/handler"
	"cashflow/internal/service"
	"cashflow/internal/store"

	"github.com/labstack/echo/v4"
)

const invalidCredentials = "invalid email or password"

var (
	getUserByEmail   = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
)

// LoginHandler 使用 Email/Password 驗證並設定 session cookie
// @Summary     登入使用者
// @Description 驗證 Email 與密碼，成功後設定 auth_session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.CurrentUserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, passwords *service.Passwords, sessions *service.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "email and password are required")
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, strings.ToLower(strings.TrimSpace(req.Email)))
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: invalidCredentials})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}

		// 驗證密碼
		if _, err := authenticateUser(ctx, passwords, user, req.Password); err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: invalidCredentials})
			}
			return handler.InternalError(c, err)
		}

		if _, err := sessions.Create(c, user); err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.CurrentUserResponse{User: api.SessionUser{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		}})
	}
}
