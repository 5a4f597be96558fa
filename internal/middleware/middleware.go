package middleware

import (
	"errors"
	"net/http"

	"cashflow/internal/database"
	"cashflow/internal/service"
	"cashflow/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var getUserByID = store.GetUserByID

// SessionReader 由 *service.SessionManager 實作
type SessionReader interface {
	Read(c echo.Context) *service.Session
}

// RequireAuth 沒有有效 session 或帳號已被刪除時回 401。
// 名稱、Email 與管理員旗標以資料庫為準，放進 echo context 的是更新後的 session。
func RequireAuth(sessions SessionReader, db database.Querier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Read(c)
			if s == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			user, err := getUserByID(c.Request().Context(), db, s.UserID)
			if errors.Is(err, store.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
			}
			s.Name = user.Name
			s.Email = user.Email
			s.IsAdmin = user.IsAdmin
			c.Set(ContextUserKey, s)
			return next(c)
		}
	}
}

func RequireAdmin(sessions SessionReader, db database.Querier) echo.MiddlewareFunc {
	auth := RequireAuth(sessions, db)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			if !CurrentUser(c).IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}

// CurrentUser 回傳 RequireAuth 放入的 session；未經過 guard 時為 nil
func CurrentUser(c echo.Context) *service.Session {
	s, _ := c.Get(ContextUserKey).(*service.Session)
	return s
}
