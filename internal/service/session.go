package service

import (
	"fmt"
	"net/http"
	"time"

	"cashflow/internal/cache"
	"cashflow/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "auth_session"
	SessionTTL        = 7 * 24 * time.Hour
)

var (
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

// Session 是簽章 cookie 的內容，伺服器端不保存
type Session struct {
	UserID  int    `json:"userId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// SessionManager 負責 auth_session cookie 的簽發、解析與撤銷。
// revocations 為 nil 時，登出只會刪除 cookie。
type SessionManager struct {
	secret      []byte
	secure      bool
	revocations cache.Cache
}

func NewSessionManager(secret string, secure bool, revocations cache.Cache) *SessionManager {
	return &SessionManager{
		secret:      []byte(secret),
		secure:      secure,
		revocations: revocations,
	}
}

// RevocationEnabled 回報是否有設定撤銷清單
func (m *SessionManager) RevocationEnabled() bool {
	return m.revocations != nil
}

// Create 簽發 7 天有效的 session 並寫入 cookie
func (m *SessionManager) Create(c echo.Context, user *model.User) (*Session, error) {
	now := timeNow()
	s := &Session{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, s).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	c.SetCookie(m.cookie(signed, int(SessionTTL/time.Second), now.Add(SessionTTL)))
	return s, nil
}

// Read 解析 cookie；任何失敗都視為匿名並回傳 nil
func (m *SessionManager) Read(c echo.Context) *Session {
	s := m.parse(c)
	if s == nil {
		return nil
	}
	if m.revocations != nil {
		revoked, err := cache.IsSessionRevoked(c.Request().Context(), m.revocations, s.ID)
		if err != nil {
			c.Logger().Warnf("session revocation lookup failed: %v", err)
			return nil
		}
		if revoked {
			return nil
		}
	}
	return s
}

// Destroy 清除 cookie；有撤銷清單時把目前的 jti 記到 token 到期為止
func (m *SessionManager) Destroy(c echo.Context) error {
	s := m.parse(c)
	c.SetCookie(m.cookie("", -1, time.Unix(0, 0)))
	if s == nil || m.revocations == nil {
		return nil
	}
	ttl := s.ExpiresAt.Time.Sub(timeNow())
	return cache.RevokeSession(c.Request().Context(), m.revocations, s.ID, ttl)
}

func (m *SessionManager) parse(c echo.Context) *Session {
	ck, err := c.Cookie(SessionCookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	s := &Session{}
	token, err := parseWithClaims(ck.Value, s, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil || token == nil || !token.Valid {
		return nil
	}
	if s.UserID <= 0 || s.ID == "" {
		return nil
	}
	return s
}

func (m *SessionManager) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
