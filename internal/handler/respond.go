package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cashflow/internal/api"
	"cashflow/internal/store"

	"github.com/labstack/echo/v4"
)

// ErrorMessages 對應 store sentinel error 的回應訊息，空字串使用預設值
type ErrorMessages struct {
	NotFound         string
	Conflict         string
	InvalidReference string
}

// ParseID 讀取路徑參數 id，必須為正整數
func ParseID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

func InvalidID(c echo.Context) error {
	return BadRequest(c, "invalid id")
}

// InvalidBody 處理 Bind / Validate 失敗
func InvalidBody(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return BadRequest(c, "invalid request body")
	}
	return BadRequest(c, api.ValidationMessage(err))
}

// StoreError 把 store 錯誤轉為 HTTP 回應，非預期錯誤記錄後回 500
func StoreError(c echo.Context, err error, msgs ErrorMessages) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: or(msgs.NotFound, "not found")})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Message: or(msgs.Conflict, "already exists")})
	case errors.Is(err, store.ErrInvalidReference):
		return BadRequest(c, or(msgs.InvalidReference, "invalid reference"))
	}
	return InternalError(c, err)
}

func InternalError(c echo.Context, err error) error {
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
}

func Deleted(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, api.SuccessResponse{Success: true, Message: msg})
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// AmountOrZero 未提供金額時以 "0" 寫入
func AmountOrZero(amount string) string {
	if amount == "" {
		return "0"
	}
	return amount
}
