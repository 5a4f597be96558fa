package users

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"cashflow/internal/api"
	"cashflow/internal/database"
	"cashflow/internal/handler"
	"cashflow/internal/middleware"
	"cashflow/internal/model"
	"cashflow/internal/service"
	"cashflow/internal/store"

	"github.com/labstack/echo/v4"
)

// PasswordHasher 由 *service.Passwords 實作
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
}

var (
	listUsers  = store.ListUsers
	createUser = store.CreateUser
	deleteUser = store.DeleteUser
)

var userMessages = handler.ErrorMessages{
	NotFound: "user not found",
	Conflict: "email already registered",
}

// @Summary     List users
// @Description 依建立時間由新到舊列出所有使用者（僅管理員）
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		resp := make([]api.UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, api.NewUserResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Create a new user
// @Description 建立新帳號 (Email 會自動轉小寫)，僅管理員
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB, passwords PasswordHasher) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if err := c.Validate(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return handler.BadRequest(c, "invalid email format")
		}

		hash, err := passwords.Hash(c.Request().Context(), req.Password)
		if err != nil {
			return handler.InternalError(c, err)
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			IsAdmin:      req.IsAdmin,
		})
		if err != nil {
			return handler.StoreError(c, err, userMessages)
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 刪除指定使用者，不可刪除自己（僅管理員）
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		if me := middleware.CurrentUser(c); me != nil && me.UserID == id {
			return handler.BadRequest(c, "you cannot delete your own account")
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err, userMessages)
		}
		return handler.Deleted(c, "user deleted")
	}
}

// 確保 *service.Passwords 滿足介面
var _ PasswordHasher = (*service.Passwords)(nil)
