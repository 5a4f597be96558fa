package api

import (
	"time"

	"cashflow/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"isAdmin" example:"false"`
	CreatedAt time.Time `json:"createdAt"`
}

// swagger:model api.CurrentUserResponse
type CurrentUserResponse struct {
	User SessionUser `json:"user"`
}

// SessionUser 是登入與 /me 回傳的使用者摘要
type SessionUser struct {
	ID      int    `json:"id" example:"1"`
	Name    string `json:"name" example:"Administrador"`
	Email   string `json:"email" example:"admin@admin.com"`
	IsAdmin bool   `json:"isAdmin" example:"true"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
