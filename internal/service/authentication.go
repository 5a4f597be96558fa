package service

import (
	"context"
	"errors"

	"cashflow/internal/model"
)

// ErrInvalidCredentials 帳號不存在或密碼錯誤，對外不區分兩者
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthenticateUser 以 bcrypt 比對密碼，成功回傳使用者
func AuthenticateUser(ctx context.Context, passwords *Passwords, user *model.User, password string) (*model.User, error) {
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := passwords.Compare(ctx, user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
