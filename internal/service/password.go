package service

import (
	"context"
	"errors"
	"fmt"

	"cashflow/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 與既有雜湊相容（cost 10）
const PasswordCost = bcrypt.DefaultCost

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// ErrPasswordMismatch 明文密碼與雜湊不符
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil
func ComparePassword(hash, password string) error {
	err := bcryptCompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// Passwords 把 bcrypt 運算交給固定大小的 worker pool，
// 同時間最多只有 pool 大小個雜湊在執行
type Passwords struct {
	pool worker.Pool
}

func NewPasswords(pool worker.Pool) *Passwords {
	return &Passwords{pool: pool}
}

func (p *Passwords) Hash(ctx context.Context, password string) (string, error) {
	var hash string
	var err error
	if runErr := p.run(ctx, func() { hash, err = HashPassword(password) }); runErr != nil {
		return "", runErr
	}
	return hash, err
}

func (p *Passwords) Compare(ctx context.Context, hash, password string) error {
	var err error
	if runErr := p.run(ctx, func() { err = ComparePassword(hash, password) }); runErr != nil {
		return runErr
	}
	return err
}

// run 等待工作完成或 ctx 取消；取消後尚未開始的工作會直接略過
func (p *Passwords) run(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	err := p.pool.Submit(ctx, func() {
		defer close(done)
		if ctx.Err() != nil {
			return
		}
		fn()
	})
	if err != nil {
		return fmt.Errorf("password worker: %w", err)
	}
	select {
	case <-done:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
