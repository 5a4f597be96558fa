package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料（pgx.ErrNoRows 或影響 0 筆）
	ErrNotFound = errors.New("not found")
	// ErrConflict 違反唯一性限制
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference 外鍵指向不存在的資料
	ErrInvalidReference = errors.New("invalid reference")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// rowScanner 同時涵蓋 pgx.Row 與 pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// wrapErr 將 pgx / PostgreSQL 錯誤轉為 store 的 sentinel error 並加上操作名稱
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func expectAffected(op string, tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
