package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier 是 store 需要的最小查詢介面，*pgxpool.Pool 與 pgx.Tx 皆滿足
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DB interface {
	Querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(context.Context) error
	Close()
}

// ReadOnlySnapshot 用於需要一致讀取視圖的查詢（例如餘額摘要）
var ReadOnlySnapshot = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// InTx 在單一交易中執行 fn，fn 回傳錯誤時回滾，否則提交
func InTx(ctx context.Context, db DB, opts pgx.TxOptions, fn func(q Querier) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// 提交後 Rollback 回傳 pgx.ErrTxClosed，可忽略
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// WithTx 以預設選項（read committed, read write）執行交易
func WithTx(ctx context.Context, db DB, fn func(q Querier) error) error {
	return InTx(ctx, db, pgx.TxOptions{}, fn)
}

type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTxFn  func(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

// BeginTx 未設定 BeginTxFn 時回傳共用 FakeDB 函式的 FakeTx
func (f *FakeDB) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if f.BeginTxFn != nil {
		return f.BeginTxFn(ctx, opts)
	}
	return &FakeTx{ExecFn: f.ExecFn, QueryFn: f.QueryFn, QueryRowFn: f.QueryRowFn}, nil
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// FakeTx 實作 pgx.Tx，僅支援 store 會用到的方法
type FakeTx struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	CommitFn   func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *FakeTx) Begin(context.Context) (pgx.Tx, error) { panic("unexpected Begin") }

func (t *FakeTx) Commit(ctx context.Context) error {
	if t.Committed || t.RolledBack {
		return pgx.ErrTxClosed
	}
	if t.CommitFn != nil {
		if err := t.CommitFn(ctx); err != nil {
			return err
		}
	}
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(context.Context) error {
	if t.Committed || t.RolledBack {
		return pgx.ErrTxClosed
	}
	t.RolledBack = true
	return nil
}

func (t *FakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("unexpected CopyFrom")
}

func (t *FakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("unexpected SendBatch")
}

func (t *FakeTx) LargeObjects() pgx.LargeObjects { panic("unexpected LargeObjects") }

func (t *FakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("unexpected Prepare")
}

func (t *FakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.ExecFn != nil {
		return t.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (t *FakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if t.QueryFn != nil {
		return t.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

func (t *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if t.QueryRowFn != nil {
		return t.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

func (t *FakeTx) Conn() *pgx.Conn { return nil }
