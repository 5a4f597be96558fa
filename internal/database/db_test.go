package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRows struct{}

func (fakeRows) Close()                                       {}
func (fakeRows) Err() error                                   { return nil }
func (fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (fakeRows) Next() bool                                   { return false }
func (fakeRows) Scan(dest ...any) error                       { return nil }
func (fakeRows) Values() ([]any, error)                       { return nil, nil }
func (fakeRows) RawValues() [][]byte                          { return nil }
func (fakeRows) Conn() *pgx.Conn                              { return nil }

func TestFakeDB(t *testing.T) {
	db := &FakeDB{}
	require.Panics(t, func() { db.Exec(context.Background(), "", nil) })
	require.Panics(t, func() { db.Query(context.Background(), "") })
	require.Panics(t, func() { db.QueryRow(context.Background(), "") })
	require.Panics(t, func() { db.Ping(context.Background()) })
	db.Close()

	execCalled := false
	queryCalled := false
	rowCalled := false
	pingCalled := false
	closeCalled := false

	db.ExecFn = func(ctx context.Context, s string, args ...any) (pgconn.CommandTag, error) {
		execCalled = true
		return pgconn.CommandTag{}, errors.New("e")
	}
	db.QueryFn = func(ctx context.Context, s string, args ...any) (pgx.Rows, error) {
		queryCalled = true
		return fakeRows{}, nil
	}
	db.QueryRowFn = func(ctx context.Context, s string, args ...any) pgx.Row {
		rowCalled = true
		return pgx.Row(fakeRows{})
	}
	db.PingFn = func(ctx context.Context) error { pingCalled = true; return nil }
	db.CloseFn = func() { closeCalled = true }

	_, err := db.Exec(context.Background(), "sql")
	require.Error(t, err)
	_, err = db.Query(context.Background(), "sql")
	require.NoError(t, err)
	_ = db.QueryRow(context.Background(), "sql")
	require.NoError(t, db.Ping(context.Background()))
	db.Close()
	require.True(t, execCalled)
	require.True(t, queryCalled)
	require.True(t, rowCalled)
	require.True(t, pingCalled)
	require.True(t, closeCalled)
}

func TestInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("begin error", func(t *testing.T) {
		db := &FakeDB{BeginTxFn: func(context.Context, pgx.TxOptions) (pgx.Tx, error) {
			return nil, errors.New("begin")
		}}
		err := WithTx(ctx, db, func(Querier) error { return nil })
		require.ErrorContains(t, err, "begin")
	})

	t.Run("fn error rolls back", func(t *testing.T) {
		tx := &FakeTx{}
		db := &FakeDB{BeginTxFn: func(context.Context, pgx.TxOptions) (pgx.Tx, error) { return tx, nil }}
		err := WithTx(ctx, db, func(Querier) error { return errors.New("boom") })
		require.EqualError(t, err, "boom")
		require.True(t, tx.RolledBack)
		require.False(t, tx.Committed)
	})

	t.Run("commit error", func(t *testing.T) {
		tx := &FakeTx{CommitFn: func(context.Context) error { return errors.New("commit") }}
		db := &FakeDB{BeginTxFn: func(context.Context, pgx.TxOptions) (pgx.Tx, error) { return tx, nil }}
		err := WithTx(ctx, db, func(Querier) error { return nil })
		require.ErrorContains(t, err, "commit")
		require.True(t, tx.RolledBack)
	})

	t.Run("commit ok", func(t *testing.T) {
		tx := &FakeTx{}
		var gotOpts pgx.TxOptions
		db := &FakeDB{BeginTxFn: func(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
			gotOpts = opts
			return tx, nil
		}}
		called := false
		err := InTx(ctx, db, ReadOnlySnapshot, func(q Querier) error {
			called = true
			require.Same(t, tx, q)
			return nil
		})
		require.NoError(t, err)
		require.True(t, called)
		require.True(t, tx.Committed)
		require.False(t, tx.RolledBack)
		require.Equal(t, pgx.RepeatableRead, gotOpts.IsoLevel)
		require.Equal(t, pgx.ReadOnly, gotOpts.AccessMode)
	})

	t.Run("default begin shares fake funcs", func(t *testing.T) {
		execCalled := false
		db := &FakeDB{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			execCalled = true
			return pgconn.NewCommandTag("DELETE 1"), nil
		}}
		err := WithTx(ctx, db, func(q Querier) error {
			_, err := q.Exec(ctx, "DELETE")
			return err
		})
		require.NoError(t, err)
		require.True(t, execCalled)
	})
}
