package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cashflow/internal/database"
	"cashflow/internal/model"
	"cashflow/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewSummary(t *testing.T) {
	s := NewSummary(
		decimal.RequireFromString("1000.00"),
		decimal.RequireFromString("500.00"),
		decimal.RequireFromString("200.00"),
	)
	require.Equal(t, "1300.00", s.FinalBalance.StringFixed(2))

	// 0.1 + 0.2 在浮點數下不等於 0.3
	s = NewSummary(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"), decimal.Zero)
	require.True(t, s.FinalBalance.Equal(decimal.RequireFromString("0.3")))

	s = NewSummary(decimal.RequireFromString("10"), decimal.Zero, decimal.RequireFromString("25.50"))
	require.Equal(t, "-15.50", s.FinalBalance.StringFixed(2))
}

func snapshotDB(t *testing.T, tx *database.FakeTx) *database.FakeDB {
	return &database.FakeDB{
		BeginTxFn: func(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
			require.Equal(t, database.ReadOnlySnapshot, opts)
			return tx, nil
		},
	}
}

func TestCalculateCashFlowSummary(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()

	t.Run("computes inside a snapshot", func(t *testing.T) {
		tx := &database.FakeTx{}
		getCashFlowByID = func(_ context.Context, q database.Querier, id int) (*model.CashFlow, error) {
			require.Same(t, tx, q)
			return &model.CashFlow{ID: id, InitialBalance: "1000.00"}, nil
		}
		sumEntriesReceived = func(_ context.Context, q database.Querier, _ int) (string, error) {
			require.Same(t, tx, q)
			return "500.00", nil
		}
		sumExpenses = func(context.Context, database.Querier, int) (string, error) { return "200.00", nil }

		s, err := CalculateCashFlowSummary(ctx, snapshotDB(t, tx), 1)
		require.NoError(t, err)
		require.Equal(t, "1000.00", s.InitialBalance.StringFixed(2))
		require.Equal(t, "500.00", s.TotalEntries.StringFixed(2))
		require.Equal(t, "200.00", s.TotalExpenses.StringFixed(2))
		require.Equal(t, "1300.00", s.FinalBalance.StringFixed(2))
		require.True(t, tx.Committed)
	})

	t.Run("empty period sums to zero", func(t *testing.T) {
		getCashFlowByID = func(context.Context, database.Querier, int) (*model.CashFlow, error) {
			return &model.CashFlow{InitialBalance: "0.00"}, nil
		}
		sumEntriesReceived = func(context.Context, database.Querier, int) (string, error) { return "0", nil }
		sumExpenses = func(context.Context, database.Querier, int) (string, error) { return "0", nil }

		s, err := CalculateCashFlowSummary(ctx, snapshotDB(t, &database.FakeTx{}), 1)
		require.NoError(t, err)
		require.True(t, s.FinalBalance.IsZero())
	})

	t.Run("missing period", func(t *testing.T) {
		tx := &database.FakeTx{}
		getCashFlowByID = func(context.Context, database.Querier, int) (*model.CashFlow, error) {
			return nil, fmt.Errorf("GetCashFlowByID: %w", store.ErrNotFound)
		}
		_, err := CalculateCashFlowSummary(ctx, snapshotDB(t, tx), 99)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.True(t, tx.RolledBack)
		require.False(t, tx.Committed)
	})

	t.Run("sum failure", func(t *testing.T) {
		getCashFlowByID = func(context.Context, database.Querier, int) (*model.CashFlow, error) {
			return &model.CashFlow{InitialBalance: "1"}, nil
		}
		sumEntriesReceived = func(context.Context, database.Querier, int) (string, error) { return "", errors.New("db") }
		_, err := CalculateCashFlowSummary(ctx, snapshotDB(t, &database.FakeTx{}), 1)
		require.EqualError(t, err, "db")
	})

	t.Run("unparseable amount", func(t *testing.T) {
		getCashFlowByID = func(context.Context, database.Querier, int) (*model.CashFlow, error) {
			return &model.CashFlow{InitialBalance: "abc"}, nil
		}
		sumEntriesReceived = func(context.Context, database.Querier, int) (string, error) { return "0", nil }
		sumExpenses = func(context.Context, database.Querier, int) (string, error) { return "0", nil }
		_, err := CalculateCashFlowSummary(ctx, snapshotDB(t, &database.FakeTx{}), 1)
		require.ErrorContains(t, err, "parse amount")
	})

	t.Run("begin failure", func(t *testing.T) {
		db := &database.FakeDB{
			BeginTxFn: func(context.Context, pgx.TxOptions) (pgx.Tx, error) { return nil, errors.New("pool closed") },
		}
		_, err := CalculateCashFlowSummary(ctx, db, 1)
		require.ErrorContains(t, err, "begin tx")
	})
}
