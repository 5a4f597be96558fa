package service

import (
	"context"
	"fmt"

	"cashflow/internal/database"
	"cashflow/internal/store"

	"github.com/shopspring/decimal"
)

var (
	getCashFlowByID    = store.GetCashFlowByID
	sumEntriesReceived = store.SumEntriesReceived
	sumExpenses        = store.SumExpenses
)

// Summary 帳本結餘：期初 + 實收 - 支出
type Summary struct {
	InitialBalance decimal.Decimal
	TotalEntries   decimal.Decimal
	TotalExpenses  decimal.Decimal
	FinalBalance   decimal.Decimal
}

func NewSummary(initial, received, spent decimal.Decimal) Summary {
	return Summary{
		InitialBalance: initial,
		TotalEntries:   received,
		TotalExpenses:  spent,
		FinalBalance:   initial.Add(received).Sub(spent),
	}
}

// CalculateCashFlowSummary 在同一個唯讀 REPEATABLE READ 交易中讀取期初與兩個總和，
// 帳本不存在時回傳 store.ErrNotFound
func CalculateCashFlowSummary(ctx context.Context, db database.DB, cashFlowID int) (*Summary, error) {
	var summary Summary
	err := database.InTx(ctx, db, database.ReadOnlySnapshot, func(q database.Querier) error {
		cf, err := getCashFlowByID(ctx, q, cashFlowID)
		if err != nil {
			return err
		}
		received, err := sumEntriesReceived(ctx, q, cashFlowID)
		if err != nil {
			return err
		}
		spent, err := sumExpenses(ctx, q, cashFlowID)
		if err != nil {
			return err
		}

		values := make([]decimal.Decimal, 3)
		for i, raw := range []string{cf.InitialBalance, received, spent} {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("parse amount %q: %w", raw, err)
			}
			values[i] = d
		}
		summary = NewSummary(values[0], values[1], values[2])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
