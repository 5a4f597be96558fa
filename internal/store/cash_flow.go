package store

import (
	"context"

	"cashflow/internal/database"
	"cashflow/internal/model"
)

const cashFlowColumns = `id, month, year, initial_balance::text, created_at`

func scanCashFlow(row rowScanner, cf *model.CashFlow) error {
	return row.Scan(
		&cf.ID,
		&cf.Month,
		&cf.Year,
		&cf.InitialBalance,
		&cf.CreatedAt,
	)
}

// ListCashFlows 依年、月由新到舊排序
func ListCashFlows(ctx context.Context, db database.Querier) ([]model.CashFlow, error) {
	rows, err := db.Query(ctx,
		`SELECT `+cashFlowColumns+`
		 FROM cash_flows ORDER BY year DESC, month DESC`,
	)
	if err != nil {
		return nil, wrapErr("ListCashFlows", err)
	}
	defer rows.Close()

	list := []model.CashFlow{}
	for rows.Next() {
		var cf model.CashFlow
		if err := scanCashFlow(rows, &cf); err != nil {
			return nil, wrapErr("ListCashFlows", err)
		}
		list = append(list, cf)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListCashFlows", err)
	}
	return list, nil
}

func GetCashFlowByID(ctx context.Context, db database.Querier, id int) (*model.CashFlow, error) {
	row := db.QueryRow(ctx,
		`SELECT `+cashFlowColumns+`
		 FROM cash_flows WHERE id = $1`,
		id,
	)
	cf := &model.CashFlow{}
	if err := scanCashFlow(row, cf); err != nil {
		return nil, wrapErr("GetCashFlowByID", err)
	}
	return cf, nil
}

func CashFlowExistsForPeriod(ctx context.Context, db database.Querier, month, year int) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cash_flows WHERE month = $1 AND year = $2)`,
		month,
		year,
	).Scan(&exists)
	if err != nil {
		return false, wrapErr("CashFlowExistsForPeriod", err)
	}
	return exists, nil
}

func CreateCashFlow(ctx context.Context, db database.Querier, cf *model.CashFlow) (*model.CashFlow, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO cash_flows (month, year, initial_balance)
		 VALUES ($1, $2, $3::numeric)
		 RETURNING id, initial_balance::text, created_at`,
		cf.Month,
		cf.Year,
		cf.InitialBalance,
	)
	if err := row.Scan(&cf.ID, &cf.InitialBalance, &cf.CreatedAt); err != nil {
		return nil, wrapErr("CreateCashFlow", err)
	}
	return cf, nil
}

func UpdateCashFlow(ctx context.Context, db database.Querier, cf *model.CashFlow) (*model.CashFlow, error) {
	row := db.QueryRow(ctx,
		`UPDATE cash_flows SET initial_balance = $1::numeric
		 WHERE id = $2
		 RETURNING `+cashFlowColumns,
		cf.InitialBalance,
		cf.ID,
	)
	updated := &model.CashFlow{}
	if err := scanCashFlow(row, updated); err != nil {
		return nil, wrapErr("UpdateCashFlow", err)
	}
	return updated, nil
}

// DeleteCashFlow 刪除帳本，收入、支出與其標籤關聯由外鍵 ON DELETE CASCADE 一併移除
func DeleteCashFlow(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM cash_flows WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteCashFlow", err)
	}
	return expectAffected("DeleteCashFlow", tag)
}

// SumEntriesReceived 回傳該帳本所有收入的實收總額（無資料時為 "0"）
func SumEntriesReceived(ctx context.Context, db database.Querier, cashFlowID int) (string, error) {
	var total string
	err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_received), 0)::text
		 FROM entries WHERE cash_flow_id = $1`,
		cashFlowID,
	).Scan(&total)
	if err != nil {
		return "", wrapErr("SumEntriesReceived", err)
	}
	return total, nil
}

// SumExpenses 回傳該帳本所有支出總額（無資料時為 "0"）
func SumExpenses(ctx context.Context, db database.Querier, cashFlowID int) (string, error) {
	var total string
	err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text
		 FROM expenses WHERE cash_flow_id = $1`,
		cashFlowID,
	).Scan(&total)
	if err != nil {
		return "", wrapErr("SumExpenses", err)
	}
	return total, nil
}
