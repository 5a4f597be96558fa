package store

import (
	"context"

	"cashflow/internal/database"
	"cashflow/internal/model"
)

const expenseColumns = `id, cash_flow_id, date::text, description, amount::text, created_at`

func scanExpense(row rowScanner, e *model.Expense) error {
	return row.Scan(
		&e.ID,
		&e.CashFlowID,
		&e.Date,
		&e.Description,
		&e.Amount,
		&e.CreatedAt,
	)
}

func GetExpenseByID(ctx context.Context, db database.Querier, id int) (*model.Expense, error) {
	row := db.QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`,
		id,
	)
	e := &model.Expense{}
	if err := scanExpense(row, e); err != nil {
		return nil, wrapErr("GetExpenseByID", err)
	}
	return e, nil
}

func ListExpensesByCashFlow(ctx context.Context, db database.Querier, cashFlowID int) ([]model.Expense, error) {
	rows, err := db.Query(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses WHERE cash_flow_id = $1
		 ORDER BY date ASC, id ASC`,
		cashFlowID,
	)
	if err != nil {
		return nil, wrapErr("ListExpensesByCashFlow", err)
	}
	defer rows.Close()

	list := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, wrapErr("ListExpensesByCashFlow", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListExpensesByCashFlow", err)
	}
	return list, nil
}

func CreateExpense(ctx context.Context, db database.Querier, e *model.Expense) (*model.Expense, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO expenses (cash_flow_id, date, description, amount)
		 VALUES ($1, $2::date, $3, $4::numeric)
		 RETURNING `+expenseColumns,
		e.CashFlowID,
		e.Date,
		e.Description,
		e.Amount,
	)
	created := &model.Expense{}
	if err := scanExpense(row, created); err != nil {
		return nil, wrapErr("CreateExpense", err)
	}
	return created, nil
}

func UpdateExpense(ctx context.Context, db database.Querier, e *model.Expense) (*model.Expense, error) {
	row := db.QueryRow(ctx,
		`UPDATE expenses SET
		     date = $1::date,
		     description = $2,
		     amount = $3::numeric
		 WHERE id = $4
		 RETURNING `+expenseColumns,
		e.Date,
		e.Description,
		e.Amount,
		e.ID,
	)
	updated := &model.Expense{}
	if err := scanExpense(row, updated); err != nil {
		return nil, wrapErr("UpdateExpense", err)
	}
	return updated, nil
}

func DeleteExpense(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteExpense", err)
	}
	return expectAffected("DeleteExpense", tag)
}

func AddExpenseTags(ctx context.Context, db database.Querier, expenseID int, tagIDs []int) error {
	return expenseTagLink.add(ctx, db, "AddExpenseTags", expenseID, tagIDs)
}

func ReplaceExpenseTags(ctx context.Context, db database.Querier, expenseID int, tagIDs []int) error {
	return expenseTagLink.replace(ctx, db, "ReplaceExpenseTags", expenseID, tagIDs)
}

func ListExpenseTags(ctx context.Context, db database.Querier, expenseIDs []int) (map[int][]model.Tag, error) {
	return expenseTagLink.list(ctx, db, "ListExpenseTags", expenseIDs)
}
