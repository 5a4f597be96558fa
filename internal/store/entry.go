package store

import (
	"context"

	"cashflow/internal/database"
	"cashflow/internal/model"
)

const entryColumns = `id, cash_flow_id, date::text, description,
	amount_expected::text, amount_received::text, created_at`

func scanEntry(row rowScanner, e *model.Entry) error {
	return row.Scan(
		&e.ID,
		&e.CashFlowID,
		&e.Date,
		&e.Description,
		&e.AmountExpected,
		&e.AmountReceived,
		&e.CreatedAt,
	)
}

func GetEntryByID(ctx context.Context, db database.Querier, id int) (*model.Entry, error) {
	row := db.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1`,
		id,
	)
	e := &model.Entry{}
	if err := scanEntry(row, e); err != nil {
		return nil, wrapErr("GetEntryByID", err)
	}
	return e, nil
}

// ListEntriesByCashFlow 依日期由舊到新排序，不含標籤
func ListEntriesByCashFlow(ctx context.Context, db database.Querier, cashFlowID int) ([]model.Entry, error) {
	rows, err := db.Query(ctx,
		`SELECT `+entryColumns+`
		 FROM entries WHERE cash_flow_id = $1
		 ORDER BY date ASC, id ASC`,
		cashFlowID,
	)
	if err != nil {
		return nil, wrapErr("ListEntriesByCashFlow", err)
	}
	defer rows.Close()

	list := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, wrapErr("ListEntriesByCashFlow", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListEntriesByCashFlow", err)
	}
	return list, nil
}

func CreateEntry(ctx context.Context, db database.Querier, e *model.Entry) (*model.Entry, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO entries (cash_flow_id, date, description, amount_expected, amount_received)
		 VALUES ($1, $2::date, $3, $4::numeric, $5::numeric)
		 RETURNING `+entryColumns,
		e.CashFlowID,
		e.Date,
		e.Description,
		e.AmountExpected,
		e.AmountReceived,
	)
	created := &model.Entry{}
	if err := scanEntry(row, created); err != nil {
		return nil, wrapErr("CreateEntry", err)
	}
	return created, nil
}

func UpdateEntry(ctx context.Context, db database.Querier, e *model.Entry) (*model.Entry, error) {
	row := db.QueryRow(ctx,
		`UPDATE entries SET
		     date = $1::date,
		     description = $2,
		     amount_expected = $3::numeric,
		     amount_received = $4::numeric
		 WHERE id = $5
		 RETURNING `+entryColumns,
		e.Date,
		e.Description,
		e.AmountExpected,
		e.AmountReceived,
		e.ID,
	)
	updated := &model.Entry{}
	if err := scanEntry(row, updated); err != nil {
		return nil, wrapErr("UpdateEntry", err)
	}
	return updated, nil
}

func DeleteEntry(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteEntry", err)
	}
	return expectAffected("DeleteEntry", tag)
}

func AddEntryTags(ctx context.Context, db database.Querier, entryID int, tagIDs []int) error {
	return entryTagLink.add(ctx, db, "AddEntryTags", entryID, tagIDs)
}

func ReplaceEntryTags(ctx context.Context, db database.Querier, entryID int, tagIDs []int) error {
	return entryTagLink.replace(ctx, db, "ReplaceEntryTags", entryID, tagIDs)
}

// ListEntryTags 回傳 entry id → 標籤（依名稱排序）
func ListEntryTags(ctx context.Context, db database.Querier, entryIDs []int) (map[int][]model.Tag, error) {
	return entryTagLink.list(ctx, db, "ListEntryTags", entryIDs)
}
