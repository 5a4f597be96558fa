package store

import (
	"context"
	"fmt"

	"cashflow/internal/database"
	"cashflow/internal/model"
)

const tagColumns = `t.id, t.name, t.color, t.created_at`

func scanTag(row rowScanner, t *model.Tag) error {
	return row.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt)
}

func ListTags(ctx context.Context, db database.Querier) ([]model.Tag, error) {
	rows, err := db.Query(ctx,
		`SELECT `+tagColumns+` FROM tags t ORDER BY t.name ASC, t.id ASC`,
	)
	if err != nil {
		return nil, wrapErr("ListTags", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := scanTag(rows, &t); err != nil {
			return nil, wrapErr("ListTags", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListTags", err)
	}
	return tags, nil
}

func CreateTag(ctx context.Context, db database.Querier, t *model.Tag) (*model.Tag, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tags (name, color) VALUES ($1, $2)
		 RETURNING id, created_at`,
		t.Name,
		t.Color,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, wrapErr("CreateTag", err)
	}
	return t, nil
}

func DeleteTag(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteTag", err)
	}
	return expectAffected("DeleteTag", tag)
}

// tagLink 描述一張關聯表，例如 entry_tags(entry_id, tag_id)
type tagLink struct {
	table  string
	column string
}

var (
	entryTagLink   = tagLink{table: "entry_tags", column: "entry_id"}
	expenseTagLink = tagLink{table: "expense_tags", column: "expense_id"}
)

func (l tagLink) add(ctx context.Context, db database.Querier, op string, ownerID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := db.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s, tag_id)
		 SELECT $1, unnest($2::int[])
		 ON CONFLICT DO NOTHING`, l.table, l.column),
		ownerID,
		tagIDs,
	)
	return wrapErr(op, err)
}

// replace 先刪除全部關聯再重新寫入；呼叫端必須在交易內執行
func (l tagLink) replace(ctx context.Context, db database.Querier, op string, ownerID int, tagIDs []int) error {
	if _, err := db.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, l.table, l.column),
		ownerID,
	); err != nil {
		return wrapErr(op, err)
	}
	return l.add(ctx, db, op, ownerID, tagIDs)
}

func (l tagLink) list(ctx context.Context, db database.Querier, op string, ownerIDs []int) (map[int][]model.Tag, error) {
	result := make(map[int][]model.Tag, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT l.%s, `+tagColumns+`
		 FROM %s l JOIN tags t ON t.id = l.tag_id
		 WHERE l.%s = ANY($1)
		 ORDER BY t.name ASC, t.id ASC`, l.column, l.table, l.column),
		ownerIDs,
	)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID int
		var t model.Tag
		if err := rows.Scan(&ownerID, &t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, wrapErr(op, err)
		}
		result[ownerID] = append(result[ownerID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return result, nil
}
