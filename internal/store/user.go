package store

import (
	"context"

	"cashflow/internal/database"
	"cashflow/internal/model"
)

const userColumns = `id, name, email, password_hash, created_at, is_admin`

func scanUser(row rowScanner, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.IsAdmin,
	)
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrapErr("GetUserByID", err)
	}
	return u, nil
}

// GetUserByEmail 呼叫端需先將 email 轉為小寫
func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrapErr("GetUserByEmail", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.Querier) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, wrapErr("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, wrapErr("ListUsers", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListUsers", err)
	}
	return users, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, wrapErr("CreateUser", err)
	}
	return u, nil
}

// UpdateUser 覆寫姓名、Email、密碼雜湊與管理員旗標（供 seed 重設管理員）
func UpdateUser(ctx context.Context, db database.Querier, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, password_hash = $3, is_admin = $4
		 WHERE id = $5`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.ID,
	)
	if err != nil {
		return wrapErr("UpdateUser", err)
	}
	return expectAffected("UpdateUser", tag)
}

func DeleteUser(ctx context.Context, db database.Querier, ID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		ID,
	)
	if err != nil {
		return wrapErr("DeleteUser", err)
	}
	return expectAffected("DeleteUser", tag)
}
