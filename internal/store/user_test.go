package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cashflow/internal/database"
	"cashflow/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func userVals(u *model.User) []any {
	return []any{u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.IsAdmin}
}

/* ---------- 完整測試 ---------- */

func TestUserStore(t *testing.T) {
	now := time.Now().UTC()
	sample := &model.User{
		ID:           7,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
		CreatedAt:    now,
		IsAdmin:      true,
	}

	/* --- GetUserByID --- */
	t.Run("GetUserByID success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{7}, args)
				return &fakeRow{vals: userVals(sample)}
			},
		}
		u, err := GetUserByID(context.Background(), db, 7)
		require.NoError(t, err)
		require.Equal(t, sample.Email, u.Email)
		require.True(t, u.IsAdmin)
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		u, err := GetUserByID(context.Background(), db, 999)
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})

	/* --- GetUserByEmail --- */
	t.Run("GetUserByEmail success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE email = $1")
				require.Equal(t, []any{"alice@example.com"}, args)
				return &fakeRow{vals: userVals(sample)}
			},
		}
		u, err := GetUserByEmail(context.Background(), db, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, 7, u.ID)
	})

	t.Run("GetUserByEmail not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByEmail(context.Background(), db, "bob@example.com")
		require.ErrorIs(t, err, ErrNotFound)
	})

	/* --- ListUsers --- */
	t.Run("ListUsers ordered newest first", func(t *testing.T) {
		older := *sample
		older.ID = 1
		rows := &fakeRows{data: [][]any{userVals(sample), userVals(&older)}}
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "ORDER BY created_at DESC")
				return rows, nil
			},
		}
		list, err := ListUsers(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, 7, list[0].ID)
		require.True(t, rows.closed)
	})

	t.Run("ListUsers empty is not nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return &fakeRows{}, nil },
		}
		list, err := ListUsers(context.Background(), db)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("ListUsers errors", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("db") },
		}
		_, err := ListUsers(context.Background(), db)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{data: [][]any{userVals(sample)}, scanErr: errors.New("scan")}, nil
		}
		_, err = ListUsers(context.Background(), db)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{err: errors.New("rows")}, nil
		}
		_, err = ListUsers(context.Background(), db)
		require.Error(t, err)
	})

	/* --- CreateUser --- */
	t.Run("CreateUser success", func(t *testing.T) {
		newUser := &model.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "pwdhash"}
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"Bob", "bob@example.com", "pwdhash", false}, args)
				return &fakeRow{vals: []any{42, now.Add(time.Hour)}}
			},
		}
		created, err := CreateUser(context.Background(), db, newUser)
		require.NoError(t, err)
		require.Equal(t, 42, created.ID)
		require.WithinDuration(t, now.Add(time.Hour), created.CreatedAt, time.Second)
	})

	t.Run("CreateUser duplicate email", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: uniqueViolation("users_email_key")}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{})
		require.ErrorIs(t, err, ErrConflict)
	})

	/* --- UpdateUser --- */
	t.Run("UpdateUser success", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				require.True(t, strings.HasPrefix(strings.TrimSpace(sql), "UPDATE users"))
				require.Equal(t, 7, args[4])
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, UpdateUser(context.Background(), db, sample))
	})

	t.Run("UpdateUser missing", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		require.ErrorIs(t, UpdateUser(context.Background(), db, sample), ErrNotFound)
	})

	/* --- DeleteUser --- */
	t.Run("DeleteUser success", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeleteUser(context.Background(), db, 7))
	})

	t.Run("DeleteUser not found", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		require.ErrorIs(t, DeleteUser(context.Background(), db, 7), ErrNotFound)
	})

	t.Run("DeleteUser error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("delete failed")
			},
		}
		err := DeleteUser(context.Background(), db, 7)
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrNotFound))
	})
}
