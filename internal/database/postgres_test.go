package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr, downErr error
	ran            *string
}

func (f fakeMigrator) Up() error {
	*f.ran = "up"
	return f.upErr
}

func (f fakeMigrator) Down() error {
	*f.ran = "down"
	return f.downErr
}

func restore() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(context.Context, string) (*pgxpool.Pool, error) { return nil, errors.New("bad") }
	_, err := NewPgxPool(context.Background(), "postgres://x")
	require.EqualError(t, err, "bad")

	pgxpoolNew = func(_ context.Context, url string) (*pgxpool.Pool, error) {
		require.Equal(t, "postgres://x", url)
		return &pgxpool.Pool{}, nil
	}
	db, err := NewPgxPool(context.Background(), "postgres://x")
	require.NoError(t, err)
	require.NotNil(t, db)
}

// migrationStubs 讓 newMigrator 的每一步都成功，個別案例再覆寫失敗的那一步
func migrationStubs(m fakeMigrator) {
	sqlOpenDB = func(driver, dsn string) (*sql.DB, error) { return sql.Open(driver, dsn) }
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(source string, _ src.Driver, database string, _ dbdriver.Driver) (migrateInstance, error) {
		if source != "iofs" || database != "postgres" {
			return nil, errors.New("unexpected drivers")
		}
		return m, nil
	}
}

func TestMigrationOperations(t *testing.T) {
	ops := []struct {
		name string
		fn   func(string) error
		with func(err error) fakeMigrator
	}{
		{"up", RunMigrations, func(err error) fakeMigrator { return fakeMigrator{upErr: err} }},
		{"down", RollbackAll, func(err error) fakeMigrator { return fakeMigrator{downErr: err} }},
	}
	cases := []struct {
		name    string
		migErr  error
		breakFn func()
		wantErr string
		wantRan bool
	}{
		{name: "applied", wantRan: true},
		{name: "no change is success", migErr: migrate.ErrNoChange, wantRan: true},
		{name: "migration fails", migErr: errors.New("dirty"), wantErr: "dirty", wantRan: true},
		{name: "open fails", wantErr: "open", breakFn: func() {
			sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		}},
		{name: "driver fails", wantErr: "drv", breakFn: func() {
			postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") }
		}},
		{name: "source fails", wantErr: "src", breakFn: func() {
			iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, errors.New("src") }
		}},
		{name: "instance fails", wantErr: "mig", breakFn: func() {
			migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
				return nil, errors.New("mig")
			}
		}},
	}

	for _, op := range ops {
		for _, tc := range cases {
			t.Run(op.name+"/"+tc.name, func(t *testing.T) {
				t.Cleanup(restore)
				ran := ""
				m := op.with(tc.migErr)
				m.ran = &ran
				migrationStubs(m)
				if tc.breakFn != nil {
					tc.breakFn()
				}

				err := op.fn("postgres://x")
				if tc.wantErr != "" {
					require.EqualError(t, err, tc.wantErr)
				} else {
					require.NoError(t, err)
				}
				if tc.wantRan {
					require.Equal(t, op.name, ran)
				} else {
					require.Empty(t, ran)
				}
			})
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{"000001_init.up.sql", "000001_init.down.sql"}, names)

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	for _, want := range []string{
		"UNIQUE (month, year)",
		"ON DELETE CASCADE",
		"NUMERIC(15, 2)",
		"DEFAULT '#6366f1'",
		"PRIMARY KEY (entry_id, tag_id)",
		"PRIMARY KEY (expense_id, tag_id)",
	} {
		require.Contains(t, string(up), want)
	}

	down, err := fs.ReadFile(migrationsFS, "migrations/000001_init.down.sql")
	require.NoError(t, err)
	require.Contains(t, string(down), "DROP TABLE IF EXISTS cash_flows")
}
