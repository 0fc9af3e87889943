package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acadium/dashboard/internal/client/migrations"
	"github.com/acadium/dashboard/internal/client/repositories/localstore"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded local-store schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Local)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "local")
}

// RunRemoteMigrations applies the Postgres schema the PostgresClient expects.
// Production databases are managed by the backend; this is for local and
// test setups.
func RunRemoteMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Remote)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "remote")
}

// InitDatabase opens the SQLite file at dsn, applies migrations and returns
// the local store over it together with the handle, which the caller closes.
func InitDatabase(ctx context.Context, dsn string) (*localstore.SQLiteRepository, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open local store: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate local store: %w", err)
	}

	return localstore.NewSQLiteRepository(db), db, nil
}
