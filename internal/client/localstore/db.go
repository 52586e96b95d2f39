package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/client/localstore/migrations"
	"github.com/dmitrijs2005/lifedash/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies the embedded kv schema. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate local cache: %w", err)
	}
	return nil
}

// OpenDB opens (creating if needed) the SQLite file at path and migrates it.
// ":memory:" opens a private in-memory database.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitDatabase opens the cache database at path and returns a Storage bound
// to it together with the handle the caller must close.
func InitDatabase(ctx context.Context, path string) (*SQLiteStorage, *sql.DB, error) {
	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return NewSQLiteStorage(db), db, nil
}
