package pgmirror

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/dmitrijs2005/lifedash/internal/mirror/pgmirror/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded mirror schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate mirror: %w", err)
	}
	return nil
}

// OpenDB connects to Postgres through the pgx stdlib driver and migrates the
// schema.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Mirror is a mirror.Mirror talking to Postgres directly. Key of the
// connection settings is the account the rows are filed under.
type Mirror struct {
	db      *sql.DB
	account string
}

var _ mirror.Mirror = (*Mirror)(nil)

// New wraps an open database. The caller keeps ownership of migrations.
func New(db *sql.DB, account string) *Mirror {
	return &Mirror{db: db, account: account}
}

// Open connects using s.URL as the DSN and s.Key as the account.
func Open(ctx context.Context, s mirror.Settings) (*Mirror, error) {
	db, err := OpenDB(ctx, s.URL)
	if err != nil {
		return nil, mirror.Unavailable("postgres open", err)
	}
	account := s.Account
	if account == "" {
		account = s.Key
	}
	return New(db, account), nil
}

func (m *Mirror) Configured() bool { return true }

func (m *Mirror) Fetch(ctx context.Context, table string) ([]mirror.Row, error) {
	rows, err := NewRepository(m.db).SelectRows(ctx, m.account, table)
	if err != nil {
		return nil, mirror.Unavailable("fetch "+table, err)
	}
	return rows, nil
}

func (m *Mirror) Push(ctx context.Context, table string, rows []mirror.Row) error {
	if len(rows) == 0 {
		return nil
	}
	return mirror.Unavailable("push "+table, PushRows(ctx, m.db, m.account, table, rows))
}

func (m *Mirror) Remove(ctx context.Context, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return mirror.Unavailable("remove "+table, RemoveRows(ctx, m.db, m.account, table, ids))
}

func (m *Mirror) Ping(ctx context.Context) error {
	return mirror.Unavailable("ping", m.db.PingContext(ctx))
}

func (m *Mirror) Close() error { return m.db.Close() }
