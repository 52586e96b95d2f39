package entries

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/dmitrijs2005/lifedash/internal/mirror/pgmirror"
)

// PostgresRepository keeps rows in the mirror_rows table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Fetch(ctx context.Context, account, table string) ([]mirror.Row, error) {
	return pgmirror.NewRepository(r.db).SelectRows(ctx, account, table)
}

func (r *PostgresRepository) Push(ctx context.Context, account, table string, rows []mirror.Row) error {
	return pgmirror.PushRows(ctx, r.db, account, table, rows)
}

func (r *PostgresRepository) Remove(ctx context.Context, account, table string, ids []string) error {
	return pgmirror.RemoveRows(ctx, r.db, account, table, ids)
}
