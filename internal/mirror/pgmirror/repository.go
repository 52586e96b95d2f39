// Package pgmirror keeps mirrored collections in a hosted Postgres table.
//
// Rows of every feature share one physical table, partitioned by account and
// logical table name. The same Repository serves the client-side Mirror
// (direct DSN) and the mirror server.
package pgmirror

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/dbx"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
)

// Repository reads and writes mirror_rows over a dbx.DBTX (*sql.DB or *sql.Tx).
type Repository struct {
	db dbx.DBTX
}

func NewRepository(db dbx.DBTX) *Repository {
	return &Repository{db: db}
}

// SelectRows returns every row of account's table ordered by id.
func (r *Repository) SelectRows(ctx context.Context, account, table string) ([]mirror.Row, error) {
	query := `SELECT id, updated_at, deleted_at, payload, nonce FROM mirror_rows
		WHERE account=$1 AND tbl=$2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, account, table)
	if err != nil {
		return nil, fmt.Errorf("failed to select rows: %w", err)
	}
	defer rows.Close()

	var result []mirror.Row
	for rows.Next() {
		var (
			item    mirror.Row
			deleted sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.UpdatedAt, &deleted, &item.Payload, &item.Nonce); err != nil {
			return nil, err
		}
		if deleted.Valid {
			t := deleted.Time.UTC()
			item.DeletedAt = &t
		}
		item.UpdatedAt = item.UpdatedAt.UTC()
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpsertRow inserts row or overwrites the stored copy with the same id.
func (r *Repository) UpsertRow(ctx context.Context, account, table string, row mirror.Row) error {
	query := `
		INSERT INTO mirror_rows (account, tbl, id, updated_at, deleted_at, payload, nonce)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account, tbl, id)
		DO UPDATE SET
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at,
			payload = EXCLUDED.payload,
			nonce = EXCLUDED.nonce;
	`
	res, err := r.db.ExecContext(ctx, query,
		account, table, row.ID, row.UpdatedAt, row.DeletedAt, row.Payload, row.Nonce)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// DeleteRow removes one row. A missing row is not an error.
func (r *Repository) DeleteRow(ctx context.Context, account, table, id string) error {
	query := `DELETE FROM mirror_rows WHERE account=$1 AND tbl=$2 AND id=$3`
	if _, err := r.db.ExecContext(ctx, query, account, table, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// PushRows upserts all rows in one transaction.
func PushRows(ctx context.Context, db *sql.DB, account, table string, rows []mirror.Row) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewRepository(tx)
		for _, row := range rows {
			if err := repo.UpsertRow(ctx, account, table, row); err != nil {
				return fmt.Errorf("row %s: %w", row.ID, err)
			}
		}
		return nil
	})
}

// RemoveRows deletes ids in one transaction.
func RemoveRows(ctx context.Context, db *sql.DB, account, table string, ids []string) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewRepository(tx)
		for _, id := range ids {
			if err := repo.DeleteRow(ctx, account, table, id); err != nil {
				return err
			}
		}
		return nil
	})
}
