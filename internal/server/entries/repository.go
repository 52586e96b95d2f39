package entries

import (
	"context"

	"github.com/dmitrijs2005/lifedash/internal/mirror"
)

// Repository stores mirrored rows partitioned by account and table.
type Repository interface {
	Fetch(ctx context.Context, account, table string) ([]mirror.Row, error)
	Push(ctx context.Context, account, table string, rows []mirror.Row) error
	Remove(ctx context.Context, account, table string, ids []string) error
}
