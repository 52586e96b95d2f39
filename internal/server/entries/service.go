// Package entries implements the server-side rules for mirrored rows: table
// and row validation on top of a Repository.
package entries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
)

const (
	MaxBatch      = 5000
	MaxIDLength   = 128
	MaxPayloadLen = 1 << 20
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Fetch(ctx context.Context, account, table string) ([]mirror.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	rows, err := s.repo.Fetch(ctx, account, table)
	if err != nil {
		return nil, fmt.Errorf("error fetching rows: %w", err)
	}
	return rows, nil
}

func (s *Service) Push(ctx context.Context, account, table string, rows []mirror.Row) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(rows) > MaxBatch {
		return fmt.Errorf("%w: batch of %d rows exceeds %d", common.ErrInvalidRecord, len(rows), MaxBatch)
	}
	for _, r := range rows {
		if err := checkRow(r); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.repo.Push(ctx, account, table, rows); err != nil {
		return fmt.Errorf("error pushing rows: %w", err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, account, table string, ids []string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(ids) > MaxBatch {
		return fmt.Errorf("%w: batch of %d ids exceeds %d", common.ErrInvalidRecord, len(ids), MaxBatch)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.Remove(ctx, account, table, ids); err != nil {
		return fmt.Errorf("error removing rows: %w", err)
	}
	return nil
}

func checkTable(table string) error {
	if !mirror.ValidTable(table) {
		return fmt.Errorf("%w: bad table name %q", common.ErrInvalidRecord, table)
	}
	return nil
}

func checkRow(r mirror.Row) error {
	switch {
	case r.ID == "" || len(r.ID) > MaxIDLength:
		return fmt.Errorf("%w: bad id %q", common.ErrInvalidRecord, r.ID)
	case r.UpdatedAt.IsZero():
		return fmt.Errorf("%w: row %s has no updatedAt", common.ErrInvalidRecord, r.ID)
	case len(r.Payload) > MaxPayloadLen:
		return fmt.Errorf("%w: row %s payload too large", common.ErrInvalidRecord, r.ID)
	}
	return nil
}
