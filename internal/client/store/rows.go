package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/dmitrijs2005/lifedash/internal/record"
)

var errSealedRow = errors.New("row is sealed and no passphrase is set")

// toRows encodes records for the mirror, sealing payloads when configured.
func (s *Store[T]) toRows(recs []record.Record[T]) ([]mirror.Row, error) {
	rows := make([]mirror.Row, 0, len(recs))
	for _, r := range recs {
		payload, err := json.Marshal(r.Data)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", r.ID, err)
		}
		row := mirror.Row{ID: r.ID, UpdatedAt: r.UpdatedAt, DeletedAt: r.DeletedAt, Payload: payload}
		if s.opts.Sealer != nil {
			if row.Payload, row.Nonce, err = s.opts.Sealer.Seal(payload); err != nil {
				return nil, fmt.Errorf("seal %s: %w", r.ID, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// fromRow decodes and validates one mirror row.
func (s *Store[T]) fromRow(row mirror.Row) (record.Record[T], error) {
	payload := row.Payload
	if len(row.Nonce) > 0 {
		if s.opts.Sealer == nil {
			return record.Record[T]{}, errSealedRow
		}
		var err error
		if payload, err = s.opts.Sealer.Open(row.Payload, row.Nonce); err != nil {
			return record.Record[T]{}, fmt.Errorf("open sealed row: %w", err)
		}
	}

	r := record.Record[T]{ID: row.ID, UpdatedAt: record.Stamp(row.UpdatedAt)}
	if row.DeletedAt != nil {
		d := record.Stamp(*row.DeletedAt)
		r.DeletedAt = &d
	}
	if err := json.Unmarshal(payload, &r.Data); err != nil {
		return record.Record[T]{}, fmt.Errorf("decode payload: %w", err)
	}
	if err := record.Check(s.opts.Validator, r); err != nil {
		return record.Record[T]{}, err
	}
	return r, nil
}
