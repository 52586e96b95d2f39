package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/record"
)

func (s *Store[T]) now() time.Time { return record.Stamp(s.opts.Clock()) }

// clonePayload deep-copies v so edits cannot reach the stored record through
// shared slices or maps.
func clonePayload[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}

// Create adds a record with a fresh id and saves.
func (s *Store[T]) Create(ctx context.Context, data T) (record.Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := record.Record[T]{ID: s.opts.NewID(), UpdatedAt: s.now(), Data: data}
	if err := record.Check(s.opts.Validator, r); err != nil {
		return record.Record[T]{}, err
	}
	next := s.current.Clone()
	next.Put(r)
	s.commit(ctx, next)
	return r, nil
}

// Update applies fn to a copy of record id's payload, bumps UpdatedAt and
// saves. An invalid result leaves the collection unchanged.
func (s *Store[T]) Update(ctx context.Context, id string, fn func(*T)) (record.Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.current.Get(id)
	if !ok {
		return record.Record[T]{}, fmt.Errorf("%s %s: %w", s.opts.Name, id, common.ErrNotFound)
	}
	data, err := clonePayload(r.Data)
	if err != nil {
		return record.Record[T]{}, err
	}
	fn(&data)
	r.Data = data
	r.UpdatedAt = s.now()
	if err := record.Check(s.opts.Validator, r); err != nil {
		return record.Record[T]{}, err
	}
	next := s.current.Clone()
	next.Put(r)
	s.commit(ctx, next)
	return r, nil
}

// Delete removes record id outright, locally and remotely.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Has(id) {
		return fmt.Errorf("%s %s: %w", s.opts.Name, id, common.ErrNotFound)
	}
	next := s.current.Clone()
	next.Remove(id)
	s.commit(ctx, next)
	return nil
}

// MoveToTrash marks an active record deleted. It is reversible with Restore.
func (s *Store[T]) MoveToTrash(ctx context.Context, id string) error {
	return s.transition(ctx, id, false, func(r *record.Record[T], now time.Time) {
		r.DeletedAt = &now
	})
}

// Restore returns a trashed record to the active view.
func (s *Store[T]) Restore(ctx context.Context, id string) error {
	return s.transition(ctx, id, true, func(r *record.Record[T], _ time.Time) {
		r.DeletedAt = nil
	})
}

// transition moves record id out of the view named by fromTrash.
func (s *Store[T]) transition(ctx context.Context, id string, fromTrash bool, apply func(*record.Record[T], time.Time)) error {
	if !s.opts.Trash {
		return common.ErrTrashDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.current.Get(id)
	if !ok || r.Trashed() != fromTrash {
		return fmt.Errorf("%s %s: %w", s.opts.Name, id, common.ErrNotFound)
	}
	now := s.now()
	apply(&r, now)
	r.UpdatedAt = now

	next := s.current.Clone()
	next.Put(r)
	s.commit(ctx, next)
	return nil
}

// Purge removes record id permanently, from whichever view holds it.
func (s *Store[T]) Purge(ctx context.Context, id string) error {
	if !s.opts.Trash {
		return common.ErrTrashDisabled
	}
	return s.Delete(ctx, id)
}

// EmptyTrash purges every trashed record and returns how many went.
func (s *Store[T]) EmptyTrash(ctx context.Context) (int, error) {
	if !s.opts.Trash {
		return 0, common.ErrTrashDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Active()
	n := s.current.Len() - next.Len()
	if n > 0 {
		s.commit(ctx, next)
	}
	return n, nil
}
