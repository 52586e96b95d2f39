package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/lifedash/internal/client/localstore"
	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/logging"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/dmitrijs2005/lifedash/internal/record"
)

// Store is the local-first accessor of one feature collection. All methods
// are safe for concurrent use; mutations apply in the order they are issued.
type Store[T any] struct {
	opts   Options[T]
	cache  *localstore.Cache
	remote mirror.Mirror
	logger logging.Logger

	mu      sync.Mutex
	current record.Collection[T]

	// pushes run one after another in issue order; tail is the last queued
	pushes sync.WaitGroup
	tail   chan struct{}
}

// New builds a Store over cache and remote. A nil remote means local-only.
func New[T any](cache *localstore.Cache, remote mirror.Mirror, opts Options[T]) (*Store[T], error) {
	if !mirror.ValidTable(opts.Name) {
		return nil, fmt.Errorf("invalid collection name %q", opts.Name)
	}
	if cache == nil {
		return nil, fmt.Errorf("collection %s: cache is nil", opts.Name)
	}
	if remote == nil {
		remote = mirror.Disabled{}
	}
	opts.applyDefaults()

	return &Store[T]{
		opts:    opts,
		cache:   cache,
		remote:  remote,
		logger:  opts.Logger.With("module", "store", "collection", opts.Name),
		current: record.NewCollection[T](),
	}, nil
}

func (s *Store[T]) Name() string { return s.opts.Name }

// TrashEnabled reports whether the soft-delete state machine is available.
func (s *Store[T]) TrashEnabled() bool { return s.opts.Trash }

func (s *Store[T]) trashKey() string { return s.opts.Name + common.TrashKeySuffix }

// Load produces the authoritative collection: local, merged with the remote
// copy when one is reachable, written back to local. Records the remote lacks
// or holds an older copy of are pushed in the background. It never fails;
// every problem degrades to the best local data.
//
// The remote fetch runs without the store lock, so mutations issued while it
// is in flight go through and are part of the local side of the merge.
func (s *Store[T]) Load(ctx context.Context) record.Collection[T] {
	var (
		remote     record.Collection[T]
		remoteSeen bool
	)
	if s.remote.Configured() {
		var err error
		if remote, err = s.fetch(ctx); err != nil {
			s.logger.Warn(ctx, "remote fetch failed, using local cache", "err", err)
		} else {
			remoteSeen = true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	local := s.readLocal(ctx)
	merged := local
	if remoteSeen {
		merged = record.Merge(s.opts.Policy, local, remote)
		if back := record.Changed(remote, merged); len(back) > 0 {
			s.logger.Debug(ctx, "pushing records the remote lacks", "count", len(back))
			s.enqueue(ctx, back, nil)
		}
	}

	if merged.Len() == 0 && s.opts.Seed != nil && s.neverStored(ctx) {
		if s.remote.Configured() && !remoteSeen {
			// leave the cache empty so a later Load can still seed
			s.logger.Info(ctx, "seeding deferred until the remote answers")
			s.current = merged.Clone()
			return merged
		}
		merged = s.seed()
		s.logger.Info(ctx, "seeded new collection", "count", merged.Len())
		if remoteSeen {
			s.enqueue(ctx, merged.Records(), nil)
		}
	}

	s.writeLocal(ctx, merged)
	s.current = merged.Clone()
	return merged
}

// neverStored reports whether nothing was ever written for this collection.
func (s *Store[T]) neverStored(ctx context.Context) bool {
	return !s.cache.Has(ctx, s.opts.Name) && !s.cache.Has(ctx, s.trashKey())
}

func (s *Store[T]) seed() record.Collection[T] {
	now := record.Stamp(s.opts.Clock())
	out := record.NewCollection[T]()
	for _, data := range s.opts.Seed() {
		out.Put(record.Record[T]{ID: s.opts.NewID(), UpdatedAt: now, Data: data})
	}
	return out
}

// fetch reads and decodes the remote table, dropping rows that fail to open
// or validate.
func (s *Store[T]) fetch(ctx context.Context) (record.Collection[T], error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	rows, err := s.remote.Fetch(ctx, s.opts.Name)
	if err != nil {
		return record.Collection[T]{}, err
	}
	out := record.NewCollection[T]()
	for _, row := range rows {
		r, err := s.fromRow(row)
		if err != nil {
			s.logger.Warn(ctx, "dropping remote row", "id", row.ID, "err", err)
			continue
		}
		if cur, ok := out.Get(r.ID); ok && !r.UpdatedAt.After(cur.UpdatedAt) {
			continue
		}
		out.Put(r)
	}
	return out, nil
}

// readLocal unions the active and trash entries. Membership in a view is
// decided by DeletedAt alone, whichever entry a record was found in.
func (s *Store[T]) readLocal(ctx context.Context) record.Collection[T] {
	active := localstore.ReadCollectionWith[T](ctx, s.cache, s.opts.Name, s.opts.Validator)
	if !s.opts.Trash {
		return active
	}
	return active.Union(localstore.ReadCollectionWith[T](ctx, s.cache, s.trashKey(), s.opts.Validator))
}

func (s *Store[T]) writeLocal(ctx context.Context, c record.Collection[T]) {
	if !s.opts.Trash {
		localstore.WriteCollection(ctx, s.cache, s.opts.Name, c)
		return
	}
	localstore.WriteCollection(ctx, s.cache, s.opts.Name, c.Active())
	localstore.WriteCollection(ctx, s.cache, s.trashKey(), c.Trash())
}

// Snapshot returns a copy of the in-memory collection.
func (s *Store[T]) Snapshot() record.Collection[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Active returns records without a soft-delete marker.
func (s *Store[T]) Active() record.Collection[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Active()
}

// Trash returns soft-deleted records.
func (s *Store[T]) Trash() record.Collection[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Trash()
}

// Get returns one record by id from either view.
func (s *Store[T]) Get(id string) (record.Record[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Get(id)
}

// Save replaces the collection with next. The local cache is written before
// Save returns; changed records are pushed and records missing from next are
// removed remotely in the background.
func (s *Store[T]) Save(ctx context.Context, next record.Collection[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, next)
}

// Sync is Save for callers that need the outcome: it pushes every record of
// next, waits for the mirror and returns its error.
func (s *Store[T]) Sync(ctx context.Context, next record.Collection[T]) error {
	s.mu.Lock()
	prev := s.current
	s.current = next.Clone()
	s.writeLocal(ctx, s.current)
	done := s.enqueueSync(ctx, next.Records(), record.Removed(prev, next))
	s.mu.Unlock()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SaveKeepTrash replaces only the active view. The trash entry in local
// storage and the trashed records in memory are left as they are.
func (s *Store[T]) SaveKeepTrash(ctx context.Context, active record.Collection[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active = active.Active()
	next := active.Union(s.current.Trash())
	prev := s.current
	s.current = next

	localstore.WriteCollection(ctx, s.cache, s.opts.Name, active)
	s.enqueue(ctx, record.Changed(prev, next), record.Removed(prev, next))
}

// commit must be called with s.mu held.
func (s *Store[T]) commit(ctx context.Context, next record.Collection[T]) {
	prev := s.current
	s.current = next.Clone()
	s.writeLocal(ctx, s.current)
	s.enqueue(ctx, record.Changed(prev, s.current), record.Removed(prev, s.current))
}

// Wait blocks until every queued remote push has finished.
func (s *Store[T]) Wait() {
	s.pushes.Wait()
}
