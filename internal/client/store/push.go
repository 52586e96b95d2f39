package store

import (
	"context"

	"github.com/dmitrijs2005/lifedash/internal/record"
)

// enqueue pushes changed records and removes ids on the mirror in the
// background; failures are logged. It is a no-op when no mirror is
// configured. Must be called with s.mu held.
func (s *Store[T]) enqueue(ctx context.Context, changed []record.Record[T], removed []string) {
	if !s.remote.Configured() || (len(changed) == 0 && len(removed) == 0) {
		return
	}
	s.schedule(ctx, changed, removed, nil)
}

// enqueueSync schedules the push even without a mirror so the caller sees
// the "not configured" error. Must be called with s.mu held.
func (s *Store[T]) enqueueSync(ctx context.Context, changed []record.Record[T], removed []string) <-chan error {
	done := make(chan error, 1)
	s.schedule(ctx, changed, removed, done)
	return done
}

// schedule appends one push to the store's queue. The push outlives ctx's
// cancellation but not its values, and is bounded by PushTimeout. A nil done
// means the result is only logged.
func (s *Store[T]) schedule(ctx context.Context, changed []record.Record[T], removed []string, done chan<- error) {
	prev := s.tail
	tail := make(chan struct{})
	s.tail = tail

	s.pushes.Add(1)
	go func() {
		defer s.pushes.Done()
		defer close(tail)
		if prev != nil {
			<-prev
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.PushTimeout)
		defer cancel()

		err := s.push(ctx, changed, removed)
		if done != nil {
			done <- err
			return
		}
		if err != nil {
			s.logger.Warn(ctx, "remote push failed", "err", err)
		}
	}()
}

func (s *Store[T]) push(ctx context.Context, changed []record.Record[T], removed []string) error {
	rows, err := s.toRows(changed)
	if err != nil {
		return err
	}
	if len(rows) > 0 || !s.remote.Configured() {
		if err := s.remote.Push(ctx, s.opts.Name, rows); err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		if err := s.remote.Remove(ctx, s.opts.Name, removed); err != nil {
			return err
		}
	}
	s.logger.Debug(ctx, "remote push done", "pushed", len(rows), "removed", len(removed))
	return nil
}
