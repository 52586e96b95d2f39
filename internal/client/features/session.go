package features

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/localstore"
	"github.com/dmitrijs2005/lifedash/internal/client/store"
	"github.com/dmitrijs2005/lifedash/internal/cryptox"
	"github.com/dmitrijs2005/lifedash/internal/logging"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/dmitrijs2005/lifedash/internal/record"
)

// SessionOptions are shared by every store of a Session.
type SessionOptions struct {
	Logger       logging.Logger
	Sealer       *cryptox.Sealer
	Clock        func() time.Time
	NewID        func() string
	FetchTimeout time.Duration
	PushTimeout  time.Duration
}

// Session owns one store per feature over a single local cache and a single
// mirror. Build one per application session and pass it to consumers.
type Session struct {
	cache  *localstore.Cache
	remote mirror.Mirror
	logger logging.Logger

	Journal   *store.Store[JournalEntry]
	Memos     *store.Store[Memo]
	Notes     *store.Store[Note]
	Routines  *store.Store[RoutineItem]
	Sleep     *store.Store[SleepRecord]
	Timetable *store.Store[TimetableSlot]
	Schedule  *store.Store[ScheduleEntry]
	Playlist  *store.Store[PlaylistEntry]

	Prefs *Prefs

	all []collection
}

// collection is the type-independent part of a store.
type collection interface {
	Name() string
	Wait()
}

// loader adapts a typed store to a plain load for LoadAll.
type loader struct {
	collection
	load func(context.Context) int
}

func newStore[T any](cache *localstore.Cache, remote mirror.Mirror, so SessionOptions, o store.Options[T]) (*store.Store[T], error) {
	o.Logger = so.Logger
	o.Sealer = so.Sealer
	o.Clock = so.Clock
	o.NewID = so.NewID
	o.FetchTimeout = so.FetchTimeout
	o.PushTimeout = so.PushTimeout
	o.Validator = Validator()
	return store.New(cache, remote, o)
}

// NewSession wires the feature stores. A nil remote means local-only.
func NewSession(storage localstore.Storage, remote mirror.Mirror, opts SessionOptions) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop{}
	}
	if remote == nil {
		remote = mirror.Disabled{}
	}
	cache := localstore.NewCache(storage, opts.Logger)
	s := &Session{
		cache:  cache,
		remote: remote,
		logger: opts.Logger.With("module", "session"),
		Prefs:  NewPrefs(cache),
	}

	var err error
	if s.Journal, err = newStore(cache, remote, opts, store.Options[JournalEntry]{Name: JournalName}); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	if s.Memos, err = newStore(cache, remote, opts, store.Options[Memo]{Name: MemoName, Trash: true}); err != nil {
		return nil, fmt.Errorf("memos: %w", err)
	}
	if s.Notes, err = newStore(cache, remote, opts, store.Options[Note]{Name: NoteName, Trash: true}); err != nil {
		return nil, fmt.Errorf("notes: %w", err)
	}
	if s.Routines, err = newStore(cache, remote, opts, store.Options[RoutineItem]{Name: RoutineName, Seed: DefaultRoutines}); err != nil {
		return nil, fmt.Errorf("routines: %w", err)
	}
	if s.Sleep, err = newStore(cache, remote, opts, store.Options[SleepRecord]{Name: SleepName}); err != nil {
		return nil, fmt.Errorf("sleep: %w", err)
	}
	if s.Timetable, err = newStore(cache, remote, opts, store.Options[TimetableSlot]{Name: TimetableName}); err != nil {
		return nil, fmt.Errorf("timetable: %w", err)
	}
	if s.Schedule, err = newStore(cache, remote, opts, store.Options[ScheduleEntry]{Name: ScheduleName}); err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	if s.Playlist, err = newStore(cache, remote, opts, store.Options[PlaylistEntry]{Name: PlaylistName, Policy: PlaylistPolicy}); err != nil {
		return nil, fmt.Errorf("playlist: %w", err)
	}

	s.all = []collection{s.Journal, s.Memos, s.Notes, s.Routines, s.Sleep, s.Timetable, s.Schedule, s.Playlist}
	return s, nil
}

func (s *Session) loaders() []loader {
	return []loader{
		{s.Journal, func(ctx context.Context) int { return s.Journal.Load(ctx).Len() }},
		{s.Memos, func(ctx context.Context) int { return s.Memos.Load(ctx).Len() }},
		{s.Notes, func(ctx context.Context) int { return s.Notes.Load(ctx).Len() }},
		{s.Routines, func(ctx context.Context) int { return s.Routines.Load(ctx).Len() }},
		{s.Sleep, func(ctx context.Context) int { return s.Sleep.Load(ctx).Len() }},
		{s.Timetable, func(ctx context.Context) int { return s.Timetable.Load(ctx).Len() }},
		{s.Schedule, func(ctx context.Context) int { return s.Schedule.Load(ctx).Len() }},
		{s.Playlist, func(ctx context.Context) int { return s.Playlist.Load(ctx).Len() }},
	}
}

// LoadAll runs every store's load concurrently and returns the record count
// per collection. Loads never fail.
func (s *Session) LoadAll(ctx context.Context) map[string]int {
	ls := s.loaders()
	counts := make([]int, len(ls))

	var wg sync.WaitGroup
	for i, l := range ls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts[i] = l.load(ctx)
		}()
	}
	wg.Wait()

	out := make(map[string]int, len(ls))
	for i, l := range ls {
		out[l.Name()] = counts[i]
	}
	s.logger.Debug(ctx, "collections loaded", "counts", out)
	return out
}

// Remote is the mirror every store pushes to.
func (s *Session) Remote() mirror.Mirror { return s.remote }

// Cache is the shared local cache.
func (s *Session) Cache() *localstore.Cache { return s.cache }

// Wait blocks until every store drained its background pushes.
func (s *Session) Wait() {
	for _, c := range s.all {
		c.Wait()
	}
}

// Close drains pending pushes and releases the mirror.
func (s *Session) Close() error {
	s.Wait()
	return s.remote.Close()
}

// AddSlot creates a timetable slot after checking its routine link.
func (s *Session) AddSlot(ctx context.Context, slot TimetableSlot) (record.Record[TimetableSlot], error) {
	if err := CheckRoutineLink(slot, s.Routines.Snapshot()); err != nil {
		return record.Record[TimetableSlot]{}, err
	}
	return s.Timetable.Create(ctx, slot)
}

// ToggleRoutine flips the completion of routine id on date and reports the
// new state.
func (s *Session) ToggleRoutine(ctx context.Context, id, date string) (bool, error) {
	var done bool
	_, err := s.Routines.Update(ctx, id, func(r *RoutineItem) { done = r.Toggle(date) })
	return done, err
}

// WriteJournal creates or replaces the entry of date.
func (s *Session) WriteJournal(ctx context.Context, e JournalEntry) (record.Record[JournalEntry], error) {
	if cur, ok := JournalForDate(s.Journal.Snapshot(), e.Date); ok {
		return s.Journal.Update(ctx, cur.ID, func(j *JournalEntry) { *j = e })
	}
	return s.Journal.Create(ctx, e)
}
