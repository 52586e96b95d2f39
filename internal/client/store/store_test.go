package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/localstore"
	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/cryptox"
	"github.com/dmitrijs2005/lifedash/internal/logging"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journal struct {
	Date    string `json:"date" validate:"required,date"`
	Content string `json:"content" validate:"max=10000"`
}

type note struct {
	Title string   `json:"title" validate:"required"`
	Tags  []string `json:"tags,omitempty"`
}

// fakeClock advances one second per reading.
type fakeClock struct{ n atomic.Int64 }

func (c *fakeClock) Now() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(c.n.Add(1)) * time.Second)
}

func seqIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("%s%d", prefix, n.Add(1)) }
}

func newStore[T any](t *testing.T, cache *localstore.Cache, remote mirror.Mirror, opts Options[T]) *Store[T] {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = (&fakeClock{}).Now
	}
	if opts.NewID == nil {
		opts.NewID = seqIDs(opts.Name[:1])
	}
	s, err := New(cache, remote, opts)
	require.NoError(t, err)
	t.Cleanup(s.Wait)
	return s
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNew_RejectsBadName(t *testing.T) {
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	_, err := New(cache, nil, Options[journal]{Name: "Bad Name"})
	assert.Error(t, err)
	_, err = New[journal](nil, nil, Options[journal]{Name: "journal"})
	assert.Error(t, err)
}

func TestJournal_RoundTripAfterReload(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), logging.Nop{})

	s := newStore(t, cache, nil, Options[journal]{Name: "journal"})
	assert.Equal(t, 0, s.Load(ctx).Len())

	_, err := s.Create(ctx, journal{Date: "2024-01-01", Content: "hello"})
	require.NoError(t, err)

	reloaded := newStore(t, cache, nil, Options[journal]{Name: "journal"}).Load(ctx)
	require.Equal(t, 1, reloaded.Len())
	got := reloaded.Records()[0].Data
	assert.Equal(t, "2024-01-01", got.Date)
	assert.Equal(t, "hello", got.Content)
}

func TestJournal_RoundTripOverSQLite(t *testing.T) {
	ctx := context.Background()
	st, db, err := localstore.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	cache := localstore.NewCache(st, nil)

	s := newStore(t, cache, nil, Options[journal]{Name: "journal"})
	s.Load(ctx)
	_, err = s.Create(ctx, journal{Date: "2024-01-01", Content: "hello"})
	require.NoError(t, err)

	got := newStore(t, cache, nil, Options[journal]{Name: "journal"}).Load(ctx)
	assert.True(t, s.Snapshot().Equal(got))
}

func TestCreate_InvalidPayloadIsRejected(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	s := newStore(t, cache, nil, Options[journal]{Name: "journal"})
	s.Load(ctx)

	_, err := s.Create(ctx, journal{Date: "01/01/2024"})
	assert.ErrorIs(t, err, common.ErrInvalidRecord)
	assert.Equal(t, 0, s.Snapshot().Len())
}

func TestNotes_TrashAndRestore(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	opts := Options[note]{Name: "notes", Trash: true}
	s := newStore(t, cache, nil, opts)
	s.Load(ctx)

	s.Save(ctx, record.NewCollection(
		record.Record[note]{ID: "n1", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "first"}},
		record.Record[note]{ID: "n2", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "second"}},
	))

	require.NoError(t, s.MoveToTrash(ctx, "n1"))
	assert.False(t, s.Active().Has("n1"))
	assert.True(t, s.Trash().Has("n1"))

	// a fresh session sees the same partition
	again := newStore(t, cache, nil, opts)
	loaded := again.Load(ctx)
	assert.False(t, loaded.Active().Has("n1"))
	assert.True(t, loaded.Trash().Has("n1"))

	require.NoError(t, again.Restore(ctx, "n1"))
	assert.True(t, again.Active().Has("n1"))
	assert.False(t, again.Trash().Has("n1"))

	loaded = newStore(t, cache, nil, opts).Load(ctx)
	assert.True(t, loaded.Active().Has("n1"))
	assert.Equal(t, 0, loaded.Trash().Len())
}

func TestTrash_PartitionInvariant(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	s := newStore(t, cache, nil, Options[note]{Name: "notes", Trash: true})
	s.Load(ctx)

	for i := 0; i < 6; i++ {
		_, err := s.Create(ctx, note{Title: fmt.Sprintf("n%d", i)})
		require.NoError(t, err)
	}
	require.NoError(t, s.MoveToTrash(ctx, "n1"))
	require.NoError(t, s.MoveToTrash(ctx, "n3"))
	require.NoError(t, s.MoveToTrash(ctx, "n5"))
	require.NoError(t, s.Restore(ctx, "n3"))
	require.NoError(t, s.Purge(ctx, "n5"))

	all := s.Snapshot()
	active, trash := s.Active(), s.Trash()
	assert.Equal(t, all.Len(), active.Len()+trash.Len())
	for _, id := range all.IDs() {
		assert.NotEqual(t, active.Has(id), trash.Has(id), id)
		r, _ := all.Get(id)
		assert.Equal(t, r.Trashed(), trash.Has(id), id)
	}
	assert.Equal(t, []string{"n1"}, trash.IDs())
}

func TestTrash_MissingIDsLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	s := newStore(t, cache, nil, Options[note]{Name: "notes", Trash: true})
	s.Load(ctx)
	_, err := s.Create(ctx, note{Title: "keep"})
	require.NoError(t, err)
	before := s.Snapshot()

	assert.ErrorIs(t, s.MoveToTrash(ctx, "nope"), common.ErrNotFound)
	assert.ErrorIs(t, s.Restore(ctx, "n1"), common.ErrNotFound) // not trashed
	assert.ErrorIs(t, s.Purge(ctx, "nope"), common.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), common.ErrNotFound)
	_, err = s.Update(ctx, "nope", func(*note) {})
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, s.MoveToTrash(ctx, "n1"))
	assert.ErrorIs(t, s.MoveToTrash(ctx, "n1"), common.ErrNotFound) // already trashed

	assert.True(t, before.Records()[0].Data.Title == s.Snapshot().Records()[0].Data.Title)
}

func TestTrash_Disabled(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	s := newStore(t, cache, nil, Options[journal]{Name: "journal"})
	s.Load(ctx)

	assert.False(t, s.TrashEnabled())
	assert.ErrorIs(t, s.MoveToTrash(ctx, "x"), common.ErrTrashDisabled)
	assert.ErrorIs(t, s.Restore(ctx, "x"), common.ErrTrashDisabled)
	assert.ErrorIs(t, s.Purge(ctx, "x"), common.ErrTrashDisabled)
	_, err := s.EmptyTrash(ctx)
	assert.ErrorIs(t, err, common.ErrTrashDisabled)
}

func TestEmptyTrash(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()
	s := newStore(t, cache, remote, Options[note]{Name: "notes", Trash: true})
	s.Load(ctx)

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, note{Title: title})
		require.NoError(t, err)
	}
	require.NoError(t, s.MoveToTrash(ctx, "n1"))
	require.NoError(t, s.MoveToTrash(ctx, "n2"))

	n, err := s.EmptyTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, s.Trash().Len())

	n, err = s.EmptyTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	s.Wait()
	rows, err := remote.Fetch(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "n3", rows[0].ID)
}

func TestSaveKeepTrash_LeavesTrashEntryUntouched(t *testing.T) {
	ctx := context.Background()
	storage := localstore.NewMemoryStorage()
	cache := localstore.NewCache(storage, nil)
	s := newStore(t, cache, nil, Options[note]{Name: "memos", Trash: true})
	s.Load(ctx)

	_, err := s.Create(ctx, note{Title: "live"})
	require.NoError(t, err)
	_, err = s.Create(ctx, note{Title: "binned"})
	require.NoError(t, err)
	require.NoError(t, s.MoveToTrash(ctx, "m2"))

	trashBefore, err := storage.Get(ctx, "memos.trash")
	require.NoError(t, err)

	active := s.Active()
	r, _ := active.Get("m1")
	r.Data.Title = "edited"
	active.Put(r)
	active.Put(record.Record[note]{ID: "m9", UpdatedAt: ts("2024-02-01T00:00:00Z"), Data: note{Title: "new"}})
	s.SaveKeepTrash(ctx, active)

	trashAfter, err := storage.Get(ctx, "memos.trash")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(trashBefore, trashAfter))

	assert.True(t, s.Trash().Has("m2"))
	got, _ := s.Get("m1")
	assert.Equal(t, "edited", got.Data.Title)

	reloaded := newStore(t, cache, nil, Options[note]{Name: "memos", Trash: true}).Load(ctx)
	assert.Equal(t, []string{"m1", "m9"}, reloaded.Active().IDs())
	assert.Equal(t, []string{"m2"}, reloaded.Trash().IDs())
}

func TestUpdate_DoesNotLeakIntoSnapshotOnFailure(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	s := newStore(t, cache, nil, Options[note]{Name: "notes", Trash: true})
	s.Load(ctx)

	_, err := s.Create(ctx, note{Title: "t", Tags: []string{"a", "b"}})
	require.NoError(t, err)

	_, err = s.Update(ctx, "n1", func(n *note) {
		n.Tags[0] = "mutated"
		n.Title = ""
	})
	assert.ErrorIs(t, err, common.ErrInvalidRecord)

	got, _ := s.Get("n1")
	assert.Equal(t, []string{"a", "b"}, got.Data.Tags)
	assert.Equal(t, "t", got.Data.Title)

	updated, err := s.Update(ctx, "n1", func(n *note) { n.Title = "renamed" })
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(got.UpdatedAt))
}

func TestSeed_OnlyOnFirstRun(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	opts := Options[note]{Name: "routines", Seed: func() []note {
		return []note{{Title: "Drink water"}, {Title: "Stretch"}}
	}}

	s := newStore(t, cache, nil, opts)
	assert.Equal(t, 2, s.Load(ctx).Len())

	// seeds persist
	again := newStore(t, cache, nil, opts)
	assert.Equal(t, 2, again.Load(ctx).Len())

	// an emptied collection stays empty
	again.Save(ctx, record.NewCollection[note]())
	assert.Equal(t, 0, newStore(t, cache, nil, opts).Load(ctx).Len())
}

func TestLoad_MergesRemote(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()

	localstore.WriteCollection(ctx, cache, "notes", record.NewCollection(
		record.Record[note]{ID: "r1", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "old"}},
		record.Record[note]{ID: "local-only", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "mine"}},
	))
	require.NoError(t, remote.Push(ctx, "notes", []mirror.Row{
		{ID: "r1", UpdatedAt: ts("2024-01-02T00:00:00Z"), Payload: []byte(`{"title":"new"}`)},
		{ID: "remote-only", UpdatedAt: ts("2024-01-01T00:00:00Z"), Payload: []byte(`{"title":"theirs"}`)},
		{ID: "broken", UpdatedAt: ts("2024-01-01T00:00:00Z"), Payload: []byte(`{"title":""}`)},
	}))

	s := newStore(t, cache, remote, Options[note]{Name: "notes", Trash: true})
	merged := s.Load(ctx)

	r1, ok := merged.Get("r1")
	require.True(t, ok)
	assert.Equal(t, "new", r1.Data.Title)
	assert.True(t, merged.Has("local-only"))
	assert.True(t, merged.Has("remote-only"))
	assert.False(t, merged.Has("broken"))

	// local caught up with the remote-only record
	local := localstore.ReadCollection[note](ctx, cache, "notes")
	assert.True(t, local.Has("remote-only"))

	// the remote received the local-only record
	s.Wait()
	rows, err := remote.Fetch(ctx, "notes")
	require.NoError(t, err)
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "local-only")
}

func TestLoad_RemoteWinsPolicy(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()

	localstore.WriteCollection(ctx, cache, "playlist", record.NewCollection(
		record.Record[note]{ID: "v1", UpdatedAt: ts("2024-03-01T00:00:00Z"), Data: note{Title: "local newer"}},
	))
	require.NoError(t, remote.Push(ctx, "playlist", []mirror.Row{
		{ID: "v1", UpdatedAt: ts("2024-01-01T00:00:00Z"), Payload: []byte(`{"title":"remote older"}`)},
	}))

	s := newStore(t, cache, remote, Options[note]{Name: "playlist", Policy: record.RemoteWins})
	got, _ := s.Load(ctx).Get("v1")
	assert.Equal(t, "remote older", got.Data.Title)
}

func TestLoad_RemoteAlwaysFails(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()
	remote.Fail(errors.New("network down"))

	localstore.WriteCollection(ctx, cache, "journal", record.NewCollection(
		record.Record[journal]{ID: "j1", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: journal{Date: "2024-01-01", Content: "offline"}},
	))

	s := newStore(t, cache, remote, Options[journal]{Name: "journal"})
	var got record.Collection[journal]
	require.NotPanics(t, func() { got = s.Load(ctx) })
	require.Equal(t, 1, got.Len())

	// saves still land locally
	_, err := s.Create(ctx, journal{Date: "2024-01-02", Content: "still works"})
	require.NoError(t, err)
	s.Wait()
	assert.Equal(t, 2, localstore.ReadCollection[journal](ctx, cache, "journal").Len())

	// only Sync reports the failure
	err = s.Sync(ctx, s.Snapshot())
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
}

func TestLoad_ConfiguredRemoteDoesNotSeedWhenUnreachable(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()
	remote.Fail(errors.New("offline"))

	seed := func() []note { return []note{{Title: "x"}} }
	s := newStore(t, cache, remote, Options[note]{Name: "routines", Seed: seed})
	assert.Equal(t, 0, s.Load(ctx).Len())
	assert.False(t, cache.Has(ctx, "routines"), "an offline first run must not mark the collection as stored")

	remote.Fail(nil)
	again := newStore(t, cache, remote, Options[note]{Name: "routines", Seed: seed})
	assert.Equal(t, 1, again.Load(ctx).Len())
	again.Wait()

	rows, err := remote.Fetch(ctx, "routines")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSync_NotConfigured(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	s := newStore(t, cache, nil, Options[note]{Name: "playlist"})
	s.Load(ctx)

	err := s.Sync(ctx, record.NewCollection(record.Record[note]{ID: "v", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "x"}}))
	assert.ErrorIs(t, err, common.ErrRemoteNotConfigured)
	// the local write happened regardless
	assert.Equal(t, 1, localstore.ReadCollection[note](ctx, cache, "playlist").Len())
}

func TestSync_PushesEverything(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()
	s := newStore(t, cache, remote, Options[note]{Name: "playlist", Policy: record.RemoteWins})
	s.Load(ctx)

	next := record.NewCollection(
		record.Record[note]{ID: "a", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "x"}},
		record.Record[note]{ID: "b", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "y"}},
	)
	require.NoError(t, s.Sync(ctx, next))
	rows, err := remote.Fetch(ctx, "playlist")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSave_PropagatesHardDeletes(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()
	s := newStore(t, cache, remote, Options[journal]{Name: "journal"})
	s.Load(ctx)

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := s.Create(ctx, journal{Date: d})
		require.NoError(t, err)
	}
	require.NoError(t, s.Delete(ctx, "j2"))
	s.Wait()

	rows, err := remote.Fetch(ctx, "journal")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "j1", rows[0].ID)
	assert.Equal(t, "j3", rows[1].ID)

	// a second device starting empty converges to the same ids
	other := newStore(t, localstore.NewCache(localstore.NewMemoryStorage(), nil), remote, Options[journal]{Name: "journal"})
	assert.Equal(t, []string{"j1", "j3"}, other.Load(ctx).IDs())
}

func TestSave_PushesInIssueOrder(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := mirror.NewMemory()
	s := newStore(t, cache, remote, Options[note]{Name: "notes"})
	s.Load(ctx)

	r, err := s.Create(ctx, note{Title: "v0"})
	require.NoError(t, err)
	for i := 1; i <= 20; i++ {
		_, err := s.Update(ctx, r.ID, func(n *note) { n.Title = fmt.Sprintf("v%d", i) })
		require.NoError(t, err)
	}
	s.Wait()

	rows, err := remote.Fetch(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.JSONEq(t, `{"title":"v20"}`, string(rows[0].Payload))
	assert.Equal(t, 21, remote.Pushes())
}

func TestSealing(t *testing.T) {
	ctx := context.Background()
	remote := mirror.NewMemory()

	sealer, err := cryptox.NewSealer([]byte("correct horse"), "alice")
	require.NoError(t, err)

	s := newStore(t, localstore.NewCache(localstore.NewMemoryStorage(), nil), remote,
		Options[journal]{Name: "journal", Sealer: sealer})
	s.Load(ctx)
	_, err = s.Create(ctx, journal{Date: "2024-01-01", Content: "secret diary"})
	require.NoError(t, err)
	s.Wait()

	rows, err := remote.Fetch(ctx, "journal")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEmpty(t, rows[0].Nonce)
	assert.NotContains(t, string(rows[0].Payload), "secret diary")

	// another device with the same passphrase reads it
	sealer2, err := cryptox.NewSealer([]byte("correct horse"), "alice")
	require.NoError(t, err)
	other := newStore(t, localstore.NewCache(localstore.NewMemoryStorage(), nil), remote,
		Options[journal]{Name: "journal", Sealer: sealer2})
	got := other.Load(ctx)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "secret diary", got.Records()[0].Data.Content)

	// without the passphrase sealed rows are dropped
	plain := newStore(t, localstore.NewCache(localstore.NewMemoryStorage(), nil), remote,
		Options[journal]{Name: "journal"})
	assert.Equal(t, 0, plain.Load(ctx).Len())
}

// slowMirror blocks Fetch until release is closed.
type slowMirror struct {
	*mirror.Memory
	entered chan struct{}
	release chan struct{}
}

func (m *slowMirror) Fetch(ctx context.Context, table string) ([]mirror.Row, error) {
	close(m.entered)
	<-m.release
	return m.Memory.Fetch(ctx, table)
}

func TestLoad_FetchDoesNotBlockSaves(t *testing.T) {
	ctx := context.Background()
	cache := localstore.NewCache(localstore.NewMemoryStorage(), nil)
	remote := &slowMirror{Memory: mirror.NewMemory(), entered: make(chan struct{}), release: make(chan struct{})}
	s := newStore(t, cache, remote, Options[note]{Name: "notes"})

	loaded := make(chan record.Collection[note], 1)
	go func() { loaded <- s.Load(ctx) }()
	<-remote.entered

	saved := make(chan struct{})
	go func() {
		s.Save(ctx, record.NewCollection(record.Record[note]{ID: "a", UpdatedAt: ts("2024-01-01T00:00:00Z"), Data: note{Title: "typed while loading"}}))
		close(saved)
	}()

	select {
	case <-saved:
	case <-time.After(time.Second):
		close(remote.release)
		t.Fatal("Save waited for the remote fetch")
	}

	close(remote.release)
	got := <-loaded
	r, ok := got.Get("a")
	require.True(t, ok, "the merge must see the save made during the fetch")
	assert.Equal(t, "typed while loading", r.Data.Title)
}
