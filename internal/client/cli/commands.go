package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/record"
)

// Exec runs one command line.
func (a *App) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "journal":
		return a.journal(ctx, args)
	case "memo":
		return a.memo(ctx, args)
	case "note":
		return a.note(ctx, args)
	case "routine":
		return a.routine(ctx, args)
	case "sleep":
		return a.sleep(ctx, args)
	case "slot":
		return a.slot(ctx, args)
	case "event":
		return a.event(ctx, args)
	case "playlist":
		return a.playlist(ctx, args)
	case "reload":
		return a.reload(ctx)
	case "status":
		return a.showStatus(ctx)
	default:
		return errUnknownCommand
	}
}

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

// sub splits args into a subcommand and its arguments.
func sub(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

// resolveID expands a unique id prefix to the full id. Anything else is
// returned unchanged, so the store reports it as not found.
func resolveID(ids []string, arg string) string {
	if slices.Contains(ids, arg) {
		return arg
	}
	match := ""
	for _, id := range ids {
		if strings.HasPrefix(id, arg) {
			if match != "" {
				return arg
			}
			match = id
		}
	}
	if match == "" {
		return arg
	}
	return match
}

func idOf[T any](c record.Collection[T], args []string, use string) (string, error) {
	if len(args) < 1 {
		return "", usage(use)
	}
	return resolveID(c.IDs(), args[0]), nil
}

// shortID is what lists print; resolveID accepts it back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (a *App) print(s string) {
	fmt.Fprint(a.out, s)
}

func (a *App) ok(format string, args ...any) {
	fmt.Fprintln(a.out, a.st.Success.Render(fmt.Sprintf(format, args...)))
}

func (a *App) reload(ctx context.Context) error {
	counts := a.session.LoadAll(ctx)
	a.ok("Reloaded %d collections", len(counts))
	return nil
}

func (a *App) showStatus(ctx context.Context) error {
	t := newTable(fmt.Sprintf("Mirror: %s", a.Mode()), "collection", "active", "trash")
	add := func(name string, active, trash int) {
		t.add(name, strconv.Itoa(active), strconv.Itoa(trash))
	}
	s := a.session
	add(s.Journal.Name(), s.Journal.Active().Len(), 0)
	add(s.Memos.Name(), s.Memos.Active().Len(), s.Memos.Trash().Len())
	add(s.Notes.Name(), s.Notes.Active().Len(), s.Notes.Trash().Len())
	add(s.Routines.Name(), s.Routines.Active().Len(), 0)
	add(s.Sleep.Name(), s.Sleep.Active().Len(), 0)
	add(s.Timetable.Name(), s.Timetable.Active().Len(), 0)
	add(s.Schedule.Name(), s.Schedule.Active().Len(), 0)
	add(s.Playlist.Name(), s.Playlist.Active().Len(), 0)
	a.print(t.render(a.st))
	return nil
}
