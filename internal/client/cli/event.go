package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/features"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

func (a *App) event(ctx context.Context, args []string) error {
	const use = "event add <start> <end> <title> | event list <from> <to>"
	cmd, rest := sub(args)
	switch cmd {
	case "add":
		if len(rest) < 3 {
			return usage(use)
		}
		r, err := a.session.Schedule.Create(ctx, features.ScheduleEntry{
			Title:  strings.Join(rest[2:], " "),
			Start:  rest[0],
			End:    rest[1],
			AllDay: true,
		})
		if err != nil {
			return err
		}
		a.ok("Added event %s", shortID(r.ID))
		return nil

	case "list":
		if len(rest) != 2 {
			return usage(use)
		}
		for _, d := range rest {
			if _, err := timex.ParseDate(d); err != nil {
				return err
			}
		}
		t := newTable("Schedule "+rest[0]+" .. "+rest[1], "id", "from", "to", "title")
		for _, r := range features.Between(a.session.Schedule.Snapshot(), rest[0], rest[1]) {
			t.add(shortID(r.ID), r.Data.Start, r.Data.End, r.Data.Title)
		}
		a.print(t.render(a.st))
		return nil

	default:
		return usage(use)
	}
}
