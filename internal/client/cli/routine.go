package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/lifedash/internal/client/features"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

func (a *App) routine(ctx context.Context, args []string) error {
	const use = "routine list | routine done <id> [date]"
	cmd, rest := sub(args)
	switch cmd {
	case "list":
		today := a.today()
		now := a.now()
		t := newTable("Routines "+today, "id", "done", "routine", "streak")
		for _, r := range features.RoutinesInOrder(a.session.Routines.Active()) {
			mark := "[ ]"
			if r.Data.Done(today) {
				mark = "[x]"
			}
			t.add(shortID(r.ID), mark, r.Data.Title, strconv.Itoa(r.Data.Streak(now)))
		}
		a.print(t.render(a.st))
		return nil

	case "done":
		id, err := idOf(a.session.Routines.Active(), rest, use)
		if err != nil {
			return err
		}
		date := a.today()
		if len(rest) > 1 {
			if _, err := timex.ParseDate(rest[1]); err != nil {
				return err
			}
			date = rest[1]
		}
		done, err := a.session.ToggleRoutine(ctx, id, date)
		if err != nil {
			return err
		}
		if done {
			a.ok("Marked done for %s", date)
		} else {
			a.ok("Unmarked %s", date)
		}
		return nil

	default:
		return usage(use)
	}
}
