package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/features"
)

var weekdays = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// parseWeekday accepts 0-6 or a day name (full or three letters).
func parseWeekday(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	s = strings.ToLower(s)
	if len(s) >= 3 {
		if d, ok := weekdays[s[:3]]; ok {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func (a *App) slot(ctx context.Context, args []string) error {
	const use = "slot add <weekday> <start HH:MM> <end HH:MM> <subject> | slot list"
	cmd, rest := sub(args)
	switch cmd {
	case "add":
		if len(rest) < 4 {
			return usage(use)
		}
		day, err := parseWeekday(rest[0])
		if err != nil {
			return err
		}
		link, err := GetSimpleText(a.reader, "Link to routine id (empty for none)", a.out)
		if err != nil {
			return err
		}
		if link != "" {
			link = resolveID(a.session.Routines.Active().IDs(), link)
		}
		slot := features.TimetableSlot{Weekday: day, Start: rest[1], End: rest[2], Subject: strings.Join(rest[3:], " "), RoutineID: link}

		for _, c := range features.Conflicts(a.session.Timetable.Snapshot(), slot, "") {
			a.print(a.st.Warning.Render(fmt.Sprintf("Overlaps %s %s-%s", c.Data.Subject, c.Data.Start, c.Data.End)) + "\n")
		}
		r, err := a.session.AddSlot(ctx, slot)
		if err != nil {
			return err
		}
		a.ok("Added slot %s", shortID(r.ID))
		return nil

	case "list":
		slots := a.session.Timetable.Snapshot()
		linked := features.LinkedRoutines(slots, a.session.Routines.Snapshot())
		t := newTable("Timetable", "id", "day", "time", "subject", "routine")
		for _, r := range features.Week(slots) {
			routine := ""
			if l, ok := linked[r.ID]; ok {
				routine = l.Data.Title
			}
			t.add(shortID(r.ID), time.Weekday(r.Data.Weekday).String()[:3], r.Data.Start+"-"+r.Data.End, r.Data.Subject, routine)
		}
		a.print(t.render(a.st))
		return nil

	default:
		return usage(use)
	}
}
