package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/lifedash/internal/client/features"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

func (a *App) sleep(ctx context.Context, args []string) error {
	const use = "sleep add <date> <bed HH:MM> <wake HH:MM> <quality 1-5> | sleep list"
	cmd, rest := sub(args)
	switch cmd {
	case "add":
		if len(rest) != 4 {
			return usage(use)
		}
		q, err := strconv.Atoi(rest[3])
		if err != nil {
			return usage(use)
		}
		r, err := a.session.Sleep.Create(ctx, features.SleepRecord{Date: rest[0], BedTime: rest[1], WakeTime: rest[2], Quality: q})
		if err != nil {
			return err
		}
		a.ok("Logged %s of sleep", r.Data.Duration())
		return nil

	case "list":
		all := a.session.Sleep.Snapshot()
		t := newTable("Sleep", "date", "bed", "wake", "slept", "quality")
		for _, r := range features.SleepByDate(all) {
			t.add(r.Data.Date, r.Data.BedTime, r.Data.WakeTime, r.Data.Duration().String(), strconv.Itoa(r.Data.Quality))
		}
		a.print(t.render(a.st))

		to := a.today()
		from, err := timex.AddDays(to, -6)
		if err != nil {
			return err
		}
		sum := features.SummarizeSleep(all, from, to)
		if sum.Nights > 0 {
			a.print(a.st.Muted.Render(fmt.Sprintf("Last 7 days: %d nights, %s average, quality %.1f", sum.Nights, sum.AverageSleep, sum.AverageQuality)) + "\n")
		}
		return nil

	default:
		return usage(use)
	}
}
