package features

import (
	"cmp"
	"slices"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

const RoutineName = "routines"

// RoutineItem is a daily habit. Completions holds the YYYY-MM-DD days it was
// done, sorted and unique.
type RoutineItem struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Order       int      `json:"order" validate:"gte=0"`
	Completions []string `json:"completions,omitempty" validate:"dive,date"`
}

// DefaultRoutines is what a brand new routines collection starts with.
func DefaultRoutines() []RoutineItem {
	titles := []string{"Drink water", "Exercise", "Read 20 minutes", "Plan tomorrow"}
	out := make([]RoutineItem, len(titles))
	for i, t := range titles {
		out[i] = RoutineItem{Title: t, Order: i}
	}
	return out
}

// Done reports whether the routine was completed on date.
func (r RoutineItem) Done(date string) bool {
	_, ok := slices.BinarySearch(r.Completions, date)
	return ok
}

// Toggle flips the completion of date and reports the new state.
func (r *RoutineItem) Toggle(date string) bool {
	i, ok := slices.BinarySearch(r.Completions, date)
	if ok {
		r.Completions = slices.Delete(r.Completions, i, i+1)
		return false
	}
	r.Completions = slices.Insert(r.Completions, i, date)
	return true
}

// Streak counts consecutive completed days ending today, or ending yesterday
// when today is not done yet.
func (r RoutineItem) Streak(today time.Time) int {
	day := timex.Day(today)
	if !r.Done(timex.FormatDate(day)) {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for r.Done(timex.FormatDate(day)) {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

// RoutinesInOrder lists active routines by Order, then title.
func RoutinesInOrder(c record.Collection[RoutineItem]) []record.Record[RoutineItem] {
	out := c.Active().Records()
	slices.SortStableFunc(out, func(a, b record.Record[RoutineItem]) int {
		if n := cmp.Compare(a.Data.Order, b.Data.Order); n != 0 {
			return n
		}
		return cmp.Compare(a.Data.Title, b.Data.Title)
	})
	return out
}
