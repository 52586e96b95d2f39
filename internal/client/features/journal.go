package features

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/lifedash/internal/record"
)

const JournalName = "journal"

type JournalEntry struct {
	Date    string `json:"date" validate:"required,date"`
	Content string `json:"content" validate:"max=100000"`
	Mood    string `json:"mood,omitempty" validate:"omitempty,oneof=great good okay bad awful"`
}

// JournalForDate returns the active entry written for date, if any.
func JournalForDate(c record.Collection[JournalEntry], date string) (record.Record[JournalEntry], bool) {
	for _, r := range c.Active().Records() {
		if r.Data.Date == date {
			return r, true
		}
	}
	return record.Record[JournalEntry]{}, false
}

// JournalByDate lists active entries, newest day first.
func JournalByDate(c record.Collection[JournalEntry]) []record.Record[JournalEntry] {
	out := c.Active().Records()
	slices.SortStableFunc(out, func(a, b record.Record[JournalEntry]) int {
		return cmp.Compare(b.Data.Date, a.Data.Date)
	})
	return out
}
