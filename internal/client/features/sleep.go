package features

import (
	"cmp"
	"slices"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

const SleepName = "sleep"

// SleepRecord is one night. Date is the day the night started.
type SleepRecord struct {
	Date     string `json:"date" validate:"required,date"`
	BedTime  string `json:"bedTime" validate:"required,clock"`
	WakeTime string `json:"wakeTime" validate:"required,clock"`
	Quality  int    `json:"quality" validate:"min=1,max=5"`
	Notes    string `json:"notes,omitempty" validate:"max=2000"`
}

// Duration is the time slept. A wake time at or before the bed time is on
// the next day.
func (s SleepRecord) Duration() time.Duration {
	bed, err := timex.ParseClock(s.BedTime)
	if err != nil {
		return 0
	}
	wake, err := timex.ParseClock(s.WakeTime)
	if err != nil {
		return 0
	}
	mins := wake - bed
	if mins <= 0 {
		mins += 24 * 60
	}
	return time.Duration(mins) * time.Minute
}

// SleepSummary aggregates the nights of a date range.
type SleepSummary struct {
	Nights         int
	AverageSleep   time.Duration
	AverageQuality float64
}

// SummarizeSleep covers active records whose date lies in [from, to].
func SummarizeSleep(c record.Collection[SleepRecord], from, to string) SleepSummary {
	var sum SleepSummary
	var total time.Duration
	var quality int
	for _, r := range c.Active().Records() {
		if r.Data.Date < from || r.Data.Date > to {
			continue
		}
		sum.Nights++
		total += r.Data.Duration()
		quality += r.Data.Quality
	}
	if sum.Nights > 0 {
		sum.AverageSleep = total / time.Duration(sum.Nights)
		sum.AverageQuality = float64(quality) / float64(sum.Nights)
	}
	return sum
}

// SleepByDate lists active records, latest night first.
func SleepByDate(c record.Collection[SleepRecord]) []record.Record[SleepRecord] {
	out := c.Active().Records()
	slices.SortStableFunc(out, func(a, b record.Record[SleepRecord]) int {
		return cmp.Compare(b.Data.Date, a.Data.Date)
	})
	return out
}
