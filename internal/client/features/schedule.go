package features

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/dmitrijs2005/lifedash/internal/timex"
	"github.com/go-playground/validator/v10"
)

const ScheduleName = "schedule"

// ScheduleEntry is a calendar event spanning the inclusive days Start..End.
// StartTime and EndTime are only meaningful when AllDay is false.
type ScheduleEntry struct {
	Title     string `json:"title" validate:"required,max=200"`
	Start     string `json:"start" validate:"required,date"`
	End       string `json:"end" validate:"required,date"`
	StartTime string `json:"startTime,omitempty" validate:"omitempty,clock"`
	EndTime   string `json:"endTime,omitempty" validate:"omitempty,clock"`
	AllDay    bool   `json:"allDay"`
	Color     string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

func scheduleEntryLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(ScheduleEntry)
	if e.End < e.Start {
		sl.ReportError(e.End, "End", "end", "gtefield", "Start")
	}
}

// InRange reports whether the entry touches any day of [from, to].
func (e ScheduleEntry) InRange(from, to string) bool {
	return timex.RangesOverlap(e.Start, e.End, from, to)
}

// Between lists active entries touching [from, to], ordered by start day,
// start time, then title.
func Between(c record.Collection[ScheduleEntry], from, to string) []record.Record[ScheduleEntry] {
	out := c.Filter(func(r record.Record[ScheduleEntry]) bool {
		return !r.Trashed() && r.Data.InRange(from, to)
	}).Records()
	slices.SortStableFunc(out, func(a, b record.Record[ScheduleEntry]) int {
		if n := cmp.Compare(a.Data.Start, b.Data.Start); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Data.StartTime, b.Data.StartTime); n != 0 {
			return n
		}
		return cmp.Compare(a.Data.Title, b.Data.Title)
	})
	return out
}

// ByDay buckets the entries touching [from, to] per calendar day. Days with
// no entries are omitted.
func ByDay(c record.Collection[ScheduleEntry], from, to string) (map[string][]record.Record[ScheduleEntry], error) {
	start, err := timex.ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := timex.ParseDate(to)
	if err != nil {
		return nil, err
	}
	entries := Between(c, from, to)
	out := make(map[string][]record.Record[ScheduleEntry])
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := timex.FormatDate(d)
		for _, e := range entries {
			if e.Data.InRange(day, day) {
				out[day] = append(out[day], e)
			}
		}
	}
	return out, nil
}
