package features

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/go-playground/validator/v10"
)

const TimetableName = "timetable"

// TimetableSlot is a weekly recurring block. Weekday follows time.Weekday
// (0 is Sunday). RoutineID optionally links the slot to a routine.
type TimetableSlot struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	Start     string `json:"start" validate:"required,clock"`
	End       string `json:"end" validate:"required,clock"`
	Subject   string `json:"subject" validate:"required,max=120"`
	RoutineID string `json:"routineId,omitempty" validate:"max=128"`
}

func timetableSlotLevel(sl validator.StructLevel) {
	s := sl.Current().Interface().(TimetableSlot)
	// HH:MM compares correctly as a string
	if s.End <= s.Start {
		sl.ReportError(s.End, "End", "end", "gtfield", "Start")
	}
}

// Overlaps reports whether s and o share time on the same weekday. Touching
// slots do not overlap.
func (s TimetableSlot) Overlaps(o TimetableSlot) bool {
	return s.Weekday == o.Weekday && s.Start < o.End && o.Start < s.End
}

// CheckRoutineLink returns ErrNotFound when s links to a routine that is not
// among the active routines.
func CheckRoutineLink(s TimetableSlot, routines record.Collection[RoutineItem]) error {
	if s.RoutineID == "" {
		return nil
	}
	if r, ok := routines.Get(s.RoutineID); !ok || r.Trashed() {
		return fmt.Errorf("routine %s: %w", s.RoutineID, common.ErrNotFound)
	}
	return nil
}

// LinkedRoutines maps slot id to the routine it links to. Dangling links
// are left out.
func LinkedRoutines(slots record.Collection[TimetableSlot], routines record.Collection[RoutineItem]) map[string]record.Record[RoutineItem] {
	out := make(map[string]record.Record[RoutineItem])
	for _, s := range slots.Active().Records() {
		if s.Data.RoutineID == "" {
			continue
		}
		if r, ok := routines.Get(s.Data.RoutineID); ok && !r.Trashed() {
			out[s.ID] = r
		}
	}
	return out
}

// Conflicts returns the active slots that overlap candidate, skipping the
// record with id self.
func Conflicts(slots record.Collection[TimetableSlot], candidate TimetableSlot, self string) []record.Record[TimetableSlot] {
	var out []record.Record[TimetableSlot]
	for _, s := range slots.Active().Records() {
		if s.ID != self && s.Data.Overlaps(candidate) {
			out = append(out, s)
		}
	}
	return out
}

// Week orders active slots by weekday, then start time.
func Week(slots record.Collection[TimetableSlot]) []record.Record[TimetableSlot] {
	out := slots.Active().Records()
	slices.SortStableFunc(out, func(a, b record.Record[TimetableSlot]) int {
		if n := cmp.Compare(a.Data.Weekday, b.Data.Weekday); n != 0 {
			return n
		}
		return cmp.Compare(a.Data.Start, b.Data.Start)
	})
	return out
}
