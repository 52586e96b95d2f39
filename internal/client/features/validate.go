package features

import (
	"sync"

	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

// Validator is the record validator plus the cross-field rules of the
// feature payloads.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := record.NewValidator()
		v.RegisterStructValidation(timetableSlotLevel, TimetableSlot{})
		v.RegisterStructValidation(scheduleEntryLevel, ScheduleEntry{})
		validate = v
	})
	return validate
}
