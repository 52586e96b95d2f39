package record

import (
	"regexp"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/timex"
	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate

	videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// Validator returns the shared validator built by NewValidator.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = NewValidator()
	})
	return validate
}

// NewValidator builds a validator with the dashboard-specific tags
// registered:
//
//	date   YYYY-MM-DD calendar day
//	clock  HH:MM wall-clock time
//	ytid   11-character YouTube video id
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("date", validateLayout(timex.DateLayout))
	_ = v.RegisterValidation("clock", validateLayout(timex.ClockLayout))
	_ = v.RegisterValidation("ytid", func(fl validator.FieldLevel) bool {
		return videoIDPattern.MatchString(fl.Field().String())
	})
	return v
}

func validateLayout(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}
