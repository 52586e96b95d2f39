package store

import (
	"time"

	"github.com/dmitrijs2005/lifedash/internal/cryptox"
	"github.com/dmitrijs2005/lifedash/internal/logging"
	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultPushTimeout  = 15 * time.Second
)

// Options configures a Store. Only Name is required.
type Options[T any] struct {
	// Name is both the local storage key and the remote table.
	Name   string
	Policy record.Policy
	// Trash enables the soft-delete state machine.
	Trash bool
	// Seed returns the payloads a brand new collection starts with.
	Seed func() []T

	Clock     func() time.Time
	NewID     func() string
	Validator *validator.Validate
	// Sealer, when set, encrypts payloads sent to the mirror.
	Sealer *cryptox.Sealer
	Logger logging.Logger

	FetchTimeout time.Duration
	PushTimeout  time.Duration
}

func (o *Options[T]) applyDefaults() {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.NewString() }
	}
	if o.Validator == nil {
		o.Validator = record.Validator()
	}
	if o.Logger == nil {
		o.Logger = logging.Nop{}
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.PushTimeout <= 0 {
		o.PushTimeout = DefaultPushTimeout
	}
}
