// Package mirror defines the Remote Mirror contract: an optional hosted copy
// of each dashboard collection, one table per feature, addressed by the same
// record ids the device uses locally.
//
// Backends live in subpackages (pgmirror, s3mirror, grpcmirror). All of them
// report failures wrapped with common.ErrRemoteUnavailable so callers can fall
// back to local-only behavior with a single errors.Is check.
package mirror

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/common"
)

// Row is one mirrored record. Payload is opaque to the mirror: plain JSON of
// the feature payload, or ciphertext when Nonce is set.
type Row struct {
	ID        string
	UpdatedAt time.Time
	DeletedAt *time.Time
	Payload   []byte
	Nonce     []byte
}

// Mirror is a hosted table set holding the same logical collections as the
// local cache.
type Mirror interface {
	// Configured reports whether connection settings are present. It never
	// touches the network.
	Configured() bool
	// Fetch returns every row of table.
	Fetch(ctx context.Context, table string) ([]Row, error)
	// Push upserts rows by id; the last write wins.
	Push(ctx context.Context, table string, rows []Row) error
	// Remove deletes rows by id. Missing ids are ignored.
	Remove(ctx context.Context, table string, ids []string) error
	// Ping checks reachability.
	Ping(ctx context.Context) error
	// Close releases connections.
	Close() error
}

var tablePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// ValidTable reports whether name is usable as a mirror table name.
func ValidTable(name string) bool {
	return tablePattern.MatchString(name)
}

// Unavailable wraps err so that errors.Is(err, common.ErrRemoteUnavailable)
// holds.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrRemoteUnavailable, err)
}

// Disabled is the Mirror used when no remote is configured.
type Disabled struct{}

func (Disabled) Configured() bool { return false }

func (Disabled) Fetch(context.Context, string) ([]Row, error) {
	return nil, Unavailable("fetch", common.ErrRemoteNotConfigured)
}

func (Disabled) Push(context.Context, string, []Row) error {
	return Unavailable("push", common.ErrRemoteNotConfigured)
}

func (Disabled) Remove(context.Context, string, []string) error {
	return Unavailable("remove", common.ErrRemoteNotConfigured)
}

func (Disabled) Ping(context.Context) error {
	return Unavailable("ping", common.ErrRemoteNotConfigured)
}

func (Disabled) Close() error { return nil }
