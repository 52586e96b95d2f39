// Package record defines the generic envelope every dashboard collection is
// made of, the keyed Collection type, the JSON codec that validates records at
// the storage boundary, and the merge policies used to reconcile a local
// cache with its remote mirror.
package record

import (
	"reflect"
	"time"
)

// Record wraps a feature payload with the metadata the store needs: a stable
// id, a last-modified stamp used for merge precedence and an optional
// soft-delete marker.
type Record[T any] struct {
	ID        string     `json:"id" validate:"required,max=128"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	Data      T          `json:"data"`
}

// Trashed reports whether r carries a soft-delete marker.
func (r Record[T]) Trashed() bool {
	return r.DeletedAt != nil
}

// Same reports whether a and b hold identical metadata and payload.
// Timestamps are compared by instant, not by location.
func Same[T any](a, b Record[T]) bool {
	if a.ID != b.ID || !a.UpdatedAt.Equal(b.UpdatedAt) {
		return false
	}
	switch {
	case a.DeletedAt == nil && b.DeletedAt == nil:
	case a.DeletedAt == nil || b.DeletedAt == nil:
		return false
	case !a.DeletedAt.Equal(*b.DeletedAt):
		return false
	}
	return reflect.DeepEqual(a.Data, b.Data)
}

// Stamp normalizes t the way records are persisted: UTC, no monotonic
// reading, microsecond precision (what a Postgres timestamptz keeps).
func Stamp(t time.Time) time.Time {
	return t.UTC().Round(0).Truncate(time.Microsecond)
}
