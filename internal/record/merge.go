package record

import (
	"fmt"
	"strings"
)

// Policy decides which copy survives when an id exists both locally and
// remotely.
type Policy int

const (
	// NewerWins keeps the copy with the later UpdatedAt; the remote copy on a
	// tie.
	NewerWins Policy = iota
	// RemoteWins always keeps the remote copy.
	RemoteWins
	// LocalWins always keeps the local copy.
	LocalWins
)

func (p Policy) String() string {
	switch p {
	case NewerWins:
		return "newer-wins"
	case RemoteWins:
		return "remote-wins"
	case LocalWins:
		return "local-wins"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newer-wins", "newer":
		return NewerWins, nil
	case "remote-wins", "remote":
		return RemoteWins, nil
	case "local-wins", "local":
		return LocalWins, nil
	default:
		return NewerWins, fmt.Errorf("unknown merge policy %q", s)
	}
}

// Pick chooses between two copies of the same id.
func Pick[T any](p Policy, local, remote Record[T]) Record[T] {
	switch p {
	case LocalWins:
		return local
	case RemoteWins:
		return remote
	default:
		if local.UpdatedAt.After(remote.UpdatedAt) {
			return local
		}
		return remote
	}
}

// Merge reconciles local and remote into one collection. Ids present on one
// side only are kept as they are; ids on both sides are resolved with Pick.
// Whole records win; fields are never combined.
func Merge[T any](p Policy, local, remote Collection[T]) Collection[T] {
	out := remote.Clone()
	for id, l := range local.byID {
		r, ok := remote.byID[id]
		if !ok {
			out.Put(l)
			continue
		}
		out.Put(Pick(p, l, r))
	}
	return out
}

// Changed returns the records of next that are missing from base or differ
// from base's copy, in id order. It is used to find what a mirror lacks.
func Changed[T any](base, next Collection[T]) []Record[T] {
	var out []Record[T]
	for _, r := range next.Records() {
		if b, ok := base.Get(r.ID); ok && Same(b, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Removed returns the ids present in base but absent from next, in order.
func Removed[T any](base, next Collection[T]) []string {
	var out []string
	for _, id := range base.IDs() {
		if !next.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
