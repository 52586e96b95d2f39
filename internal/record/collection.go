package record

import (
	"sort"
)

// Collection is a set of records keyed by id. The zero value is an empty,
// ready to use collection. Listing methods return records in id order.
type Collection[T any] struct {
	byID map[string]Record[T]
}

// NewCollection builds a collection from recs. Later duplicates replace
// earlier ones.
func NewCollection[T any](recs ...Record[T]) Collection[T] {
	c := Collection[T]{byID: make(map[string]Record[T], len(recs))}
	for _, r := range recs {
		c.byID[r.ID] = r
	}
	return c
}

func (c Collection[T]) Len() int {
	return len(c.byID)
}

func (c Collection[T]) Get(id string) (Record[T], bool) {
	r, ok := c.byID[id]
	return r, ok
}

func (c Collection[T]) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Put inserts or replaces r.
func (c *Collection[T]) Put(r Record[T]) {
	if c.byID == nil {
		c.byID = make(map[string]Record[T])
	}
	c.byID[r.ID] = r
}

// Remove deletes id and reports whether it was present.
func (c *Collection[T]) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	return true
}

// IDs returns all ids in ascending order.
func (c Collection[T]) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Records returns all records in id order.
func (c Collection[T]) Records() []Record[T] {
	out := make([]Record[T], 0, len(c.byID))
	for _, id := range c.IDs() {
		out = append(out, c.byID[id])
	}
	return out
}

// Filter returns the records for which keep is true as a new collection.
func (c Collection[T]) Filter(keep func(Record[T]) bool) Collection[T] {
	out := Collection[T]{byID: make(map[string]Record[T])}
	for id, r := range c.byID {
		if keep(r) {
			out.byID[id] = r
		}
	}
	return out
}

// Active is the view of records without a soft-delete marker.
func (c Collection[T]) Active() Collection[T] {
	return c.Filter(func(r Record[T]) bool { return !r.Trashed() })
}

// Trash is the view of soft-deleted records. Active and Trash partition c.
func (c Collection[T]) Trash() Collection[T] {
	return c.Filter(Record[T].Trashed)
}

// Union returns a collection holding every record of c and other; on a
// duplicate id the record with the later UpdatedAt is kept, c's on a tie.
func (c Collection[T]) Union(other Collection[T]) Collection[T] {
	out := c.Clone()
	for id, r := range other.byID {
		if cur, ok := out.byID[id]; ok && !r.UpdatedAt.After(cur.UpdatedAt) {
			continue
		}
		out.Put(r)
	}
	return out
}

// Clone returns a copy that can be mutated independently of c. Payloads are
// copied by value; slices inside payloads are shared.
func (c Collection[T]) Clone() Collection[T] {
	out := Collection[T]{byID: make(map[string]Record[T], len(c.byID))}
	for id, r := range c.byID {
		out.byID[id] = r
	}
	return out
}

// Equal reports whether c and other contain the same ids with Same records.
func (c Collection[T]) Equal(other Collection[T]) bool {
	if len(c.byID) != len(other.byID) {
		return false
	}
	for id, r := range c.byID {
		o, ok := other.byID[id]
		if !ok || !Same(r, o) {
			return false
		}
	}
	return true
}
