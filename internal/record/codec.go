package record

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/go-playground/validator/v10"
)

// Check validates r's envelope and payload. Payload rules come from
// `validate` struct tags on T.
func Check[T any](v *validator.Validate, r Record[T]) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", common.ErrInvalidRecord)
	}
	if r.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: record %s has no updatedAt", common.ErrInvalidRecord, r.ID)
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(r); err != nil {
		return fmt.Errorf("%w: record %s: %v", common.ErrInvalidRecord, r.ID, err)
	}
	return nil
}

// DecodeRecord parses and validates a single record.
func DecodeRecord[T any](v *validator.Validate, data []byte) (Record[T], error) {
	var r Record[T]
	if err := json.Unmarshal(data, &r); err != nil {
		return Record[T]{}, fmt.Errorf("%w: %v", common.ErrInvalidRecord, err)
	}
	if err := Check(v, r); err != nil {
		return Record[T]{}, err
	}
	r.UpdatedAt = Stamp(r.UpdatedAt)
	if r.DeletedAt != nil {
		d := Stamp(*r.DeletedAt)
		r.DeletedAt = &d
	}
	return r, nil
}

// Decode parses a JSON array of records. Text that is not a JSON array yields
// an empty collection and one error; records that fail to parse or validate
// are dropped and reported, the rest are kept. On duplicate ids the later
// UpdatedAt wins.
func Decode[T any](v *validator.Validate, data []byte) (Collection[T], []error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return NewCollection[T](), []error{fmt.Errorf("decode collection: %w", err)}
	}

	var errs []error
	out := NewCollection[T]()
	for _, raw := range raws {
		r, err := DecodeRecord[T](v, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cur, ok := out.Get(r.ID); ok && !r.UpdatedAt.After(cur.UpdatedAt) {
			continue
		}
		out.Put(r)
	}
	return out, errs
}

// Encode renders c as a JSON array in id order.
func Encode[T any](c Collection[T]) ([]byte, error) {
	return json.Marshal(c.Records())
}
