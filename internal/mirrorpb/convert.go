package mirrorpb

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the row and request structs.
const (
	fieldID        = "id"
	fieldUpdatedAt = "updatedAt"
	fieldDeletedAt = "deletedAt"
	fieldPayload   = "payload"
	fieldNonce     = "nonce"
	fieldTable     = "table"
	fieldRows      = "rows"
	fieldIDs       = "ids"
)

var ErrMalformed = errors.New("malformed message")

// RowToStruct encodes r. Bytes are standard base64, times RFC 3339 with
// nanoseconds.
func RowToStruct(r mirror.Row) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldID:        structpb.NewStringValue(r.ID),
		fieldUpdatedAt: structpb.NewStringValue(r.UpdatedAt.UTC().Format(time.RFC3339Nano)),
		fieldPayload:   structpb.NewStringValue(base64.StdEncoding.EncodeToString(r.Payload)),
	}
	if r.DeletedAt != nil {
		fields[fieldDeletedAt] = structpb.NewStringValue(r.DeletedAt.UTC().Format(time.RFC3339Nano))
	} else {
		fields[fieldDeletedAt] = structpb.NewNullValue()
	}
	if len(r.Nonce) > 0 {
		fields[fieldNonce] = structpb.NewStringValue(base64.StdEncoding.EncodeToString(r.Nonce))
	}
	return &structpb.Struct{Fields: fields}
}

// RowFromStruct is the inverse of RowToStruct.
func RowFromStruct(s *structpb.Struct) (mirror.Row, error) {
	var r mirror.Row
	if s == nil {
		return r, fmt.Errorf("%w: nil row", ErrMalformed)
	}
	f := s.GetFields()

	r.ID = f[fieldID].GetStringValue()
	if r.ID == "" {
		return r, fmt.Errorf("%w: row without id", ErrMalformed)
	}

	var err error
	if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, f[fieldUpdatedAt].GetStringValue()); err != nil {
		return r, fmt.Errorf("%w: row %s updatedAt: %v", ErrMalformed, r.ID, err)
	}
	if v := f[fieldDeletedAt].GetStringValue(); v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return r, fmt.Errorf("%w: row %s deletedAt: %v", ErrMalformed, r.ID, err)
		}
		r.DeletedAt = &t
	}
	if r.Payload, err = base64.StdEncoding.DecodeString(f[fieldPayload].GetStringValue()); err != nil {
		return r, fmt.Errorf("%w: row %s payload: %v", ErrMalformed, r.ID, err)
	}
	if v := f[fieldNonce].GetStringValue(); v != "" {
		if r.Nonce, err = base64.StdEncoding.DecodeString(v); err != nil {
			return r, fmt.Errorf("%w: row %s nonce: %v", ErrMalformed, r.ID, err)
		}
	}
	return r, nil
}

func RowsToList(rows []mirror.Row) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(rows))
	for _, r := range rows {
		values = append(values, structpb.NewStructValue(RowToStruct(r)))
	}
	return &structpb.ListValue{Values: values}
}

func RowsFromList(l *structpb.ListValue) ([]mirror.Row, error) {
	rows := make([]mirror.Row, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("%w: element %d is not a struct", ErrMalformed, i)
		}
		r, err := RowFromStruct(s)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// NewPushRequest builds the Push argument.
func NewPushRequest(table string, rows []mirror.Row) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldTable: structpb.NewStringValue(table),
		fieldRows:  structpb.NewListValue(RowsToList(rows)),
	}}
}

// ParsePushRequest splits a Push argument into table and rows.
func ParsePushRequest(s *structpb.Struct) (string, []mirror.Row, error) {
	table := s.GetFields()[fieldTable].GetStringValue()
	if table == "" {
		return "", nil, fmt.Errorf("%w: missing table", ErrMalformed)
	}
	rows, err := RowsFromList(s.GetFields()[fieldRows].GetListValue())
	if err != nil {
		return "", nil, err
	}
	return table, rows, nil
}

// NewRemoveRequest builds the Remove argument.
func NewRemoveRequest(table string, ids []string) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(ids))
	for _, id := range ids {
		values = append(values, structpb.NewStringValue(id))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldTable: structpb.NewStringValue(table),
		fieldIDs:   structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

// ParseRemoveRequest splits a Remove argument into table and ids.
func ParseRemoveRequest(s *structpb.Struct) (string, []string, error) {
	table := s.GetFields()[fieldTable].GetStringValue()
	if table == "" {
		return "", nil, fmt.Errorf("%w: missing table", ErrMalformed)
	}
	values := s.GetFields()[fieldIDs].GetListValue().GetValues()
	ids := make([]string, 0, len(values))
	for i, v := range values {
		id := v.GetStringValue()
		if id == "" {
			return "", nil, fmt.Errorf("%w: id %d is not a non-empty string", ErrMalformed, i)
		}
		ids = append(ids, id)
	}
	return table, ids, nil
}
