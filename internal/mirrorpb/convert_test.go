package mirrorpb

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestPushRequest_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 30, 0, 123456789, time.UTC)
	del := ts.Add(time.Hour)
	in := []mirror.Row{
		{ID: "a", UpdatedAt: ts, Payload: []byte(`{"title":"x"}`)},
		{ID: "b", UpdatedAt: ts, DeletedAt: &del, Payload: []byte{0, 1, 2, 255}, Nonce: []byte("123456789012")},
	}

	table, out, err := ParsePushRequest(NewPushRequest("notes", in))
	require.NoError(t, err)
	assert.Equal(t, "notes", table)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveRequest_RoundTrip(t *testing.T) {
	table, ids, err := ParseRemoveRequest(NewRemoveRequest("memos", []string{"m1", "m2"}))
	require.NoError(t, err)
	assert.Equal(t, "memos", table)
	assert.Equal(t, []string{"m1", "m2"}, ids)
}

func TestRowFromStruct_Malformed(t *testing.T) {
	good := RowToStruct(mirror.Row{ID: "a", UpdatedAt: time.Now(), Payload: []byte("x")})

	tests := []struct {
		name   string
		mutate func(*structpb.Struct)
	}{
		{"no id", func(s *structpb.Struct) { delete(s.Fields, fieldID) }},
		{"bad time", func(s *structpb.Struct) { s.Fields[fieldUpdatedAt] = structpb.NewStringValue("yesterday") }},
		{"bad deletedAt", func(s *structpb.Struct) { s.Fields[fieldDeletedAt] = structpb.NewStringValue("soon") }},
		{"bad payload", func(s *structpb.Struct) { s.Fields[fieldPayload] = structpb.NewStringValue("!!not base64") }},
		{"bad nonce", func(s *structpb.Struct) { s.Fields[fieldNonce] = structpb.NewStringValue("%%") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := RowToStruct(mirror.Row{ID: "a", UpdatedAt: time.Now(), Payload: []byte("x")})
			tt.mutate(s)
			_, err := RowFromStruct(s)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	_, err := RowFromStruct(good)
	assert.NoError(t, err)
	_, err = RowFromStruct(nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRowsFromList_RejectsNonStruct(t *testing.T) {
	l := &structpb.ListValue{Values: []*structpb.Value{structpb.NewStringValue("nope")}}
	_, err := RowsFromList(l)
	assert.ErrorIs(t, err, ErrMalformed)

	rows, err := RowsFromList(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseRequests_MissingTable(t *testing.T) {
	_, _, err := ParsePushRequest(&structpb.Struct{})
	assert.ErrorIs(t, err, ErrMalformed)
	_, _, err = ParseRemoveRequest(&structpb.Struct{})
	assert.ErrorIs(t, err, ErrMalformed)

	bad := NewRemoveRequest("notes", nil)
	bad.Fields[fieldIDs] = structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{structpb.NewNumberValue(1)}})
	_, _, err = ParseRemoveRequest(bad)
	assert.ErrorIs(t, err, ErrMalformed)
}
