package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/mirror"
	pb "github.com/dmitrijs2005/lifedash/internal/mirrorpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func withAccount(account string) context.Context {
	return context.WithValue(context.Background(), accountKey, account)
}

func TestPing(t *testing.T) {
	s, _ := newTestServer("k")
	resp, err := s.Ping(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.GetValue())
}

func TestPushFetchRemove(t *testing.T) {
	s, _ := newTestServer("k")
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []mirror.Row{
		{ID: "a", UpdatedAt: ts, Payload: []byte(`{"t":1}`)},
		{ID: "b", UpdatedAt: ts, Payload: []byte(`{"t":2}`)},
	}

	_, err := s.Push(withAccount("alice"), pb.NewPushRequest("notes", rows))
	require.NoError(t, err)

	list, err := s.Fetch(withAccount("alice"), wrapperspb.String("notes"))
	require.NoError(t, err)
	got, err := pb.RowsFromList(list)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// another account sees nothing
	list, err = s.Fetch(withAccount("bob"), wrapperspb.String("notes"))
	require.NoError(t, err)
	assert.Empty(t, list.GetValues())

	_, err = s.Remove(withAccount("alice"), pb.NewRemoveRequest("notes", []string{"a"}))
	require.NoError(t, err)
	list, err = s.Fetch(withAccount("alice"), wrapperspb.String("notes"))
	require.NoError(t, err)
	assert.Len(t, list.GetValues(), 1)
}

func TestHandlers_RequireAccount(t *testing.T) {
	s, _ := newTestServer("k")

	_, err := s.Fetch(context.Background(), wrapperspb.String("notes"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = s.Push(context.Background(), pb.NewPushRequest("notes", nil))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = s.Remove(context.Background(), pb.NewRemoveRequest("notes", nil))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestHandlers_InvalidArgument(t *testing.T) {
	s, _ := newTestServer("k")

	_, err := s.Push(withAccount("alice"), &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Fetch(withAccount("alice"), wrapperspb.String("Bad Table"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Push(withAccount("alice"), pb.NewPushRequest("notes", []mirror.Row{{ID: "x"}}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
