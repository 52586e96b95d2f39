package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/common"
	pb "github.com/dmitrijs2005/lifedash/internal/mirrorpb"
	"github.com/dmitrijs2005/lifedash/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestInterceptor_PingAllowsWithoutToken(t *testing.T) {
	s, _ := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: pb.PingMethod}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s, _ := newTestServer("secret")

	for _, method := range []string{pb.FetchMethod, pb.PushMethod, pb.RemoveMethod, "/other.Service/Method"} {
		info := &grpc.UnaryServerInfo{FullMethod: method}
		h := func(ctx context.Context, req any) (any, error) {
			t.Fatal("handler should not be called when token missing")
			return nil, nil
		}

		_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("%s: expected Unauthenticated, got %v", method, status.Code(err))
		}
		if status.Convert(err).Message() != "missing token" {
			t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
		}
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s, _ := newTestServer("secret")

	md := metadata.New(map[string]string{common.AccessTokenHeaderName: "not-a-valid-jwt"})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: pb.FetchMethod}

	_, err := s.accessTokenInterceptor(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called with invalid token")
		return nil, nil
	})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_ValidTokenPutsAccountInContext(t *testing.T) {
	s, _ := newTestServer("secret")

	tok, err := auth.GenerateToken("alice", []byte("secret"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: tok})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: pb.PushMethod}

	var got string
	_, err = s.accessTokenInterceptor(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		got, _ = accountFromContext(ctx)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("account = %q, want alice", got)
	}
}
