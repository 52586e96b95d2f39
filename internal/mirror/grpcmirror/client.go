// Package grpcmirror reaches the lifedash mirror server over gRPC.
package grpcmirror

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
	pb "github.com/dmitrijs2005/lifedash/internal/mirrorpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client is a mirror.Mirror backed by MirrorService.
type Client struct {
	endpointURL string
	accessToken string
	conn        *grpc.ClientConn
	client      pb.MirrorServiceClient
}

var _ mirror.Mirror = (*Client)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, c.accessToken), method, req, reply, cc, opts...)
}

// New dials lazily; no traffic happens until the first call. Extra dial
// options are appended after the defaults (tests pass a bufconn dialer).
func New(endpointURL, accessToken string, opts ...grpc.DialOption) (*Client, error) {
	c := &Client{endpointURL: endpointURL, accessToken: accessToken}
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)
	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, mirror.Unavailable("grpc dial", err)
	}
	c.conn = conn
	c.client = pb.NewMirrorServiceClient(conn)
	return c, nil
}

// Open builds a Client from s: URL is host:port, Key the device token.
func Open(_ context.Context, s mirror.Settings) (*Client, error) {
	return New(s.URL, s.Key)
}

func (c *Client) Configured() bool { return true }

func (c *Client) Fetch(ctx context.Context, table string) ([]mirror.Row, error) {
	resp, err := c.client.Fetch(ctx, wrapperspb.String(table))
	if err != nil {
		return nil, c.mapError("fetch "+table, err)
	}
	rows, err := pb.RowsFromList(resp)
	if err != nil {
		return nil, mirror.Unavailable("fetch "+table, err)
	}
	return rows, nil
}

func (c *Client) Push(ctx context.Context, table string, rows []mirror.Row) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := c.client.Push(ctx, pb.NewPushRequest(table, rows))
	return c.mapError("push "+table, err)
}

func (c *Client) Remove(ctx context.Context, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.client.Remove(ctx, pb.NewRemoveRequest(table, ids))
	return c.mapError("remove "+table, err)
}

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return c.mapError("ping", err)
	}
	if resp.GetValue() != "OK" {
		return mirror.Unavailable("ping", fmt.Errorf("server status %q", resp.GetValue()))
	}
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// mapError turns a status error into sentinels. Every result also matches
// common.ErrRemoteUnavailable.
func (c *Client) mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return mirror.Unavailable(op, common.ErrUnauthorized)
	case codes.NotFound:
		return mirror.Unavailable(op, common.ErrNotFound)
	case codes.InvalidArgument:
		return mirror.Unavailable(op, fmt.Errorf("%w: %s", common.ErrInvalidRecord, st.Message()))
	default:
		return mirror.Unavailable(op, fmt.Errorf("rpc error: %w", err))
	}
}
