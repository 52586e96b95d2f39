package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/lifedash/internal/common"
	pb "github.com/dmitrijs2005/lifedash/internal/mirrorpb"
	"github.com/dmitrijs2005/lifedash/internal/server/metrics"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("OK"), nil
}

func (s *GRPCServer) Fetch(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	rows, err := s.entries.Fetch(ctx, account, req.GetValue())
	if err != nil {
		return nil, s.mapError(ctx, "fetch", err)
	}
	s.recordRows(metrics.OpFetched, req.GetValue(), len(rows))

	return pb.RowsToList(rows), nil
}

func (s *GRPCServer) Push(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	table, rows, err := pb.ParsePushRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.entries.Push(ctx, account, table, rows); err != nil {
		return nil, s.mapError(ctx, "push", err)
	}
	s.recordRows(metrics.OpPushed, table, len(rows))
	s.logger.Debug(ctx, "rows pushed", "account", account, "table", table, "count", len(rows))

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Remove(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	table, ids, err := pb.ParseRemoveRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.entries.Remove(ctx, account, table, ids); err != nil {
		return nil, s.mapError(ctx, "remove", err)
	}
	s.recordRows(metrics.OpRemoved, table, len(ids))

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) recordRows(op, table string, n int) {
	if s.metrics != nil {
		s.metrics.RecordRows(op, table, n)
	}
}

func (s *GRPCServer) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidRecord):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		s.logger.Error(ctx, op+" failed", "err", err)
		return status.Error(codes.Internal, "internal error")
	}
}
