// Package grpc serves MirrorService over the entries service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/lifedash/internal/logging"
	pb "github.com/dmitrijs2005/lifedash/internal/mirrorpb"
	"github.com/dmitrijs2005/lifedash/internal/server/entries"
	"github.com/dmitrijs2005/lifedash/internal/server/metrics"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	pb.UnimplementedMirrorServiceServer
	address   string
	entries   *entries.Service
	metrics   *metrics.MirrorMetrics
	logger    logging.Logger
	jwtSecret []byte
}

// NewGRPCServer wires the handlers. m may be nil to disable metrics.
func NewGRPCServer(a string, l logging.Logger, es *entries.Service, m *metrics.MirrorMetrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		entries:   es,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds the grpc.Server with the interceptor chain and the
// service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{}
	if s.metrics != nil {
		interceptors = append(interceptors, s.metrics.UnaryInterceptor())
	}
	interceptors = append(interceptors, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	pb.RegisterMirrorServiceServer(srv, s)
	return srv
}

// Run serves until ctx is done, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
