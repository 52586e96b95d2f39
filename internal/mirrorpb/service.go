// Package mirrorpb holds the gRPC contract of the lifedash mirror server.
//
// Messages are protobuf well-known types so no generated code is needed:
//
//	Ping(Empty) returns (StringValue)            // "OK"
//	Fetch(StringValue table) returns (ListValue) // rows as Structs
//	Push(Struct{table, rows}) returns (Empty)
//	Remove(Struct{table, ids}) returns (Empty)
package mirrorpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "lifedash.mirror.v1.MirrorService"

const (
	PingMethod   = "/" + ServiceName + "/Ping"
	FetchMethod  = "/" + ServiceName + "/Fetch"
	PushMethod   = "/" + ServiceName + "/Push"
	RemoveMethod = "/" + ServiceName + "/Remove"
)

// MirrorServiceClient is the client API for MirrorService.
type MirrorServiceClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Push(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Remove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type mirrorServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMirrorServiceClient(cc grpc.ClientConnInterface) MirrorServiceClient {
	return &mirrorServiceClient{cc}
}

func (c *mirrorServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, PingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mirrorServiceClient) Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FetchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mirrorServiceClient) Push(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, PushMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mirrorServiceClient) Remove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, RemoveMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// MirrorServiceServer is the server API for MirrorService.
type MirrorServiceServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Fetch(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	Push(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Remove(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// UnimplementedMirrorServiceServer can be embedded to have forward compatible
// implementations.
type UnimplementedMirrorServiceServer struct{}

func (UnimplementedMirrorServiceServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedMirrorServiceServer) Fetch(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Fetch not implemented")
}

func (UnimplementedMirrorServiceServer) Push(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Push not implemented")
}

func (UnimplementedMirrorServiceServer) Remove(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Remove not implemented")
}

func RegisterMirrorServiceServer(s grpc.ServiceRegistrar, srv MirrorServiceServer) {
	s.RegisterService(&MirrorService_ServiceDesc, srv)
}

func _MirrorService_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MirrorServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MirrorServiceServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _MirrorService_Fetch_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MirrorServiceServer).Fetch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FetchMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MirrorServiceServer).Fetch(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _MirrorService_Push_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MirrorServiceServer).Push(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PushMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MirrorServiceServer).Push(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _MirrorService_Remove_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MirrorServiceServer).Remove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RemoveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MirrorServiceServer).Remove(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// MirrorService_ServiceDesc is the grpc.ServiceDesc for MirrorService.
var MirrorService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MirrorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: _MirrorService_Ping_Handler},
		{MethodName: "Fetch", Handler: _MirrorService_Fetch_Handler},
		{MethodName: "Push", Handler: _MirrorService_Push_Handler},
		{MethodName: "Remove", Handler: _MirrorService_Remove_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lifedash/mirror/v1/mirror.proto",
}
