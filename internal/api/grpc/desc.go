package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Service and method names served by this process. The messages are protobuf
// well-known types, so no generated code is needed on either side.
const (
	RequestServiceName     = "eventreg.request.v1.RequestService"
	EventDirectoryName     = "eventreg.directory.v1.EventDirectory"
	UserDirectoryName      = "eventreg.directory.v1.UserDirectory"
	CountRequestsMethod    = "/" + RequestServiceName + "/CountRequests"
	DescribeEventMethod    = "/" + EventDirectoryName + "/DescribeEvent"
	GetUserMethod          = "/" + UserDirectoryName + "/GetUser"
	requestServiceMetadata = "eventreg/request/v1/request.proto"
	directoryMetadata      = "eventreg/directory/v1/directory.proto"
)

type RequestServiceServer interface {
	CountRequests(ctx context.Context, in *structpb.Struct) (*wrapperspb.Int64Value, error)
}

type EventDirectoryServer interface {
	DescribeEvent(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error)
}

type UserDirectoryServer interface {
	GetUser(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error)
}

var RequestServiceDesc = grpc.ServiceDesc{
	ServiceName: RequestServiceName,
	HandlerType: (*RequestServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CountRequests", Handler: countRequestsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: requestServiceMetadata,
}

var EventDirectoryDesc = grpc.ServiceDesc{
	ServiceName: EventDirectoryName,
	HandlerType: (*EventDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "DescribeEvent", Handler: describeEventHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: directoryMetadata,
}

var UserDirectoryDesc = grpc.ServiceDesc{
	ServiceName: UserDirectoryName,
	HandlerType: (*UserDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetUser", Handler: getUserHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: directoryMetadata,
}

func RegisterRequestServiceServer(s grpc.ServiceRegistrar, srv RequestServiceServer) {
	s.RegisterService(&RequestServiceDesc, srv)
}

func RegisterEventDirectoryServer(s grpc.ServiceRegistrar, srv EventDirectoryServer) {
	s.RegisterService(&EventDirectoryDesc, srv)
}

func RegisterUserDirectoryServer(s grpc.ServiceRegistrar, srv UserDirectoryServer) {
	s.RegisterService(&UserDirectoryDesc, srv)
}

func countRequestsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RequestServiceServer).CountRequests(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CountRequestsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RequestServiceServer).CountRequests(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func describeEventHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EventDirectoryServer).DescribeEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DescribeEventMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EventDirectoryServer).DescribeEvent(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func getUserHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserDirectoryServer).GetUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetUserMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserDirectoryServer).GetUser(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}
