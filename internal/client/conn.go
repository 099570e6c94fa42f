// Package client calls the gRPC services of peer deployments.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/security"
)

// Dial opens a lazy connection to address. When tokens is non-nil every call
// carries a service token issued for serviceName.
func Dial(address string, tokens security.TokenManager, serviceName string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	if tokens != nil {
		opts = append(opts, grpc.WithUnaryInterceptor(serviceTokenInterceptor(tokens, serviceName)))
	}
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return conn, nil
}

func serviceTokenInterceptor(tokens security.TokenManager, serviceName string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		token, err := tokens.GenerateServiceToken(serviceName)
		if err != nil {
			return fmt.Errorf("issue service token: %w", err)
		}
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// fromStatus turns a failed call back into a domain error. NotFound and
// InvalidArgument keep their meaning; everything else is ErrUnavailable.
func fromStatus(err error, entity string, id any) error {
	switch status.Code(err) {
	case codes.NotFound:
		return domain.NewNotFound(entity, id)
	case codes.InvalidArgument:
		return domain.NewInvalidArgument(status.Convert(err).Message())
	default:
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
}
