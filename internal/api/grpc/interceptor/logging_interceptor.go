package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"eventreg-request-service/internal/logger"
)

// UnaryLogging logs every unary call with its status code and duration.
func UnaryLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		logger.Debug("→ gRPC call", "method", info.FullMethod)

		resp, err := handler(ctx, req)

		args := []any{"method", info.FullMethod, "code", status.Code(err).String(), "duration_ms", time.Since(start).Milliseconds()}
		if err != nil {
			logger.Warn("← gRPC call failed", append(args, "error", err)...)
		} else {
			logger.Debug("← gRPC call succeeded", args...)
		}
		return resp, err
	}
}
