package grpc

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// CallerServiceFromContext returns the peer service name injected by the auth
// interceptor, or "" when the call was not authenticated.
func CallerServiceFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get("caller-service"); len(v) > 0 {
		return v[0]
	}
	return ""
}
