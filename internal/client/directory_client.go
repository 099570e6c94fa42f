package client

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "eventreg-request-service/internal/api/grpc"
	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
)

const directoryLabel = "directory"

// EventDirectoryClient describes events held by a remote directory.
type EventDirectoryClient struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

func NewEventDirectoryClient(conn grpc.ClientConnInterface, timeout time.Duration) *EventDirectoryClient {
	return &EventDirectoryClient{conn: conn, timeout: timeout}
}

func (c *EventDirectoryClient) Describe(ctx context.Context, eventID int64) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	logger.RemoteCall(directoryLabel, "DescribeEvent", "event_id", eventID)
	out := new(structpb.Struct)
	err := c.conn.Invoke(ctx, api.DescribeEventMethod, wrapperspb.Int64(eventID), out)
	logger.RemoteResult(directoryLabel, "DescribeEvent", err, "event_id", eventID)
	if err != nil {
		return nil, fromStatus(err, "Event", eventID)
	}
	return api.MapProtoToDomainEvent(out)
}

// UserDirectoryClient looks up users held by a remote directory.
type UserDirectoryClient struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

func NewUserDirectoryClient(conn grpc.ClientConnInterface, timeout time.Duration) *UserDirectoryClient {
	return &UserDirectoryClient{conn: conn, timeout: timeout}
}

func (c *UserDirectoryClient) Get(ctx context.Context, userID int64) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	logger.RemoteCall(directoryLabel, "GetUser", "user_id", userID)
	out := new(structpb.Struct)
	err := c.conn.Invoke(ctx, api.GetUserMethod, wrapperspb.Int64(userID), out)
	logger.RemoteResult(directoryLabel, "GetUser", err, "user_id", userID)
	if err != nil {
		return nil, fromStatus(err, "User", userID)
	}
	return api.MapProtoToDomainUser(out)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
