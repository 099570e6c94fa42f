package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "eventreg-request-service/internal/api/grpc"
	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
)

const requestServiceLabel = "request-service"

// RequestClient calls RequestService on the node that owns the request store.
type RequestClient struct {
	conn grpc.ClientConnInterface
}

func NewRequestClient(conn grpc.ClientConnInterface) *RequestClient {
	return &RequestClient{conn: conn}
}

func (c *RequestClient) CountRequests(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error) {
	logger.RemoteCall(requestServiceLabel, "CountRequests", "event_id", eventID, "status", status)

	out := new(wrapperspb.Int64Value)
	err := c.conn.Invoke(ctx, api.CountRequestsMethod, api.MapCountRequestsToProto(eventID, status), out)
	logger.RemoteResult(requestServiceLabel, "CountRequests", err, "event_id", eventID)
	if err != nil {
		return 0, fromStatus(err, "Event", eventID)
	}
	return out.GetValue(), nil
}
