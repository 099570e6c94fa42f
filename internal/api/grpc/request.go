package grpc

import (
	"context"

	"eventreg-request-service/internal/logger"
	"eventreg-request-service/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type RequestHandler struct {
	requestSvc service.RequestService
}

func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// CountRequests is the authoritative confirmed counter other deployments call.
func (h *RequestHandler) CountRequests(ctx context.Context, in *structpb.Struct) (*wrapperspb.Int64Value, error) {
	eventID, status, err := MapProtoToCountRequests(in)
	if err != nil {
		return nil, ToStatus(err)
	}
	logger.Debug("CountRequests", "event_id", eventID, "status", status, "caller", CallerServiceFromContext(ctx))

	n, err := h.requestSvc.CountRequests(ctx, eventID, status)
	if err != nil {
		return nil, ToStatus(err)
	}
	return wrapperspb.Int64(n), nil
}
