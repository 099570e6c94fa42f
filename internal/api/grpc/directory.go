package grpc

import (
	"context"

	"eventreg-request-service/internal/directory"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DirectoryHandler serves the local users and events to peer services.
type DirectoryHandler struct {
	events directory.EventDirectory
	users  directory.UserDirectory
}

func NewDirectoryHandler(events directory.EventDirectory, users directory.UserDirectory) *DirectoryHandler {
	return &DirectoryHandler{events: events, users: users}
}

func (h *DirectoryHandler) DescribeEvent(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	event, err := h.events.Describe(ctx, in.GetValue())
	if err != nil {
		return nil, ToStatus(err)
	}
	return MapDomainEventToProto(event), nil
}

func (h *DirectoryHandler) GetUser(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	user, err := h.users.Get(ctx, in.GetValue())
	if err != nil {
		return nil, ToStatus(err)
	}
	return MapDomainUserToProto(user), nil
}
