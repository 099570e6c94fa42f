package service

import (
	"context"

	"eventreg-request-service/internal/domain"
)

// RequestService is the request lifecycle manager.
type RequestService interface {
	CreateRequest(ctx context.Context, requesterID, eventID int64) (*domain.Request, error)
	CancelRequest(ctx context.Context, requesterID int64, requestID string) (*domain.Request, error)
	ListRequestsForRequester(ctx context.Context, requesterID int64) ([]domain.Request, error)
	ListRequestsForEvent(ctx context.Context, organizerID, eventID int64) ([]domain.Request, error)
	ChangeRequestStatus(ctx context.Context, organizerID, eventID int64, update domain.StatusUpdate) (*domain.StatusUpdateResult, error)
	CountRequests(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error)
}

type EventStateService interface {
	ChangeState(ctx context.Context, actorID int64, role domain.Role, eventID int64, action domain.EventStateAction) (*domain.Event, error)
}

// Notifier tells a requester about a decision on their request.
type Notifier interface {
	NotifyDecision(ctx context.Context, to *domain.User, req domain.Request) error
}
