package http

import (
	"context"

	"eventreg-request-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) CreateRequest(ctx context.Context, requesterID, eventID int64) (*domain.Request, error) {
	args := m.Called(ctx, requesterID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) CancelRequest(ctx context.Context, requesterID int64, requestID string) (*domain.Request, error) {
	args := m.Called(ctx, requesterID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) ListRequestsForRequester(ctx context.Context, requesterID int64) ([]domain.Request, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestService) ListRequestsForEvent(ctx context.Context, organizerID, eventID int64) ([]domain.Request, error) {
	args := m.Called(ctx, organizerID, eventID)
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestService) ChangeRequestStatus(ctx context.Context, organizerID, eventID int64, update domain.StatusUpdate) (*domain.StatusUpdateResult, error) {
	args := m.Called(ctx, organizerID, eventID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusUpdateResult), args.Error(1)
}

func (m *MockRequestService) CountRequests(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error) {
	args := m.Called(ctx, eventID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventStateService struct {
	mock.Mock
}

func (m *MockEventStateService) ChangeState(ctx context.Context, actorID int64, role domain.Role, eventID int64, action domain.EventStateAction) (*domain.Event, error) {
	args := m.Called(ctx, actorID, role, eventID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
