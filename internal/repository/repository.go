package repository

import (
	"context"
	"errors"

	"eventreg-request-service/internal/domain"
)

var (
	// ErrDuplicateRequest is returned when an insert violates the
	// one-active-request-per-requester-and-event constraint.
	ErrDuplicateRequest = errors.New("active request already exists for requester and event")
	// ErrLimitReached is returned by the guarded writes when confirming would
	// exceed the event's participant limit.
	ErrLimitReached = errors.New("participant limit reached")
	// ErrStaleStatus is returned when a batch row is no longer pending at write time.
	ErrStaleStatus = errors.New("request status changed concurrently")
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	// CreateWithinLimit inserts a CONFIRMED request only if the event still
	// has fewer than limit confirmed requests, as one atomic step.
	CreateWithinLimit(ctx context.Context, req *domain.Request, limit int32) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error
	// ApplyBatch writes the new statuses of pending requests of one event in a
	// single transaction. A limit above zero guards the confirmed total.
	ApplyBatch(ctx context.Context, eventID int64, reqs []domain.Request, limit int32) error
	ExistsActive(ctx context.Context, requesterID, eventID int64) (bool, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.Request, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Request, error)
	CountByEventAndStatus(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error)
}

type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	UpdateState(ctx context.Context, event *domain.Event) error
	ListOverbooked(ctx context.Context) ([]domain.OverbookedEvent, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
