package directory

import (
	"context"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/repository"
)

type localEventDirectory struct {
	events repository.EventRepository
}

func NewLocalEventDirectory(events repository.EventRepository) EventDirectory {
	return &localEventDirectory{events: events}
}

func (d *localEventDirectory) Describe(ctx context.Context, eventID int64) (*domain.Event, error) {
	return d.events.GetByID(ctx, eventID)
}

type localUserDirectory struct {
	users repository.UserRepository
}

func NewLocalUserDirectory(users repository.UserRepository) UserDirectory {
	return &localUserDirectory{users: users}
}

func (d *localUserDirectory) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return d.users.GetByID(ctx, userID)
}
