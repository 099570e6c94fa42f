// Package directory resolves the users and events this service refers to but
// does not own. Implementations read the local tables or call a remote
// directory over gRPC.
package directory

import (
	"context"

	"eventreg-request-service/internal/domain"
)

// EventDirectory describes events. Unknown ids yield a domain.NotFoundError.
type EventDirectory interface {
	Describe(ctx context.Context, eventID int64) (*domain.Event, error)
}

// UserDirectory looks up users. Unknown ids yield a domain.NotFoundError.
type UserDirectory interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
}

// RequireUser returns nil when the user exists.
func RequireUser(ctx context.Context, users UserDirectory, userID int64) error {
	_, err := users.Get(ctx, userID)
	return err
}
