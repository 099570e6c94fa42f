package service

import (
	"context"
	"fmt"
	"time"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
	"eventreg-request-service/internal/repository"
)

type eventStateService struct {
	events repository.EventRepository
}

func NewEventStateService(events repository.EventRepository) EventStateService {
	return &eventStateService{events: events}
}

// ChangeState applies a state action to an event the local directory owns.
// Initiators may only act on their own events.
func (s *eventStateService) ChangeState(ctx context.Context, actorID int64, role domain.Role, eventID int64, action domain.EventStateAction) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleInitiator && event.InitiatorID != actorID {
		return nil, domain.NewConflict(domain.ReasonNotInitiator, fmt.Sprintf("event %d", eventID))
	}

	next, err := domain.NextEventState(role, event.State, action)
	if err != nil {
		logger.Info("State action refused", "event_id", eventID, "role", role, "action", action, "state", event.State)
		return nil, err
	}

	event.State = next
	if next == domain.EventStatePublished {
		now := time.Now().UTC()
		event.PublishedOn = &now
	}
	if err := s.events.UpdateState(ctx, event); err != nil {
		return nil, fmt.Errorf("update event state: %w", err)
	}

	logger.Info("Event state changed", "event_id", eventID, "action", action, "state", next)
	return event, nil
}
