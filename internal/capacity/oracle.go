package capacity

import (
	"context"
	"fmt"

	"eventreg-request-service/internal/directory"
	"eventreg-request-service/internal/domain"
)

// Oracle builds fresh capacity snapshots. Nothing is cached between calls.
type Oracle interface {
	// Snapshot fails with a domain.NotFoundError when the event does not exist.
	Snapshot(ctx context.Context, eventID int64) (domain.CapacitySnapshot, error)
	// ConfirmedCount re-reads only the counter.
	ConfirmedCount(ctx context.Context, eventID int64) (int64, error)
}

type oracle struct {
	events  directory.EventDirectory
	counter ConfirmedCounter
}

func NewOracle(events directory.EventDirectory, counter ConfirmedCounter) Oracle {
	return &oracle{events: events, counter: counter}
}

func (o *oracle) Snapshot(ctx context.Context, eventID int64) (domain.CapacitySnapshot, error) {
	event, err := o.events.Describe(ctx, eventID)
	if err != nil {
		return domain.CapacitySnapshot{}, err
	}
	confirmed, err := o.ConfirmedCount(ctx, eventID)
	if err != nil {
		return domain.CapacitySnapshot{}, err
	}
	return domain.SnapshotFromEvent(event, confirmed), nil
}

func (o *oracle) ConfirmedCount(ctx context.Context, eventID int64) (int64, error) {
	n, err := o.counter.Count(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count confirmed requests: %w", err)
	}
	return n, nil
}
