package jobs

import (
	"context"
	"fmt"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
)

// AuditCapacity reports events holding more confirmed requests than their
// limit. That only happens when admissions ran on a fallback count.
func (jr *JobRunner) AuditCapacity() {
	jr.runWithRecovery("AuditCapacity", func(ctx context.Context) error {
		_, err := jr.auditCapacity(ctx)
		return err
	})
}

func (jr *JobRunner) auditCapacity(ctx context.Context) ([]domain.OverbookedEvent, error) {
	overbooked, err := jr.events.ListOverbooked(ctx)
	if err != nil {
		return nil, fmt.Errorf("list overbooked events: %w", err)
	}

	for _, e := range overbooked {
		logger.Warn("Event over capacity",
			"event_id", e.EventID,
			"participant_limit", e.ParticipantLimit,
			"confirmed", e.ConfirmedCount,
			"excess", e.ConfirmedCount-int64(e.ParticipantLimit),
		)
	}
	logger.Info("Capacity audit finished", "overbooked_events", len(overbooked))
	return overbooked, nil
}
