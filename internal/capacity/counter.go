// Package capacity answers how many seats of an event are taken and what the
// event's admission policy is.
package capacity

import (
	"context"
	"time"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
	"eventreg-request-service/internal/repository"
)

// ConfirmedCounter returns the number of CONFIRMED requests of an event.
type ConfirmedCounter interface {
	Count(ctx context.Context, eventID int64) (int64, error)
}

type localCounter struct {
	requests repository.RequestRepository
}

// NewLocalCounter counts directly in the request store. Errors are surfaced.
func NewLocalCounter(requests repository.RequestRepository) ConfirmedCounter {
	return &localCounter{requests: requests}
}

func (c *localCounter) Count(ctx context.Context, eventID int64) (int64, error) {
	return c.requests.CountByEventAndStatus(ctx, eventID, domain.RequestStatusConfirmed)
}

// CountFetcher is the remote request service's counting endpoint.
type CountFetcher interface {
	CountRequests(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error)
}

// RemoteCounter asks another service for the count. Any failure, including
// the timeout, is logged and reported as zero confirmed requests.
type RemoteCounter struct {
	fetcher CountFetcher
	timeout time.Duration
}

func NewRemoteCounter(fetcher CountFetcher, timeout time.Duration) *RemoteCounter {
	return &RemoteCounter{fetcher: fetcher, timeout: timeout}
}

func (c *RemoteCounter) Count(ctx context.Context, eventID int64) (int64, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	n, err := c.fetcher.CountRequests(ctx, eventID, domain.RequestStatusConfirmed)
	if err != nil {
		logger.Fallback("request-service", "CountRequests", err, "event_id", eventID, "fallback_count", 0)
		return 0, nil
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}
