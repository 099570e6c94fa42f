package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventreg-request-service/internal/admission"
	"eventreg-request-service/internal/capacity"
	"eventreg-request-service/internal/directory"
	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
	"eventreg-request-service/internal/repository"

	"github.com/google/uuid"
)

type requestService struct {
	requests      repository.RequestRepository
	events        directory.EventDirectory
	users         directory.UserDirectory
	oracle        capacity.Oracle
	notifier      Notifier
	atomicReserve bool
}

// NewRequestService wires the lifecycle manager. With atomicReserve set,
// confirmations on limited events are written through the store's
// check-and-insert path so concurrent creates cannot overfill an event.
func NewRequestService(
	requests repository.RequestRepository,
	events directory.EventDirectory,
	users directory.UserDirectory,
	oracle capacity.Oracle,
	notifier Notifier,
	atomicReserve bool,
) RequestService {
	return &requestService{
		requests:      requests,
		events:        events,
		users:         users,
		oracle:        oracle,
		notifier:      notifier,
		atomicReserve: atomicReserve,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, requesterID, eventID int64) (*domain.Request, error) {
	logger.Debug("CreateRequest", "requester_id", requesterID, "event_id", eventID)

	if err := directory.RequireUser(ctx, s.users, requesterID); err != nil {
		return nil, err
	}
	snap, err := s.oracle.Snapshot(ctx, eventID)
	if err != nil {
		return nil, err
	}
	active, err := s.requests.ExistsActive(ctx, requesterID, eventID)
	if err != nil {
		return nil, fmt.Errorf("check active request: %w", err)
	}

	decision := admission.Decide(admission.Intent{RequesterID: requesterID, HasActiveRequest: active}, snap)
	if decision.Outcome == admission.Reject {
		logger.Info("Request rejected", "requester_id", requesterID, "event_id", eventID, "reason", decision.Reason)
		return nil, decision.Err()
	}

	req := &domain.Request{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		EventID:     eventID,
		CreatedAt:   time.Now().UTC(),
		Status:      decision.Status(),
	}

	if decision.Outcome == admission.Admit && s.atomicReserve && !snap.Unlimited() {
		err = s.requests.CreateWithinLimit(ctx, req, snap.ParticipantLimit)
	} else {
		err = s.requests.Create(ctx, req)
	}
	if err != nil {
		return nil, translateStoreError(err, "create request")
	}

	logger.Debug("CreateRequest done", "request_id", req.ID, "status", req.Status, "outcome", decision.Outcome.String())
	return req, nil
}

func (s *requestService) CancelRequest(ctx context.Context, requesterID int64, requestID string) (*domain.Request, error) {
	logger.Debug("CancelRequest", "requester_id", requesterID, "request_id", requestID)

	if err := directory.RequireUser(ctx, s.users, requesterID); err != nil {
		return nil, err
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != requesterID {
		logger.Info("Cancel refused", "requester_id", requesterID, "request_id", requestID, "reason", domain.ReasonNotOwner)
		return nil, domain.NewConflict(domain.ReasonNotOwner, fmt.Sprintf("request %s", requestID))
	}
	if !domain.CanTransition(req.Status, domain.RequestStatusCanceled) {
		return nil, domain.NewConflict(domain.ReasonIllegalTransition, string(req.Status)+" -> CANCELED")
	}

	if err := s.requests.UpdateStatus(ctx, req.ID, domain.RequestStatusCanceled); err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	req.Status = domain.RequestStatusCanceled
	return req, nil
}

func (s *requestService) ListRequestsForRequester(ctx context.Context, requesterID int64) ([]domain.Request, error) {
	if err := directory.RequireUser(ctx, s.users, requesterID); err != nil {
		return nil, err
	}
	return s.requests.ListByRequester(ctx, requesterID)
}

func (s *requestService) ListRequestsForEvent(ctx context.Context, organizerID, eventID int64) ([]domain.Request, error) {
	if err := directory.RequireUser(ctx, s.users, organizerID); err != nil {
		return nil, err
	}
	event, err := s.events.Describe(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID != organizerID {
		return nil, domain.NewConflict(domain.ReasonNotInitiator, fmt.Sprintf("event %d", eventID))
	}
	return s.requests.ListByEvent(ctx, eventID)
}

// ChangeRequestStatus confirms or rejects pending requests of one event in the
// order given. Capacity is re-read before every confirmation; once it runs out
// the current and all later requests are rejected. Nothing is written unless
// every request passes validation.
func (s *requestService) ChangeRequestStatus(ctx context.Context, organizerID, eventID int64, update domain.StatusUpdate) (*domain.StatusUpdateResult, error) {
	logger.Debug("ChangeRequestStatus", "organizer_id", organizerID, "event_id", eventID, "target", update.Status, "count", len(update.RequestIDs))

	if err := validateStatusUpdate(update); err != nil {
		return nil, err
	}
	if err := directory.RequireUser(ctx, s.users, organizerID); err != nil {
		return nil, err
	}

	snap, err := s.oracle.Snapshot(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if snap.InitiatorID != organizerID {
		return nil, domain.NewConflict(domain.ReasonNotInitiator, fmt.Sprintf("event %d", eventID))
	}
	if update.Status == domain.RequestStatusConfirmed && snap.LimitReached(0) {
		logger.Info("Batch refused", "event_id", eventID, "reason", domain.ReasonLimitReached)
		return nil, domain.NewConflict(domain.ReasonLimitReached, "")
	}

	batch, err := s.loadPending(ctx, eventID, update.RequestIDs)
	if err != nil {
		return nil, err
	}

	result := &domain.StatusUpdateResult{
		Confirmed: []domain.Request{},
		Rejected:  []domain.Request{},
	}
	var granted int64
	exhausted := false
	for i := range batch {
		req := &batch[i]
		if update.Status == domain.RequestStatusRejected {
			req.Status = domain.RequestStatusRejected
			result.Rejected = append(result.Rejected, *req)
			continue
		}
		if !exhausted {
			confirmed, err := s.oracle.ConfirmedCount(ctx, eventID)
			if err != nil {
				return nil, err
			}
			exhausted = !admission.HasSeat(snap, confirmed, granted)
		}
		if exhausted {
			req.Status = domain.RequestStatusRejected
			result.Rejected = append(result.Rejected, *req)
			result.Spillover++
			continue
		}
		req.Status = domain.RequestStatusConfirmed
		result.Confirmed = append(result.Confirmed, *req)
		granted++
	}

	var limit int32
	if s.atomicReserve && update.Status == domain.RequestStatusConfirmed {
		limit = snap.ParticipantLimit
	}
	if err := s.requests.ApplyBatch(ctx, eventID, batch, limit); err != nil {
		return nil, translateStoreError(err, "apply batch")
	}

	if result.Spillover > 0 {
		logger.Info("Batch capacity exhausted", "event_id", eventID, "spillover", result.Spillover)
	}
	s.notifyAll(ctx, batch)
	return result, nil
}

func (s *requestService) CountRequests(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error) {
	if status == "" {
		status = domain.RequestStatusConfirmed
	}
	return s.requests.CountByEventAndStatus(ctx, eventID, status)
}

// loadPending returns the requests in ids order, failing on the first one
// that is missing, foreign to the event or no longer pending.
func (s *requestService) loadPending(ctx context.Context, eventID int64, ids []string) ([]domain.Request, error) {
	found, err := s.requests.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}
	byID := make(map[string]domain.Request, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	batch := make([]domain.Request, 0, len(ids))
	for _, id := range ids {
		req, ok := byID[id]
		if !ok {
			return nil, domain.NewNotFound("Request", id)
		}
		if req.EventID != eventID {
			return nil, domain.NewConflict(domain.ReasonWrongEvent, fmt.Sprintf("request %s", id))
		}
		if req.Status != domain.RequestStatusPending {
			return nil, domain.NewConflict(domain.ReasonNotPending, fmt.Sprintf("request %s is %s", id, req.Status))
		}
		batch = append(batch, req)
	}
	return batch, nil
}

func (s *requestService) notifyAll(ctx context.Context, reqs []domain.Request) {
	for _, req := range reqs {
		user, err := s.users.Get(ctx, req.RequesterID)
		if err != nil {
			logger.Warn("Skipping decision notification", "request_id", req.ID, "error", err)
			continue
		}
		if err := s.notifier.NotifyDecision(ctx, user, req); err != nil {
			logger.Warn("Failed to send decision notification", "request_id", req.ID, "error", err)
		}
	}
}

func validateStatusUpdate(update domain.StatusUpdate) error {
	if update.Status != domain.RequestStatusConfirmed && update.Status != domain.RequestStatusRejected {
		return domain.NewInvalidArgument(fmt.Sprintf("status must be CONFIRMED or REJECTED, got %q", update.Status))
	}
	if len(update.RequestIDs) == 0 {
		return domain.NewInvalidArgument("requestIds must not be empty")
	}
	seen := make(map[string]bool, len(update.RequestIDs))
	for _, id := range update.RequestIDs {
		if seen[id] {
			return domain.NewInvalidArgument(fmt.Sprintf("request id %s listed twice", id))
		}
		seen[id] = true
	}
	return nil
}

func translateStoreError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateRequest):
		return domain.NewConflict(domain.ReasonDuplicate, "")
	case errors.Is(err, repository.ErrLimitReached):
		return domain.NewConflict(domain.ReasonLimitReached, "")
	case errors.Is(err, repository.ErrStaleStatus):
		return domain.NewConflict(domain.ReasonNotPending, "request changed concurrently")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
