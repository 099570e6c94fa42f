package service

import (
	"context"
	"sync"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory RequestRepository with the same guarantees as the
// postgres one: one active request per requester and event, and serialised
// guarded writes.
type memStore struct {
	mu     sync.Mutex
	reqs   map[string]domain.Request
	order  []string
	writes int
}

func newMemStore(seed ...domain.Request) *memStore {
	s := &memStore{reqs: map[string]domain.Request{}}
	for _, r := range seed {
		s.reqs[r.ID] = r
		s.order = append(s.order, r.ID)
	}
	return s
}

var _ repository.RequestRepository = (*memStore)(nil)

func (s *memStore) insertLocked(req *domain.Request) error {
	for _, r := range s.reqs {
		if r.RequesterID == req.RequesterID && r.EventID == req.EventID && r.Status != domain.RequestStatusCanceled {
			return repository.ErrDuplicateRequest
		}
	}
	s.reqs[req.ID] = *req
	s.order = append(s.order, req.ID)
	s.writes++
	return nil
}

func (s *memStore) countLocked(eventID int64, status domain.RequestStatus) int64 {
	var n int64
	for _, r := range s.reqs {
		if r.EventID == eventID && r.Status == status {
			n++
		}
	}
	return n
}

func (s *memStore) Create(ctx context.Context, req *domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(req)
}

func (s *memStore) CreateWithinLimit(ctx context.Context, req *domain.Request, limit int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countLocked(req.EventID, domain.RequestStatusConfirmed) >= int64(limit) {
		return repository.ErrLimitReached
	}
	return s.insertLocked(req)
}

func (s *memStore) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reqs[id]
	if !ok {
		return nil, domain.NewNotFound("Request", id)
	}
	return &r, nil
}

func (s *memStore) GetByIDs(ctx context.Context, ids []string) ([]domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Request{}
	for _, id := range ids {
		if r, ok := s.reqs[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reqs[id]
	if !ok {
		return domain.NewNotFound("Request", id)
	}
	r.Status = status
	s.reqs[id] = r
	s.writes++
	return nil
}

func (s *memStore) ApplyBatch(ctx context.Context, eventID int64, reqs []domain.Request, limit int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	confirmed := s.countLocked(eventID, domain.RequestStatusConfirmed)
	for _, req := range reqs {
		cur, ok := s.reqs[req.ID]
		if !ok || cur.EventID != eventID || cur.Status != domain.RequestStatusPending {
			return repository.ErrStaleStatus
		}
		if req.Status == domain.RequestStatusConfirmed {
			confirmed++
		}
	}
	if limit > 0 && confirmed > int64(limit) {
		return repository.ErrLimitReached
	}
	for _, req := range reqs {
		cur := s.reqs[req.ID]
		cur.Status = req.Status
		s.reqs[req.ID] = cur
	}
	s.writes++
	return nil
}

func (s *memStore) ExistsActive(ctx context.Context, requesterID, eventID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reqs {
		if r.RequesterID == requesterID && r.EventID == eventID && r.Status != domain.RequestStatusCanceled {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListByRequester(ctx context.Context, requesterID int64) ([]domain.Request, error) {
	return s.filter(func(r domain.Request) bool { return r.RequesterID == requesterID }), nil
}

func (s *memStore) ListByEvent(ctx context.Context, eventID int64) ([]domain.Request, error) {
	return s.filter(func(r domain.Request) bool { return r.EventID == eventID }), nil
}

func (s *memStore) CountByEventAndStatus(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(eventID, status), nil
}

func (s *memStore) filter(keep func(domain.Request) bool) []domain.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Request{}
	for _, id := range s.order {
		if r := s.reqs[id]; keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *memStore) status(id string) domain.RequestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reqs[id].Status
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type staticEvents map[int64]*domain.Event

func (e staticEvents) Describe(ctx context.Context, eventID int64) (*domain.Event, error) {
	if ev, ok := e[eventID]; ok {
		copied := *ev
		return &copied, nil
	}
	return nil, domain.NewNotFound("Event", eventID)
}

type staticUsers map[int64]*domain.User

func (u staticUsers) Get(ctx context.Context, userID int64) (*domain.User, error) {
	if user, ok := u[userID]; ok {
		return user, nil
	}
	return nil, domain.NewNotFound("User", userID)
}

func usersUpTo(n int64) staticUsers {
	users := staticUsers{}
	for id := int64(1); id <= n; id++ {
		users[id] = &domain.User{ID: id, Name: "user", Email: "user@example.com"}
	}
	return users
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Request
	err  error
}

func (n *recordingNotifier) NotifyDecision(ctx context.Context, to *domain.User, req domain.Request) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, req)
	return n.err
}

type failingFetcher struct{}

func (failingFetcher) CountRequests(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error) {
	return 0, domain.ErrUnavailable
}

type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepo) UpdateState(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventRepo) ListOverbooked(ctx context.Context) ([]domain.OverbookedEvent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OverbookedEvent), args.Error(1)
}
