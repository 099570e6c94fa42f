package jobs

import (
	"bytes"
	"context"
	"testing"

	"eventreg-request-service/internal/config"
	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverbookedEvent), args.Error(1)
}

func TestAuditCapacity(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "info", "json")
	defer logger.Initialize("info", "text")

	repo := new(MockEventRepo)
	repo.On("ListOverbooked", mock.Anything).Return([]domain.OverbookedEvent{
		{EventID: 7, ParticipantLimit: 2, ConfirmedCount: 3},
	}, nil)
	jr := NewJobRunner(repo, &config.Config{})

	got, err := jr.auditCapacity(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, buf.String(), `"msg":"Event over capacity"`)
	assert.Contains(t, buf.String(), `"excess":1`)
}

func TestAuditCapacity_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "info", "json")
	defer logger.Initialize("info", "text")

	repo := new(MockEventRepo)
	repo.On("ListOverbooked", mock.Anything).Return(nil, assert.AnError)

	NewJobRunner(repo, &config.Config{}).AuditCapacity()
	assert.Contains(t, buf.String(), `"msg":"Job failed"`)
}

func TestRunWithRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "info", "json")
	defer logger.Initialize("info", "text")

	jr := NewJobRunner(new(MockEventRepo), &config.Config{})
	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func(ctx context.Context) error { panic("boom") })
	})
	assert.Contains(t, buf.String(), "Job panicked")
}
