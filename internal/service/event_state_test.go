package service

import (
	"context"
	"testing"

	"eventreg-request-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEventStateService_ChangeState(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminPublishStampsDate", func(t *testing.T) {
		repo := new(MockEventRepo)
		svc := NewEventStateService(repo)
		repo.On("GetByID", ctx, int64(7)).Return(&domain.Event{ID: 7, InitiatorID: 1, State: domain.EventStatePending}, nil)
		repo.On("UpdateState", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.State == domain.EventStatePublished && e.PublishedOn != nil
		})).Return(nil)

		event, err := svc.ChangeState(ctx, 0, domain.RoleAdmin, 7, domain.EventActionPublish)
		require.NoError(t, err)
		assert.True(t, event.IsPublished())
		repo.AssertExpectations(t)
	})

	t.Run("InitiatorCancelsReview", func(t *testing.T) {
		repo := new(MockEventRepo)
		svc := NewEventStateService(repo)
		repo.On("GetByID", ctx, int64(7)).Return(&domain.Event{ID: 7, InitiatorID: 1, State: domain.EventStatePending}, nil)
		repo.On("UpdateState", ctx, mock.Anything).Return(nil)

		event, err := svc.ChangeState(ctx, 1, domain.RoleInitiator, 7, domain.EventActionCancelReview)
		require.NoError(t, err)
		assert.Equal(t, domain.EventStateCanceled, event.State)
		assert.Nil(t, event.PublishedOn)
	})

	t.Run("ForeignInitiator", func(t *testing.T) {
		repo := new(MockEventRepo)
		svc := NewEventStateService(repo)
		repo.On("GetByID", ctx, int64(7)).Return(&domain.Event{ID: 7, InitiatorID: 1, State: domain.EventStatePending}, nil)

		_, err := svc.ChangeState(ctx, 2, domain.RoleInitiator, 7, domain.EventActionSendToReview)
		assert.Equal(t, domain.ReasonNotInitiator, domain.ConflictReason(err))
		repo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything)
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		repo := new(MockEventRepo)
		svc := NewEventStateService(repo)
		repo.On("GetByID", ctx, int64(7)).Return(&domain.Event{ID: 7, InitiatorID: 1, State: domain.EventStatePublished}, nil)

		_, err := svc.ChangeState(ctx, 1, domain.RoleInitiator, 7, domain.EventActionCancelReview)
		assert.Equal(t, domain.ReasonIllegalTransition, domain.ConflictReason(err))

		_, err = svc.ChangeState(ctx, 0, domain.RoleAdmin, 7, domain.EventActionReject)
		assert.Equal(t, domain.ReasonIllegalTransition, domain.ConflictReason(err))
		repo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything)
	})

	t.Run("UnknownEvent", func(t *testing.T) {
		repo := new(MockEventRepo)
		svc := NewEventStateService(repo)
		repo.On("GetByID", ctx, int64(9)).Return(nil, domain.NewNotFound("Event", 9))

		_, err := svc.ChangeState(ctx, 0, domain.RoleAdmin, 9, domain.EventActionPublish)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
