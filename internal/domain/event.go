package domain

import (
	"fmt"
	"time"
)

type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

type EventStateAction string

const (
	EventActionSendToReview EventStateAction = "SEND_TO_REVIEW"
	EventActionCancelReview EventStateAction = "CANCEL_REVIEW"
	EventActionPublish      EventStateAction = "PUBLISH_EVENT"
	EventActionReject       EventStateAction = "REJECT_EVENT"
)

// Role is the capacity in which a caller acts on an event.
type Role string

const (
	RoleInitiator Role = "INITIATOR"
	RoleAdmin     Role = "ADMIN"
)

// Event is the slice of an event this service needs to make admission
// decisions. The event itself is owned by the event directory.
type Event struct {
	ID                int64      `json:"id"`
	InitiatorID       int64      `json:"initiatorId"`
	ParticipantLimit  int32      `json:"participantLimit"`
	RequestModeration bool       `json:"requestModeration"`
	State             EventState `json:"state"`
	PublishedOn       *time.Time `json:"publishedOn,omitempty"`
}

func (e *Event) IsPublished() bool {
	return e.State == EventStatePublished
}

// OverbookedEvent is an event holding more confirmed requests than its limit.
type OverbookedEvent struct {
	EventID          int64
	ParticipantLimit int32
	ConfirmedCount   int64
}

type eventTransitionKey struct {
	role   Role
	from   EventState
	action EventStateAction
}

// eventTransitions is the complete set of legal state actions. Anything not
// listed is rejected.
var eventTransitions = map[eventTransitionKey]EventState{
	{RoleInitiator, EventStatePending, EventActionSendToReview}:  EventStatePending,
	{RoleInitiator, EventStateCanceled, EventActionSendToReview}: EventStatePending,
	{RoleInitiator, EventStatePending, EventActionCancelReview}:  EventStateCanceled,
	{RoleInitiator, EventStateCanceled, EventActionCancelReview}: EventStateCanceled,
	{RoleAdmin, EventStatePending, EventActionPublish}:           EventStatePublished,
	{RoleAdmin, EventStatePending, EventActionReject}:            EventStateCanceled,
}

// NextEventState looks up the state an event moves to when role applies action
// to an event currently in state from.
func NextEventState(role Role, from EventState, action EventStateAction) (EventState, error) {
	next, ok := eventTransitions[eventTransitionKey{role: role, from: from, action: action}]
	if !ok {
		return "", NewConflict(ReasonIllegalTransition,
			fmt.Sprintf("%s cannot apply %s to an event in state %s", role, action, from))
	}
	return next, nil
}

// ParseEventStateAction converts the wire form of a state action.
func ParseEventStateAction(s string) (EventStateAction, error) {
	switch a := EventStateAction(s); a {
	case EventActionSendToReview, EventActionCancelReview, EventActionPublish, EventActionReject:
		return a, nil
	}
	return "", NewInvalidArgument(fmt.Sprintf("unknown state action %q", s))
}
