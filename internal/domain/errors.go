package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable marks a dependency that could not be reached. The
	// confirmed counter absorbs it into a fallback; every other caller
	// surfaces it.
	ErrUnavailable = errors.New("dependency unavailable")
)

// Business rule reasons carried by ConflictError.
const (
	ReasonNotPublished      = "event not published"
	ReasonInitiatorRequest  = "initiator cannot request own event"
	ReasonDuplicate         = "duplicate request"
	ReasonLimitReached      = "limit reached"
	ReasonNotOwner          = "request belongs to another user"
	ReasonNotInitiator      = "only the event initiator may do this"
	ReasonNotPending        = "request is not pending"
	ReasonWrongEvent        = "request does not belong to event"
	ReasonIllegalTransition = "illegal state transition"
)

// ConflictError is a violated business rule. It matches ErrConflict.
type ConflictError struct {
	Reason string
	Detail string
}

func (e *ConflictError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Detail
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func NewConflict(reason, detail string) error {
	return &ConflictError{Reason: reason, Detail: detail}
}

// ConflictReason returns the reason of a ConflictError in err's chain, or ""
// when err is not a conflict.
func ConflictReason(err error) string {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return ""
}

// NotFoundError names the entity that could not be found. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id=%s was not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}

// NewInvalidArgument reports a malformed input.
func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}
