// Package admission decides the initial status of a participation request.
// It performs no I/O: every input arrives in the Intent and the snapshot.
package admission

import (
	"eventreg-request-service/internal/domain"
)

type Outcome int

const (
	// Reject refuses the request; Decision.Reason says why.
	Reject Outcome = iota
	// Admit confirms the request immediately.
	Admit
	// Queue stores the request as pending for the organizer to decide.
	Queue
)

func (o Outcome) String() string {
	switch o {
	case Admit:
		return "admit"
	case Queue:
		return "queue"
	default:
		return "reject"
	}
}

// Intent describes who is asking and what the store already knows about them.
type Intent struct {
	RequesterID int64
	// HasActiveRequest is true when a non-canceled request already exists for
	// the same requester and event.
	HasActiveRequest bool
}

type Decision struct {
	Outcome Outcome
	Reason  string
}

// Decide applies the admission rules in order; the first one that matches wins.
func Decide(in Intent, snap domain.CapacitySnapshot) Decision {
	switch {
	case !snap.EventIsPublished:
		return Decision{Outcome: Reject, Reason: domain.ReasonNotPublished}
	case in.RequesterID == snap.InitiatorID:
		return Decision{Outcome: Reject, Reason: domain.ReasonInitiatorRequest}
	case in.HasActiveRequest:
		return Decision{Outcome: Reject, Reason: domain.ReasonDuplicate}
	case snap.LimitReached(0):
		return Decision{Outcome: Reject, Reason: domain.ReasonLimitReached}
	case !snap.RequiresModeration || snap.Unlimited():
		return Decision{Outcome: Admit}
	default:
		return Decision{Outcome: Queue}
	}
}

// Status is the status a request is stored with. It is empty for Reject.
func (d Decision) Status() domain.RequestStatus {
	switch d.Outcome {
	case Admit:
		return domain.RequestStatusConfirmed
	case Queue:
		return domain.RequestStatusPending
	default:
		return ""
	}
}

// Err returns the conflict carried by a rejection, or nil.
func (d Decision) Err() error {
	if d.Outcome != Reject {
		return nil
	}
	return domain.NewConflict(d.Reason, "")
}

// HasSeat reports whether one more request can be confirmed given the
// current confirmed count plus the confirmations already granted in the
// running batch.
func HasSeat(snap domain.CapacitySnapshot, confirmedCount, grantedInBatch int64) bool {
	if snap.Unlimited() {
		return true
	}
	return confirmedCount+grantedInBatch < int64(snap.ParticipantLimit)
}
