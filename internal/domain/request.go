package domain

import (
	"fmt"
	"time"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// ParseRequestStatus converts the wire form of a status into a RequestStatus.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(s); st {
	case RequestStatusPending, RequestStatusConfirmed, RequestStatusRejected, RequestStatusCanceled:
		return st, nil
	}
	return "", NewInvalidArgument(fmt.Sprintf("unknown request status %q", s))
}

// Request is one person's intent to attend one event.
type Request struct {
	ID          string        `json:"id"`
	RequesterID int64         `json:"requesterId"`
	EventID     int64         `json:"eventId"`
	CreatedAt   time.Time     `json:"createdAt"`
	Status      RequestStatus `json:"status"`
}

// requestTransitions lists every legal status change. Re-canceling is
// allowed so that cancellation stays idempotent.
var requestTransitions = map[RequestStatus]map[RequestStatus]bool{
	RequestStatusPending: {
		RequestStatusConfirmed: true,
		RequestStatusRejected:  true,
		RequestStatusCanceled:  true,
	},
	RequestStatusConfirmed: {RequestStatusCanceled: true},
	RequestStatusRejected:  {RequestStatusCanceled: true},
	RequestStatusCanceled:  {RequestStatusCanceled: true},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to RequestStatus) bool {
	return requestTransitions[from][to]
}

// StatusUpdate is an organizer's decision over a set of pending requests.
type StatusUpdate struct {
	RequestIDs []string      `json:"requestIds"`
	Status     RequestStatus `json:"status"`
}

// StatusUpdateResult holds the outcome of a batch decision in the order the
// ids were supplied. Rejected includes spillover rejections; Spillover counts
// how many of them were caused by exhausted capacity.
type StatusUpdateResult struct {
	Confirmed []Request `json:"confirmedRequests"`
	Rejected  []Request `json:"rejectedRequests"`
	Spillover int       `json:"-"`
}
