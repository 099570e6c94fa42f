package domain

// CapacitySnapshot is a point-in-time read of an event's admission policy and
// its confirmed count. It is never cached between decisions.
type CapacitySnapshot struct {
	EventID            int64
	InitiatorID        int64
	ParticipantLimit   int32
	RequiresModeration bool
	ConfirmedCount     int64
	EventIsPublished   bool
}

// Unlimited reports whether the event accepts any number of participants.
func (s CapacitySnapshot) Unlimited() bool {
	return s.ParticipantLimit == 0
}

// LimitReached reports whether no seat is left once extra additional
// confirmations are taken into account.
func (s CapacitySnapshot) LimitReached(extra int64) bool {
	return !s.Unlimited() && s.ConfirmedCount+extra >= int64(s.ParticipantLimit)
}

// SnapshotFromEvent builds a snapshot from an event description and a count.
func SnapshotFromEvent(e *Event, confirmed int64) CapacitySnapshot {
	return CapacitySnapshot{
		EventID:            e.ID,
		InitiatorID:        e.InitiatorID,
		ParticipantLimit:   e.ParticipantLimit,
		RequiresModeration: e.RequestModeration,
		ConfirmedCount:     confirmed,
		EventIsPublished:   e.IsPublished(),
	}
}
