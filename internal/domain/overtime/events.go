package overtime

import (
	"time"

	"dutywire/internal/domain/shared/events"
)

// Event types emitted by the allocation engine. Delivery and formatting are
// the notification dispatcher's concern.
const (
	EventPostingCreated   = "overtime.posting_created"
	EventPostingClosed    = "overtime.posting_closed"
	EventSlotFilled       = "overtime.slot_filled"
	EventForcedAssignment = "overtime.forced_assignment"
	EventSignupWithdrawn  = "overtime.signup_withdrawn"
)

type PostingCreatedEvent struct {
	events.BaseEvent
	OrgID    string    `json:"org_id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Capacity int       `json:"capacity"`
}

func NewPostingCreatedEvent(p *Posting) PostingCreatedEvent {
	return PostingCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: p.SID(),
			EventType:   EventPostingCreated,
			OccurredAt:  time.Now().UTC(),
		},
		OrgID:    p.OrgID(),
		Title:    p.Title(),
		StartsAt: p.StartsAt(),
		EndsAt:   p.EndsAt(),
		Capacity: p.Capacity(),
	}
}

type PostingClosedEvent struct {
	events.BaseEvent
	OrgID    string `json:"org_id"`
	Title    string `json:"title"`
	ClosedBy string `json:"closed_by"`
}

func NewPostingClosedEvent(p *Posting, closedBy string) PostingClosedEvent {
	return PostingClosedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: p.SID(),
			EventType:   EventPostingClosed,
			OccurredAt:  time.Now().UTC(),
		},
		OrgID:    p.OrgID(),
		Title:    p.Title(),
		ClosedBy: closedBy,
	}
}

// SlotFilledEvent fires when a claim takes the posting's last open slot.
type SlotFilledEvent struct {
	events.BaseEvent
	OrgID     string `json:"org_id"`
	Title     string `json:"title"`
	OfficerID string `json:"officer_id"`
}

func NewSlotFilledEvent(p *Posting, officerID string) SlotFilledEvent {
	return SlotFilledEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: p.SID(),
			EventType:   EventSlotFilled,
			OccurredAt:  time.Now().UTC(),
		},
		OrgID:     p.OrgID(),
		Title:     p.Title(),
		OfficerID: officerID,
	}
}

type ForcedAssignmentEvent struct {
	events.BaseEvent
	OrgID        string `json:"org_id"`
	Title        string `json:"title"`
	OfficerID    string `json:"officer_id"`
	SupervisorID string `json:"supervisor_id"`
	Reason       string `json:"reason"`
	OpenSlots    int    `json:"open_slots"`
}

func NewForcedAssignmentEvent(p *Posting, s *Signup, openSlots int) ForcedAssignmentEvent {
	supervisor := ""
	if s.ForcedBy() != nil {
		supervisor = *s.ForcedBy()
	}
	reason := ""
	if s.ForcedReason() != nil {
		reason = *s.ForcedReason()
	}
	return ForcedAssignmentEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: p.SID(),
			EventType:   EventForcedAssignment,
			OccurredAt:  time.Now().UTC(),
		},
		OrgID:        p.OrgID(),
		Title:        p.Title(),
		OfficerID:    s.OfficerID(),
		SupervisorID: supervisor,
		Reason:       reason,
		OpenSlots:    openSlots,
	}
}

type SignupWithdrawnEvent struct {
	events.BaseEvent
	OrgID     string `json:"org_id"`
	OfficerID string `json:"officer_id"`
	SignupSID string `json:"signup_sid"`
}

func NewSignupWithdrawnEvent(p *Posting, s *Signup) SignupWithdrawnEvent {
	return SignupWithdrawnEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: p.SID(),
			EventType:   EventSignupWithdrawn,
			OccurredAt:  time.Now().UTC(),
		},
		OrgID:     p.OrgID(),
		OfficerID: s.OfficerID(),
		SignupSID: s.SID(),
	}
}
