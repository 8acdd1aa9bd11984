package dto

import (
	"time"

	"dutywire/internal/domain/overtime"
)

type PostingDTO struct {
	SID              string      `json:"id"`
	OrgID            string      `json:"org_id"`
	Title            string      `json:"title"`
	Location         *string     `json:"location"`
	Scenario         string      `json:"scenario"`
	StartsAt         time.Time   `json:"starts_at"`
	EndsAt           time.Time   `json:"ends_at"`
	Capacity         int         `json:"slot_capacity"`
	OpenSlots        int         `json:"open_slots"`
	DisplayOpenSlots int         `json:"display_open_slots"`
	Policy           string      `json:"signup_policy"`
	Notes            *string     `json:"notes"`
	Deadline         *time.Time  `json:"signup_deadline"`
	State            string      `json:"state"`
	CreatedBy        string      `json:"created_by"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Signups          []SignupDTO `json:"signups,omitempty"`
}

type PostingListItemDTO struct {
	SID              string     `json:"id"`
	Title            string     `json:"title"`
	Location         *string    `json:"location"`
	Scenario         string     `json:"scenario"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           time.Time  `json:"ends_at"`
	Capacity         int        `json:"slot_capacity"`
	DisplayOpenSlots int        `json:"display_open_slots"`
	Policy           string     `json:"signup_policy"`
	Deadline         *time.Time `json:"signup_deadline"`
	State            string     `json:"state"`
}

type SignupDTO struct {
	SID          string    `json:"id"`
	PostingSID   string    `json:"posting_id"`
	OfficerID    string    `json:"officer_id"`
	Status       string    `json:"status"`
	Rank         *string   `json:"rank"`
	BadgeNumber  *string   `json:"badge_number"`
	SubmittedAt  time.Time `json:"submitted_at"`
	ForcedBy     *string   `json:"forced_by,omitempty"`
	ForcedReason *string   `json:"forced_reason,omitempty"`
}

type AuditEventDTO struct {
	SID       string    `json:"id"`
	Kind      string    `json:"kind"`
	ActorID   string    `json:"actor_id"`
	OfficerID *string   `json:"officer_id,omitempty"`
	SignupSID *string   `json:"signup_id,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPostingDTO renders a posting with its derived slot figures. The signups
// slice is expected to already be in the posting's policy order.
func ToPostingDTO(p *overtime.Posting, signups []*overtime.Signup, openSlots int) *PostingDTO {
	if p == nil {
		return nil
	}

	display := openSlots
	if display < 0 {
		display = 0
	}

	out := &PostingDTO{
		SID:              p.SID(),
		OrgID:            p.OrgID(),
		Title:            p.Title(),
		Location:         p.Location(),
		Scenario:         p.Scenario().String(),
		StartsAt:         p.StartsAt(),
		EndsAt:           p.EndsAt(),
		Capacity:         p.Capacity(),
		OpenSlots:        openSlots,
		DisplayOpenSlots: display,
		Policy:           p.Policy().String(),
		Notes:            p.Notes(),
		Deadline:         p.Deadline(),
		State:            p.State().String(),
		CreatedBy:        p.CreatedBy(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}

	for _, s := range signups {
		out.Signups = append(out.Signups, ToSignupDTO(s, p.SID()))
	}

	return out
}

func ToPostingListItemDTO(p *overtime.Posting, openSlots int) PostingListItemDTO {
	display := openSlots
	if display < 0 {
		display = 0
	}
	return PostingListItemDTO{
		SID:              p.SID(),
		Title:            p.Title(),
		Location:         p.Location(),
		Scenario:         p.Scenario().String(),
		StartsAt:         p.StartsAt(),
		EndsAt:           p.EndsAt(),
		Capacity:         p.Capacity(),
		DisplayOpenSlots: display,
		Policy:           p.Policy().String(),
		Deadline:         p.Deadline(),
		State:            p.State().String(),
	}
}

func ToSignupDTO(s *overtime.Signup, postingSID string) SignupDTO {
	return SignupDTO{
		SID:          s.SID(),
		PostingSID:   postingSID,
		OfficerID:    s.OfficerID(),
		Status:       s.Status().String(),
		Rank:         s.Rank(),
		BadgeNumber:  s.BadgeNumber(),
		SubmittedAt:  s.SubmittedAt(),
		ForcedBy:     s.ForcedBy(),
		ForcedReason: s.ForcedReason(),
	}
}

func ToAuditEventDTO(e *overtime.AuditEvent) AuditEventDTO {
	return AuditEventDTO{
		SID:       e.SID(),
		Kind:      e.Kind().String(),
		ActorID:   e.ActorID(),
		OfficerID: e.OfficerID(),
		SignupSID: e.SignupSID(),
		Reason:    e.Reason(),
		Summary:   e.Summary(),
		CreatedAt: e.CreatedAt(),
	}
}
