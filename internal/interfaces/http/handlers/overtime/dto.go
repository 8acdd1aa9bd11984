package overtime

import (
	"time"

	"dutywire/internal/application/overtime/usecases"
)

// CreatePostingRequest is the payload for posting creation. Time fields are
// RFC 3339; semantic validation happens in the domain layer.
type CreatePostingRequest struct {
	Title    string     `json:"title" binding:"required"`
	Location *string    `json:"location"`
	Scenario string     `json:"scenario" binding:"required"`
	StartsAt time.Time  `json:"starts_at" binding:"required"`
	EndsAt   time.Time  `json:"ends_at" binding:"required"`
	Capacity int        `json:"slot_capacity" binding:"required"`
	Policy   string     `json:"signup_policy"`
	Notes    *string    `json:"notes"`
	Deadline *time.Time `json:"signup_deadline"`
}

func (r *CreatePostingRequest) ToCommand(orgID, createdBy string) usecases.CreatePostingCommand {
	return usecases.CreatePostingCommand{
		OrgID:     orgID,
		Title:     r.Title,
		Location:  r.Location,
		Scenario:  r.Scenario,
		StartsAt:  r.StartsAt,
		EndsAt:    r.EndsAt,
		Capacity:  r.Capacity,
		Policy:    r.Policy,
		Notes:     r.Notes,
		Deadline:  r.Deadline,
		CreatedBy: createdBy,
	}
}

// UpdatePostingRequest carries a partial posting update. Absent fields keep
// their current value; clear_deadline removes the signup deadline.
type UpdatePostingRequest struct {
	Title         *string    `json:"title"`
	Location      *string    `json:"location"`
	Scenario      *string    `json:"scenario"`
	StartsAt      *time.Time `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at"`
	Capacity      *int       `json:"slot_capacity"`
	Policy        *string    `json:"signup_policy"`
	Notes         *string    `json:"notes"`
	Deadline      *time.Time `json:"signup_deadline"`
	ClearDeadline bool       `json:"clear_deadline"`
}

func (r *UpdatePostingRequest) ToCommand(postingSID, orgID, actorID string) usecases.UpdatePostingCommand {
	return usecases.UpdatePostingCommand{
		PostingSID:    postingSID,
		OrgID:         orgID,
		ActorID:       actorID,
		Title:         r.Title,
		Location:      r.Location,
		Scenario:      r.Scenario,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		Capacity:      r.Capacity,
		Policy:        r.Policy,
		Notes:         r.Notes,
		Deadline:      r.Deadline,
		ClearDeadline: r.ClearDeadline,
	}
}

// ForceAssignRequest is the payload for a supervisor force assignment. The
// reason is mandatory and lands in the posting's audit trail.
type ForceAssignRequest struct {
	OfficerID   string  `json:"officer_id" binding:"required"`
	Rank        *string `json:"rank"`
	BadgeNumber *string `json:"badge_number"`
	Reason      string  `json:"reason" binding:"required"`
}

func (r *ForceAssignRequest) ToCommand(postingSID, orgID, supervisorID string) usecases.ForceAssignCommand {
	return usecases.ForceAssignCommand{
		PostingSID:   postingSID,
		OrgID:        orgID,
		SupervisorID: supervisorID,
		OfficerID:    r.OfficerID,
		Rank:         r.Rank,
		BadgeNumber:  r.BadgeNumber,
		Reason:       r.Reason,
	}
}
