package overtime

import (
	"fmt"
	"time"

	vo "dutywire/internal/domain/overtime/valueobjects"
)

// Posting is a capacity-bounded overtime opportunity owned by an org.
// Open slot count is always derived from the active signup set; it is never
// stored on the posting.
type Posting struct {
	id        uint
	sid       string
	orgID     string
	title     string
	location  *string
	scenario  vo.Scenario
	startsAt  time.Time
	endsAt    time.Time
	capacity  int
	policy    vo.OrderingPolicy
	notes     *string
	deadline  *time.Time
	state     vo.PostingState
	createdBy string
	createdAt time.Time
	updatedAt time.Time
}

func NewPosting(
	orgID string,
	title string,
	location *string,
	scenario vo.Scenario,
	startsAt time.Time,
	endsAt time.Time,
	capacity int,
	policy vo.OrderingPolicy,
	notes *string,
	deadline *time.Time,
	createdBy string,
) (*Posting, error) {
	if orgID == "" {
		return nil, fmt.Errorf("org ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if !scenario.IsValid() {
		return nil, fmt.Errorf("invalid scenario")
	}
	if !startsAt.Before(endsAt) {
		return nil, fmt.Errorf("start time must be before end time")
	}
	if capacity < 1 {
		return nil, fmt.Errorf("slot capacity must be at least 1")
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("invalid ordering policy")
	}
	if createdBy == "" {
		return nil, fmt.Errorf("creator identity is required")
	}

	now := time.Now().UTC()

	return &Posting{
		orgID:     orgID,
		title:     title,
		location:  location,
		scenario:  scenario,
		startsAt:  startsAt.UTC(),
		endsAt:    endsAt.UTC(),
		capacity:  capacity,
		policy:    policy,
		notes:     notes,
		deadline:  utcPtr(deadline),
		state:     vo.StateOpen,
		createdBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructPosting(
	id uint,
	sid string,
	orgID string,
	title string,
	location *string,
	scenario vo.Scenario,
	startsAt time.Time,
	endsAt time.Time,
	capacity int,
	policy vo.OrderingPolicy,
	notes *string,
	deadline *time.Time,
	state vo.PostingState,
	createdBy string,
	createdAt, updatedAt time.Time,
) (*Posting, error) {
	if id == 0 {
		return nil, fmt.Errorf("posting ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("posting SID is required")
	}
	if !scenario.IsValid() {
		return nil, fmt.Errorf("invalid scenario")
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("invalid ordering policy")
	}
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid posting state")
	}

	return &Posting{
		id:        id,
		sid:       sid,
		orgID:     orgID,
		title:     title,
		location:  location,
		scenario:  scenario,
		startsAt:  startsAt,
		endsAt:    endsAt,
		capacity:  capacity,
		policy:    policy,
		notes:     notes,
		deadline:  deadline,
		state:     state,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Posting) ID() uint                  { return p.id }
func (p *Posting) SID() string               { return p.sid }
func (p *Posting) OrgID() string             { return p.orgID }
func (p *Posting) Title() string             { return p.title }
func (p *Posting) Location() *string         { return p.location }
func (p *Posting) Scenario() vo.Scenario     { return p.scenario }
func (p *Posting) StartsAt() time.Time       { return p.startsAt }
func (p *Posting) EndsAt() time.Time         { return p.endsAt }
func (p *Posting) Capacity() int             { return p.capacity }
func (p *Posting) Policy() vo.OrderingPolicy { return p.policy }
func (p *Posting) Notes() *string            { return p.notes }
func (p *Posting) Deadline() *time.Time      { return p.deadline }
func (p *Posting) State() vo.PostingState    { return p.state }
func (p *Posting) CreatedBy() string         { return p.createdBy }
func (p *Posting) CreatedAt() time.Time      { return p.createdAt }
func (p *Posting) UpdatedAt() time.Time      { return p.updatedAt }

func (p *Posting) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("posting ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("posting ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Posting) SetSID(sid string) error {
	if p.sid != "" {
		return fmt.Errorf("posting SID is already set")
	}
	if sid == "" {
		return fmt.Errorf("posting SID cannot be empty")
	}
	p.sid = sid
	return nil
}

// PostingUpdate carries the mutable attributes for an update. Nil fields are
// left unchanged.
type PostingUpdate struct {
	Title    *string
	Location *string
	Scenario *vo.Scenario
	StartsAt *time.Time
	EndsAt   *time.Time
	Capacity *int
	Policy   *vo.OrderingPolicy
	Notes    *string
	Deadline *time.Time
	// ClearDeadline removes an existing deadline.
	ClearDeadline bool
}

// ApplyUpdate mutates the posting. hasActiveSignups guards the policy
// immutability rule: once any active signup exists, the ordering policy is
// frozen because a policy change would invalidate the established order.
// Capacity may shrink below the active claim count; the resulting
// over-capacity is surfaced through a negative open-slot figure and resolved
// manually, never by auto-withdrawing signups.
func (p *Posting) ApplyUpdate(u PostingUpdate, hasActiveSignups bool) error {
	if p.state.IsClosed() {
		return fmt.Errorf("cannot update a closed posting")
	}

	title := p.title
	if u.Title != nil {
		title = *u.Title
	}
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}

	startsAt := p.startsAt
	if u.StartsAt != nil {
		startsAt = u.StartsAt.UTC()
	}
	endsAt := p.endsAt
	if u.EndsAt != nil {
		endsAt = u.EndsAt.UTC()
	}
	if !startsAt.Before(endsAt) {
		return fmt.Errorf("start time must be before end time")
	}

	capacity := p.capacity
	if u.Capacity != nil {
		capacity = *u.Capacity
	}
	if capacity < 1 {
		return fmt.Errorf("slot capacity must be at least 1")
	}

	if u.Scenario != nil && !u.Scenario.IsValid() {
		return fmt.Errorf("invalid scenario")
	}

	if u.Policy != nil {
		if !u.Policy.IsValid() {
			return fmt.Errorf("invalid ordering policy")
		}
		if *u.Policy != p.policy && hasActiveSignups {
			return fmt.Errorf("ordering policy cannot change once signups exist")
		}
	}

	p.title = title
	p.startsAt = startsAt
	p.endsAt = endsAt
	p.capacity = capacity
	if u.Scenario != nil {
		p.scenario = *u.Scenario
	}
	if u.Policy != nil {
		p.policy = *u.Policy
	}
	if u.Location != nil {
		p.location = u.Location
	}
	if u.Notes != nil {
		p.notes = u.Notes
	}
	if u.ClearDeadline {
		p.deadline = nil
	} else if u.Deadline != nil {
		p.deadline = utcPtr(u.Deadline)
	}
	p.updatedAt = time.Now().UTC()

	return nil
}

// Close transitions the posting to closed. Closing a closed posting is a
// no-op success; the returned flag reports whether anything changed.
func (p *Posting) Close() bool {
	if p.state.IsClosed() {
		return false
	}
	p.state = vo.StateClosed
	p.updatedAt = time.Now().UTC()
	return true
}

func (p *Posting) IsOpen() bool {
	return p.state.IsOpen()
}

// DeadlineExpired reports whether the signup deadline (when set) has passed.
// A posting without a deadline accepts claims until it is closed.
func (p *Posting) DeadlineExpired(now time.Time) bool {
	if p.deadline == nil {
		return false
	}
	return now.UTC().After(*p.deadline)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
