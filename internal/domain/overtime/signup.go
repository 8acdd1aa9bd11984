package overtime

import (
	"fmt"
	"time"

	vo "dutywire/internal/domain/overtime/valueobjects"
)

// Signup is one officer's claim against a posting's capacity. Forced signups
// additionally carry the authorizing supervisor and reason; those fields are
// mandatory on the forced path and absent everywhere else.
type Signup struct {
	id            uint
	sid           string
	postingID     uint
	orgID         string
	officerID     string
	status        vo.SignupStatus
	rank          *string
	rankPriority  int
	badgeNumber   *string
	tieBreakerKey string
	submittedAt   time.Time
	forcedBy      *string
	forcedReason  *string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewSignup creates a pending signup for a member-initiated claim. The
// seniority rank priority and tie-break key are computed once at submission
// so the established ordering cannot drift when the rank table changes.
func NewSignup(
	postingID uint,
	orgID string,
	officerID string,
	rank *string,
	badgeNumber *string,
	ranks RankTable,
	now time.Time,
) (*Signup, error) {
	if postingID == 0 {
		return nil, fmt.Errorf("posting ID is required")
	}
	if orgID == "" {
		return nil, fmt.Errorf("org ID is required")
	}
	if officerID == "" {
		return nil, fmt.Errorf("officer identity is required")
	}

	now = now.UTC()

	return &Signup{
		postingID:     postingID,
		orgID:         orgID,
		officerID:     officerID,
		status:        vo.SignupPending,
		rank:          rank,
		rankPriority:  ranks.PriorityFor(rank),
		badgeNumber:   badgeNumber,
		tieBreakerKey: tieBreakerKey(badgeNumber, officerID),
		submittedAt:   now,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// NewForcedSignup creates a supervisor-forced signup. The supervisor identity
// and a non-empty reason are required; there is no code path to a forced
// signup without both.
func NewForcedSignup(
	postingID uint,
	orgID string,
	officerID string,
	rank *string,
	badgeNumber *string,
	supervisorID string,
	reason string,
	ranks RankTable,
	now time.Time,
) (*Signup, error) {
	if supervisorID == "" {
		return nil, fmt.Errorf("supervisor identity is required for forced assignment")
	}
	if reason == "" {
		return nil, fmt.Errorf("reason is required for forced assignment")
	}

	s, err := NewSignup(postingID, orgID, officerID, rank, badgeNumber, ranks, now)
	if err != nil {
		return nil, err
	}

	s.status = vo.SignupForced
	s.forcedBy = &supervisorID
	s.forcedReason = &reason

	return s, nil
}

func ReconstructSignup(
	id uint,
	sid string,
	postingID uint,
	orgID string,
	officerID string,
	status vo.SignupStatus,
	rank *string,
	rankPriority int,
	badgeNumber *string,
	tieBreakKey string,
	submittedAt time.Time,
	forcedBy *string,
	forcedReason *string,
	createdAt, updatedAt time.Time,
) (*Signup, error) {
	if id == 0 {
		return nil, fmt.Errorf("signup ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("signup SID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid signup status")
	}
	if status.IsForced() {
		if forcedBy == nil || *forcedBy == "" || forcedReason == nil || *forcedReason == "" {
			return nil, fmt.Errorf("forced signup is missing supervisor or reason")
		}
	}

	return &Signup{
		id:            id,
		sid:           sid,
		postingID:     postingID,
		orgID:         orgID,
		officerID:     officerID,
		status:        status,
		rank:          rank,
		rankPriority:  rankPriority,
		badgeNumber:   badgeNumber,
		tieBreakerKey: tieBreakKey,
		submittedAt:   submittedAt,
		forcedBy:      forcedBy,
		forcedReason:  forcedReason,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (s *Signup) ID() uint                 { return s.id }
func (s *Signup) SID() string              { return s.sid }
func (s *Signup) PostingID() uint          { return s.postingID }
func (s *Signup) OrgID() string            { return s.orgID }
func (s *Signup) OfficerID() string        { return s.officerID }
func (s *Signup) Status() vo.SignupStatus  { return s.status }
func (s *Signup) Rank() *string            { return s.rank }
func (s *Signup) RankPriority() int        { return s.rankPriority }
func (s *Signup) BadgeNumber() *string     { return s.badgeNumber }
func (s *Signup) TieBreakerKey() string    { return s.tieBreakerKey }
func (s *Signup) SubmittedAt() time.Time   { return s.submittedAt }
func (s *Signup) ForcedBy() *string        { return s.forcedBy }
func (s *Signup) ForcedReason() *string    { return s.forcedReason }
func (s *Signup) CreatedAt() time.Time     { return s.createdAt }
func (s *Signup) UpdatedAt() time.Time     { return s.updatedAt }

func (s *Signup) IsActive() bool {
	return s.status.IsActive()
}

func (s *Signup) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("signup ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("signup ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Signup) SetSID(sid string) error {
	if s.sid != "" {
		return fmt.Errorf("signup SID is already set")
	}
	if sid == "" {
		return fmt.Errorf("signup SID cannot be empty")
	}
	s.sid = sid
	return nil
}

// Withdraw transitions the signup to withdrawn. It is idempotent: the
// returned flag is true only on the transition that actually released the
// slot, so a retried withdrawal never releases twice.
func (s *Signup) Withdraw() bool {
	if s.status.IsWithdrawn() {
		return false
	}
	s.status = vo.SignupWithdrawn
	s.updatedAt = time.Now().UTC()
	return true
}

// tieBreakerKey derives the stable ordering tie-break: badge number when
// present, officer identity otherwise.
func tieBreakerKey(badgeNumber *string, officerID string) string {
	if badgeNumber != nil && *badgeNumber != "" {
		return *badgeNumber
	}
	return officerID
}
