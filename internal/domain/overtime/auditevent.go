package overtime

import (
	"fmt"
	"time"
)

// AuditKind classifies an audit trail entry. Each kind is a closed variant
// with first-class fields; forced assignments always carry the supervisor
// and reason, never an optional detail blob.
type AuditKind string

const (
	AuditPostingCreated   AuditKind = "POSTING_CREATED"
	AuditPostingUpdated   AuditKind = "POSTING_UPDATED"
	AuditPostingClosed    AuditKind = "POSTING_CLOSED"
	AuditSignupClaimed    AuditKind = "SIGNUP_CLAIMED"
	AuditSignupWithdrawn  AuditKind = "SIGNUP_WITHDRAWN"
	AuditForcedAssignment AuditKind = "FORCED_ASSIGNMENT"
)

var validAuditKinds = map[AuditKind]bool{
	AuditPostingCreated:   true,
	AuditPostingUpdated:   true,
	AuditPostingClosed:    true,
	AuditSignupClaimed:    true,
	AuditSignupWithdrawn:  true,
	AuditForcedAssignment: true,
}

func (k AuditKind) String() string {
	return string(k)
}

func (k AuditKind) IsValid() bool {
	return validAuditKinds[k]
}

// AuditEvent is one entry in a posting's audit trail. It is written in the
// same transaction as the mutation it records and cascades with the posting.
type AuditEvent struct {
	id        uint
	sid       string
	postingID uint
	kind      AuditKind
	actorID   string
	officerID *string
	signupSID *string
	reason    *string
	summary   string
	createdAt time.Time
}

func NewAuditEvent(postingID uint, kind AuditKind, actorID, summary string) (*AuditEvent, error) {
	if postingID == 0 {
		return nil, fmt.Errorf("posting ID is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid audit kind: %s", kind)
	}
	if actorID == "" {
		return nil, fmt.Errorf("actor identity is required")
	}

	return &AuditEvent{
		postingID: postingID,
		kind:      kind,
		actorID:   actorID,
		summary:   summary,
		createdAt: time.Now().UTC(),
	}, nil
}

// NewForcedAssignmentAudit records a forced assignment. Supervisor and
// reason are mandatory here; this constructor is the only way to produce a
// FORCED_ASSIGNMENT entry.
func NewForcedAssignmentAudit(postingID uint, supervisorID, officerID, signupSID, reason string) (*AuditEvent, error) {
	if officerID == "" {
		return nil, fmt.Errorf("officer identity is required")
	}
	if reason == "" {
		return nil, fmt.Errorf("reason is required")
	}

	e, err := NewAuditEvent(postingID, AuditForcedAssignment, supervisorID,
		fmt.Sprintf("forced assignment of %s", officerID))
	if err != nil {
		return nil, err
	}

	e.officerID = &officerID
	e.signupSID = &signupSID
	e.reason = &reason
	return e, nil
}

func ReconstructAuditEvent(
	id uint,
	sid string,
	postingID uint,
	kind AuditKind,
	actorID string,
	officerID *string,
	signupSID *string,
	reason *string,
	summary string,
	createdAt time.Time,
) (*AuditEvent, error) {
	if id == 0 {
		return nil, fmt.Errorf("audit event ID cannot be zero")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid audit kind: %s", kind)
	}

	return &AuditEvent{
		id:        id,
		sid:       sid,
		postingID: postingID,
		kind:      kind,
		actorID:   actorID,
		officerID: officerID,
		signupSID: signupSID,
		reason:    reason,
		summary:   summary,
		createdAt: createdAt,
	}, nil
}

func (e *AuditEvent) ID() uint             { return e.id }
func (e *AuditEvent) SID() string          { return e.sid }
func (e *AuditEvent) PostingID() uint      { return e.postingID }
func (e *AuditEvent) Kind() AuditKind      { return e.kind }
func (e *AuditEvent) ActorID() string      { return e.actorID }
func (e *AuditEvent) OfficerID() *string   { return e.officerID }
func (e *AuditEvent) SignupSID() *string   { return e.signupSID }
func (e *AuditEvent) Reason() *string      { return e.reason }
func (e *AuditEvent) Summary() string      { return e.summary }
func (e *AuditEvent) CreatedAt() time.Time { return e.createdAt }

func (e *AuditEvent) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("audit event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("audit event ID cannot be zero")
	}
	e.id = id
	return nil
}

func (e *AuditEvent) SetSID(sid string) error {
	if e.sid != "" {
		return fmt.Errorf("audit event SID is already set")
	}
	if sid == "" {
		return fmt.Errorf("audit event SID cannot be empty")
	}
	e.sid = sid
	return nil
}

// AttachSignup links the entry to the signup it concerns.
func (e *AuditEvent) AttachSignup(officerID, signupSID string) {
	e.officerID = &officerID
	e.signupSID = &signupSID
}
