package valueobjects

import "fmt"

// SignupStatus is the lifecycle state of one officer's claim. Pending,
// confirmed, and forced signups all hold a slot; withdrawn signups do not.
type SignupStatus string

const (
	SignupPending   SignupStatus = "PENDING"
	SignupConfirmed SignupStatus = "CONFIRMED"
	SignupWithdrawn SignupStatus = "WITHDRAWN"
	SignupForced    SignupStatus = "FORCED"
)

var validSignupStatuses = map[SignupStatus]bool{
	SignupPending:   true,
	SignupConfirmed: true,
	SignupWithdrawn: true,
	SignupForced:    true,
}

func (s SignupStatus) String() string {
	return string(s)
}

func (s SignupStatus) IsValid() bool {
	return validSignupStatuses[s]
}

// IsActive reports whether this signup currently occupies a slot.
func (s SignupStatus) IsActive() bool {
	switch s {
	case SignupPending, SignupConfirmed, SignupForced:
		return true
	default:
		return false
	}
}

func (s SignupStatus) IsForced() bool {
	return s == SignupForced
}

func (s SignupStatus) IsWithdrawn() bool {
	return s == SignupWithdrawn
}

func NewSignupStatus(v string) (SignupStatus, error) {
	s := SignupStatus(v)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid signup status: %s", v)
	}
	return s, nil
}
