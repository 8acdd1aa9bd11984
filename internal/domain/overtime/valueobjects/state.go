package valueobjects

import "fmt"

// PostingState is the posting lifecycle state. The transition is one-way:
// an open posting may be closed by a supervisor, and a closed posting stays
// closed. "Filled" is a derived condition (zero open slots), never stored.
type PostingState string

const (
	StateOpen   PostingState = "OPEN"
	StateClosed PostingState = "CLOSED"
)

var validPostingStates = map[PostingState]bool{
	StateOpen:   true,
	StateClosed: true,
}

func (s PostingState) String() string {
	return string(s)
}

func (s PostingState) IsValid() bool {
	return validPostingStates[s]
}

func (s PostingState) IsOpen() bool {
	return s == StateOpen
}

func (s PostingState) IsClosed() bool {
	return s == StateClosed
}

func NewPostingState(v string) (PostingState, error) {
	s := PostingState(v)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid posting state: %s", v)
	}
	return s, nil
}
