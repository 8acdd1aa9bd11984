package overtime

import "context"

// StateFilter narrows posting listings by lifecycle state.
type StateFilter string

const (
	FilterOpen   StateFilter = "open"
	FilterClosed StateFilter = "closed"
	FilterAll    StateFilter = "all"
)

func (f StateFilter) IsValid() bool {
	switch f {
	case FilterOpen, FilterClosed, FilterAll:
		return true
	default:
		return false
	}
}

// PostingRepository persists postings. GetBySIDForUpdate must take a row
// lock when called inside a transaction so the read-count-then-write
// sequence cannot race a concurrent writer.
type PostingRepository interface {
	Save(ctx context.Context, posting *Posting) error
	Update(ctx context.Context, posting *Posting) error
	Delete(ctx context.Context, postingID uint) error
	GetByID(ctx context.Context, id uint) (*Posting, error)
	GetBySID(ctx context.Context, sid string) (*Posting, error)
	GetBySIDForUpdate(ctx context.Context, sid string) (*Posting, error)
	List(ctx context.Context, orgID string, filter StateFilter) ([]*Posting, int64, error)
}

// SignupRepository persists signups. Signups are owned by their posting and
// never outlive it.
type SignupRepository interface {
	Save(ctx context.Context, signup *Signup) error
	Update(ctx context.Context, signup *Signup) error
	GetBySID(ctx context.Context, sid string) (*Signup, error)
	ListByPosting(ctx context.Context, postingID uint) ([]*Signup, error)
	ListActiveByPosting(ctx context.Context, postingID uint) ([]*Signup, error)
	CountActiveByPostings(ctx context.Context, postingIDs []uint) (map[uint]int, error)
	DeleteByPosting(ctx context.Context, postingID uint) error
}

// AuditEventRepository persists the per-posting audit trail.
type AuditEventRepository interface {
	Save(ctx context.Context, event *AuditEvent) error
	ListByPosting(ctx context.Context, postingID uint) ([]*AuditEvent, error)
	DeleteByPosting(ctx context.Context, postingID uint) error
}
