// Package testutil provides in-memory fakes for testing the overtime
// application layer.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/domain/shared/events"
	apperrors "dutywire/internal/shared/errors"
)

// MockPostingRepository is an in-memory overtime.PostingRepository.
type MockPostingRepository struct {
	mu        sync.RWMutex
	byID      map[uint]*overtime.Posting
	bySID     map[string]*overtime.Posting
	nextID    uint
	saveErr   error
	getErr    error
	listErr   error
	updateErr error
}

func NewMockPostingRepository() *MockPostingRepository {
	return &MockPostingRepository{
		byID:  make(map[uint]*overtime.Posting),
		bySID: make(map[string]*overtime.Posting),
	}
}

func (m *MockPostingRepository) SetSaveError(err error)   { m.saveErr = err }
func (m *MockPostingRepository) SetGetError(err error)    { m.getErr = err }
func (m *MockPostingRepository) SetListError(err error)   { m.listErr = err }
func (m *MockPostingRepository) SetUpdateError(err error) { m.updateErr = err }

func (m *MockPostingRepository) Save(ctx context.Context, posting *overtime.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if posting.ID() == 0 {
		m.nextID++
		if err := posting.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.byID[posting.ID()] = posting
	m.bySID[posting.SID()] = posting
	return nil
}

func (m *MockPostingRepository) Update(ctx context.Context, posting *overtime.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.byID[posting.ID()] = posting
	m.bySID[posting.SID()] = posting
	return nil
}

func (m *MockPostingRepository) Delete(ctx context.Context, postingID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[postingID]; ok {
		delete(m.bySID, p.SID())
		delete(m.byID, postingID)
	}
	return nil
}

func (m *MockPostingRepository) GetByID(ctx context.Context, id uint) (*overtime.Posting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byID[id], nil
}

func (m *MockPostingRepository) GetBySID(ctx context.Context, sid string) (*overtime.Posting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bySID[sid], nil
}

func (m *MockPostingRepository) GetBySIDForUpdate(ctx context.Context, sid string) (*overtime.Posting, error) {
	return m.GetBySID(ctx, sid)
}

func (m *MockPostingRepository) List(ctx context.Context, orgID string, filter overtime.StateFilter) ([]*overtime.Posting, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []*overtime.Posting
	for _, p := range m.byID {
		if p.OrgID() != orgID {
			continue
		}
		switch filter {
		case overtime.FilterOpen:
			if !p.State().IsOpen() {
				continue
			}
		case overtime.FilterClosed:
			if !p.State().IsClosed() {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, int64(len(out)), nil
}

// MockSignupRepository is an in-memory overtime.SignupRepository.
type MockSignupRepository struct {
	mu      sync.RWMutex
	byID    map[uint]*overtime.Signup
	bySID   map[string]*overtime.Signup
	nextID  uint
	saveErr error
	getErr  error
	listErr error
}

func NewMockSignupRepository() *MockSignupRepository {
	return &MockSignupRepository{
		byID:  make(map[uint]*overtime.Signup),
		bySID: make(map[string]*overtime.Signup),
	}
}

func (m *MockSignupRepository) SetSaveError(err error) { m.saveErr = err }
func (m *MockSignupRepository) SetGetError(err error)  { m.getErr = err }
func (m *MockSignupRepository) SetListError(err error) { m.listErr = err }

func (m *MockSignupRepository) Save(ctx context.Context, signup *overtime.Signup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if signup.ID() == 0 {
		m.nextID++
		if err := signup.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.byID[signup.ID()] = signup
	m.bySID[signup.SID()] = signup
	return nil
}

func (m *MockSignupRepository) Update(ctx context.Context, signup *overtime.Signup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[signup.ID()] = signup
	m.bySID[signup.SID()] = signup
	return nil
}

func (m *MockSignupRepository) GetBySID(ctx context.Context, sid string) (*overtime.Signup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bySID[sid], nil
}

func (m *MockSignupRepository) ListByPosting(ctx context.Context, postingID uint) ([]*overtime.Signup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listLocked(postingID, false), nil
}

func (m *MockSignupRepository) ListActiveByPosting(ctx context.Context, postingID uint) ([]*overtime.Signup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listLocked(postingID, true), nil
}

func (m *MockSignupRepository) CountActiveByPostings(ctx context.Context, postingIDs []uint) (map[uint]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	counts := make(map[uint]int, len(postingIDs))
	for _, id := range postingIDs {
		counts[id] = len(m.listLocked(id, true))
	}
	return counts, nil
}

func (m *MockSignupRepository) DeleteByPosting(ctx context.Context, postingID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.byID {
		if s.PostingID() == postingID {
			delete(m.bySID, s.SID())
			delete(m.byID, id)
		}
	}
	return nil
}

func (m *MockSignupRepository) listLocked(postingID uint, activeOnly bool) []*overtime.Signup {
	var out []*overtime.Signup
	for _, s := range m.byID {
		if s.PostingID() != postingID {
			continue
		}
		if activeOnly && !s.IsActive() {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// MockAuditEventRepository is an in-memory overtime.AuditEventRepository.
type MockAuditEventRepository struct {
	mu      sync.RWMutex
	events  []*overtime.AuditEvent
	nextID  uint
	saveErr error
}

func NewMockAuditEventRepository() *MockAuditEventRepository {
	return &MockAuditEventRepository{}
}

func (m *MockAuditEventRepository) SetSaveError(err error) { m.saveErr = err }

func (m *MockAuditEventRepository) Save(ctx context.Context, event *overtime.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if event.ID() == 0 {
		m.nextID++
		if err := event.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockAuditEventRepository) ListByPosting(ctx context.Context, postingID uint) ([]*overtime.AuditEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*overtime.AuditEvent
	for _, e := range m.events {
		if e.PostingID() == postingID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Events returns every recorded audit event.
func (m *MockAuditEventRepository) Events() []*overtime.AuditEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*overtime.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockAuditEventRepository) DeleteByPosting(ctx context.Context, postingID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if e.PostingID() != postingID {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// MockTransactor runs the function directly; the mock repositories supply
// their own locking.
type MockTransactor struct {
	beginErr error
}

func NewMockTransactor() *MockTransactor { return &MockTransactor{} }

func (m *MockTransactor) SetBeginError(err error) { m.beginErr = err }

func (m *MockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(ctx)
}

// MockPostingLocker serializes callers per key with real mutexes so
// concurrency tests exercise the same interleaving guarantees as the
// production locker.
type MockPostingLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMockPostingLocker() *MockPostingLocker {
	return &MockPostingLocker{locks: make(map[string]*sync.Mutex)}
}

func (m *MockPostingLocker) Acquire(ctx context.Context, postingSID string, wait time.Duration) (func(), error) {
	m.mu.Lock()
	lock, ok := m.locks[postingSID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[postingSID] = lock
	}
	m.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		lock.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return lock.Unlock, nil
	case <-time.After(wait):
		go func() {
			<-acquired
			lock.Unlock()
		}()
		return nil, apperrors.NewContentionError("posting is busy, try again")
	case <-ctx.Done():
		go func() {
			<-acquired
			lock.Unlock()
		}()
		return nil, ctx.Err()
	}
}

// MockEventPublisher records published events for assertions.
type MockEventPublisher struct {
	mu         sync.Mutex
	events     []events.DomainEvent
	publishErr error
}

func NewMockEventPublisher() *MockEventPublisher { return &MockEventPublisher{} }

func (m *MockEventPublisher) SetPublishError(err error) { m.publishErr = err }

func (m *MockEventPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockEventPublisher) PublishAll(batch []events.DomainEvent) error {
	for _, e := range batch {
		if err := m.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

// Published returns the recorded events.
func (m *MockEventPublisher) Published() []events.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.DomainEvent, len(m.events))
	copy(out, m.events)
	return out
}

// PublishedTypes returns the event types in publish order.
func (m *MockEventPublisher) PublishedTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, e := range m.events {
		types[i] = e.GetEventType()
	}
	return types
}
