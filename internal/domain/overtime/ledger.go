package overtime

// SlotLedger accounts capacity against the active signup set of one posting.
// It is built from an authoritative snapshot read inside the same serialized
// transaction that writes the signup, so reserve-or-fail cannot interleave
// with another writer. The ledger itself carries no persistence: open slots
// are always recomputed from the live signups, never stored.
type SlotLedger struct {
	capacity int
	active   int
}

// NewSlotLedger builds a ledger from the posting's capacity and its current
// signups. Withdrawn signups do not count against capacity.
func NewSlotLedger(capacity int, signups []*Signup) *SlotLedger {
	active := 0
	for _, s := range signups {
		if s.IsActive() {
			active++
		}
	}
	return &SlotLedger{capacity: capacity, active: active}
}

// OpenSlots reports remaining capacity. Forced assignments can drive this
// negative; the value is reported as-is so over-capacity stays observable.
func (l *SlotLedger) OpenSlots() int {
	return l.capacity - l.active
}

// DisplayOpenSlots clamps the open-slot figure at zero for member-facing
// rendering.
func (l *SlotLedger) DisplayOpenSlots() int {
	if open := l.OpenSlots(); open > 0 {
		return open
	}
	return 0
}

// ActiveCount reports how many signups currently hold a slot.
func (l *SlotLedger) ActiveCount() int {
	return l.active
}

// TryReserve is the check-and-decrement chokepoint for member claims: it
// reserves a slot when one is open and fails otherwise.
func (l *SlotLedger) TryReserve() bool {
	if l.active >= l.capacity {
		return false
	}
	l.active++
	return true
}

// ReserveForced reserves a slot regardless of capacity. Capacity is advisory
// under supervisor override; the returned open-slot figure may be negative.
func (l *SlotLedger) ReserveForced() int {
	l.active++
	return l.OpenSlots()
}

// Release returns one slot. Idempotency per signup is enforced by
// Signup.Withdraw, which reports a release at most once.
func (l *SlotLedger) Release() {
	if l.active > 0 {
		l.active--
	}
}
