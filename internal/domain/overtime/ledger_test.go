package overtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func activeSignups(t *testing.T, n int) []*Signup {
	t.Helper()
	signups := make([]*Signup, 0, n)
	for i := 0; i < n; i++ {
		signups = append(signups, newPendingSignup(t, "off-"+string(rune('a'+i)), nil))
	}
	return signups
}

func TestNewSlotLedger_IgnoresWithdrawn(t *testing.T) {
	signups := activeSignups(t, 3)
	signups[1].Withdraw()

	ledger := NewSlotLedger(4, signups)

	assert.Equal(t, 2, ledger.ActiveCount())
	assert.Equal(t, 2, ledger.OpenSlots())
}

func TestSlotLedger_TryReserve_ExhaustsExactly(t *testing.T) {
	ledger := NewSlotLedger(2, nil)

	assert.True(t, ledger.TryReserve())
	assert.True(t, ledger.TryReserve())
	assert.False(t, ledger.TryReserve(), "third claim against capacity 2 must fail")
	assert.Equal(t, 0, ledger.OpenSlots())
	assert.Equal(t, 2, ledger.ActiveCount())
}

func TestSlotLedger_ReserveForced_IgnoresCapacity(t *testing.T) {
	ledger := NewSlotLedger(1, activeSignups(t, 1))

	assert.False(t, ledger.TryReserve())

	open := ledger.ReserveForced()
	assert.Equal(t, -1, open, "forced reservation over capacity reports negative open slots")
	assert.Equal(t, -1, ledger.OpenSlots())
	assert.Equal(t, 0, ledger.DisplayOpenSlots(), "display figure clamps at zero")
}

func TestSlotLedger_Release_ReopensSlot(t *testing.T) {
	ledger := NewSlotLedger(2, activeSignups(t, 2))

	assert.False(t, ledger.TryReserve())
	ledger.Release()
	assert.Equal(t, 1, ledger.OpenSlots())
	assert.True(t, ledger.TryReserve())
}

func TestSlotLedger_Release_FloorsAtZero(t *testing.T) {
	ledger := NewSlotLedger(3, nil)

	ledger.Release()
	assert.Equal(t, 0, ledger.ActiveCount())
	assert.Equal(t, 3, ledger.OpenSlots())
}

func TestSlotLedger_CapacityShrinkBelowClaims(t *testing.T) {
	// capacity edited down to 1 while 3 active claims exist
	ledger := NewSlotLedger(1, activeSignups(t, 3))

	assert.Equal(t, -2, ledger.OpenSlots())
	assert.Equal(t, 0, ledger.DisplayOpenSlots())
	assert.False(t, ledger.TryReserve())
}

func TestSlotLedger_WithdrawThenReclaimCycle(t *testing.T) {
	signups := activeSignups(t, 2)
	ledger := NewSlotLedger(2, signups)

	assert.False(t, ledger.TryReserve())

	if signups[0].Withdraw() {
		ledger.Release()
	}
	assert.True(t, ledger.TryReserve())

	// a second withdrawal of the same signup releases nothing
	if signups[0].Withdraw() {
		ledger.Release()
	}
	assert.False(t, ledger.TryReserve())
}
