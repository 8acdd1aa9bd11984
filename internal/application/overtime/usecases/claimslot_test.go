package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	apperrors "dutywire/internal/shared/errors"
)

func TestClaimSlotUseCase_Execute_Success(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)

	result, err := env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID:  posting.SID(),
		OrgID:       "org-1",
		OfficerID:   "off-1",
		Rank:        strPtr("Sergeant"),
		BadgeNumber: strPtr("A050"),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.SignupPending, result.Signup.Status())
	assert.Equal(t, 2, result.OpenSlots)
	assert.NotEmpty(t, result.Signup.SID())

	audits := env.audits.Events()
	require.Len(t, audits, 1)
	assert.Equal(t, overtime.AuditSignupClaimed, audits[0].Kind())
	assert.Equal(t, "off-1", audits[0].ActorID())

	// not the last slot, so no fill notification
	assert.Empty(t, env.pub.PublishedTypes())
}

func TestClaimSlotUseCase_Execute_LastSlotPublishesFill(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 1, vo.PolicyFirstComeFirstServed, nil)

	result, err := env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		OfficerID:  "off-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.OpenSlots)
	assert.Equal(t, []string{overtime.EventSlotFilled}, env.pub.PublishedTypes())
}

func TestClaimSlotUseCase_Execute_NoSlotsAvailable(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	env.seedClaim(t, posting, "off-1")
	env.seedClaim(t, posting, "off-2")

	_, err := env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		OfficerID:  "off-3",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNoSlotsAvailableError(err))
}

func TestClaimSlotUseCase_Execute_DuplicateClaim(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)
	env.seedClaim(t, posting, "off-1")

	_, err := env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		OfficerID:  "off-1",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadySignedUpError(err))
}

func TestClaimSlotUseCase_Execute_ReclaimAfterWithdrawal(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 1, vo.PolicyFirstComeFirstServed, nil)
	signup := env.seedClaim(t, posting, "off-1")

	_, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(),
		CallerID:  "off-1",
		Role:      "officer",
	})
	require.NoError(t, err)

	// the withdrawn officer claims again through a fresh signup
	result, err := env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		OfficerID:  "off-1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, signup.SID(), result.Signup.SID())
	assert.Equal(t, 0, result.OpenSlots)
}

func TestClaimSlotUseCase_Execute_ClosedPosting(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	posting.Close()
	require.NoError(t, env.postings.Update(context.Background(), posting))

	_, err := env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		OfficerID:  "off-1",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsPostingClosedError(err))
}

func TestClaimSlotUseCase_Execute_DeadlinePassed(t *testing.T) {
	env := newTestEnv()
	deadline := time.Now().UTC().Add(-time.Hour)
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, &deadline)

	_, err := env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		OfficerID:  "off-1",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsDeadlinePassedError(err))
}

func TestClaimSlotUseCase_Execute_NotFound(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)

	tests := []struct {
		name string
		cmd  ClaimSlotCommand
	}{
		{"unknown posting", ClaimSlotCommand{PostingSID: "otp_missing", OrgID: "org-1", OfficerID: "off-1"}},
		{"foreign org", ClaimSlotCommand{PostingSID: posting.SID(), OrgID: "org-2", OfficerID: "off-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.claimUC().Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsNotFoundError(err))
		})
	}
}

func TestClaimSlotUseCase_Execute_ConcurrentClaimsNeverOversubscribe(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	uc := env.claimUC()

	const claimers = 8
	errs := make([]error, claimers)
	var wg sync.WaitGroup
	wg.Add(claimers)
	for i := 0; i < claimers; i++ {
		go func(n int) {
			defer wg.Done()
			officer := string(rune('a' + n))
			_, errs[n] = uc.Execute(context.Background(), ClaimSlotCommand{
				PostingSID: posting.SID(),
				OrgID:      "org-1",
				OfficerID:  "off-" + officer,
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.True(t, apperrors.IsNoSlotsAvailableError(err), "loser error: %v", err)
		}
	}
	assert.Equal(t, 2, won, "exactly capacity claims may succeed")

	active, err := env.signups.ListActiveByPosting(context.Background(), posting.ID())
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
