package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	"dutywire/internal/shared/authorization"
	apperrors "dutywire/internal/shared/errors"
)

func TestClosePostingUseCase_Execute_BlocksNewClaims(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)
	signup := env.seedClaim(t, posting, "off-1")

	result, err := env.closeUC().Execute(context.Background(), ClosePostingCommand{
		PostingSID: posting.SID(), OrgID: "org-1", ClosedBy: "sup-1",
	})
	require.NoError(t, err)
	assert.True(t, result.Closed)
	assert.Equal(t, []string{overtime.EventPostingClosed}, env.pub.PublishedTypes())

	// new claims and forced assignments are rejected now
	_, err = env.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: posting.SID(), OrgID: "org-1", OfficerID: "off-2",
	})
	assert.True(t, apperrors.IsPostingClosedError(err))

	_, err = env.forceUC().Execute(context.Background(), ForceAssignCommand{
		PostingSID: posting.SID(), OrgID: "org-1",
		SupervisorID: "sup-1", OfficerID: "off-3", Reason: "coverage",
	})
	assert.True(t, apperrors.IsPostingClosedError(err))

	// a pre-existing signup can still be relinquished
	withdrawn, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(), CallerID: "off-1", Role: authorization.RoleOfficer,
	})
	require.NoError(t, err)
	assert.True(t, withdrawn.Released)
}

func TestClosePostingUseCase_Execute_RepeatCloseIsNoOp(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)

	first, err := env.closeUC().Execute(context.Background(), ClosePostingCommand{
		PostingSID: posting.SID(), OrgID: "org-1", ClosedBy: "sup-1",
	})
	require.NoError(t, err)
	require.True(t, first.Closed)
	auditsAfterFirst := len(env.audits.Events())
	eventsAfterFirst := len(env.pub.PublishedTypes())

	second, err := env.closeUC().Execute(context.Background(), ClosePostingCommand{
		PostingSID: posting.SID(), OrgID: "org-1", ClosedBy: "sup-1",
	})
	require.NoError(t, err)
	assert.False(t, second.Closed)
	assert.Len(t, env.audits.Events(), auditsAfterFirst)
	assert.Len(t, env.pub.PublishedTypes(), eventsAfterFirst)
}

func TestUpdatePostingUseCase_Execute_PolicyFrozenAfterSignup(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)
	env.seedClaim(t, posting, "off-1")

	_, err := env.updateUC().Execute(context.Background(), UpdatePostingCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		ActorID:    "sup-1",
		Policy:     strPtr(vo.PolicySeniority.String()),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestUpdatePostingUseCase_Execute_CapacityShrinkReportsNegative(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)
	env.seedClaim(t, posting, "off-1")
	env.seedClaim(t, posting, "off-2")

	result, err := env.updateUC().Execute(context.Background(), UpdatePostingCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		ActorID:    "sup-1",
		Capacity:   intPtr(1),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Posting.Capacity())
	assert.Equal(t, -1, result.OpenSlots, "existing claims stay, over-capacity is visible")
}

func TestUpdatePostingUseCase_Execute_ClosedPostingRejects(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)
	posting.Close()
	require.NoError(t, env.postings.Update(context.Background(), posting))

	_, err := env.updateUC().Execute(context.Background(), UpdatePostingCommand{
		PostingSID: posting.SID(),
		OrgID:      "org-1",
		ActorID:    "sup-1",
		Title:      strPtr("Renamed"),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsPostingClosedError(err))
}

func TestDeletePostingUseCase_Execute_CascadesSignupsAndAudit(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)
	env.seedClaim(t, posting, "off-1")
	env.seedClaim(t, posting, "off-2")

	err := env.deleteUC().Execute(context.Background(), DeletePostingCommand{
		PostingSID: posting.SID(), OrgID: "org-1", ActorID: "sup-1",
	})
	require.NoError(t, err)

	gone, err := env.postings.GetBySID(context.Background(), posting.SID())
	require.NoError(t, err)
	assert.Nil(t, gone)

	signups, err := env.signups.ListByPosting(context.Background(), posting.ID())
	require.NoError(t, err)
	assert.Empty(t, signups)

	audits, err := env.audits.ListByPosting(context.Background(), posting.ID())
	require.NoError(t, err)
	assert.Empty(t, audits)
}

func TestDeletePostingUseCase_Execute_NotFound(t *testing.T) {
	env := newTestEnv()

	err := env.deleteUC().Execute(context.Background(), DeletePostingCommand{
		PostingSID: "otp_missing", OrgID: "org-1", ActorID: "sup-1",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}
