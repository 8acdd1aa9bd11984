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

func TestWithdrawSlotUseCase_Execute_OwnSignup(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	signup := env.seedClaim(t, posting, "off-1")

	result, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(),
		CallerID:  "off-1",
		Role:      authorization.RoleOfficer,
	})

	require.NoError(t, err)
	assert.True(t, result.Released)
	assert.Equal(t, vo.SignupWithdrawn, result.Signup.Status())
	assert.Equal(t, 2, result.OpenSlots)

	kinds := auditKinds(env)
	assert.Contains(t, kinds, overtime.AuditSignupWithdrawn)
	assert.Equal(t, []string{overtime.EventSignupWithdrawn}, env.pub.PublishedTypes())
}

func TestWithdrawSlotUseCase_Execute_RepeatWithdrawalIsNoOp(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	signup := env.seedClaim(t, posting, "off-1")

	first, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(), CallerID: "off-1", Role: authorization.RoleOfficer,
	})
	require.NoError(t, err)
	require.True(t, first.Released)
	auditsAfterFirst := len(env.audits.Events())

	second, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(), CallerID: "off-1", Role: authorization.RoleOfficer,
	})
	require.NoError(t, err)
	assert.False(t, second.Released)
	assert.Equal(t, 2, second.OpenSlots)
	assert.Len(t, env.audits.Events(), auditsAfterFirst, "no-op withdrawal writes no audit entry")
}

func TestWithdrawSlotUseCase_Execute_ForbiddenForOtherOfficer(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	signup := env.seedClaim(t, posting, "off-1")

	_, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(),
		CallerID:  "off-2",
		Role:      authorization.RoleOfficer,
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)

	assert.True(t, signup.IsActive(), "signup must stay active")
}

func TestWithdrawSlotUseCase_Execute_SupervisorMayWithdrawAnyone(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	signup := env.seedClaim(t, posting, "off-1")

	result, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(),
		CallerID:  "sup-1",
		Role:      authorization.RoleSupervisor,
	})

	require.NoError(t, err)
	assert.True(t, result.Released)
}

func TestWithdrawSlotUseCase_Execute_SucceedsOnClosedPosting(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	signup := env.seedClaim(t, posting, "off-1")

	posting.Close()
	require.NoError(t, env.postings.Update(context.Background(), posting))

	result, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: signup.SID(),
		CallerID:  "off-1",
		Role:      authorization.RoleOfficer,
	})

	require.NoError(t, err)
	assert.True(t, result.Released)
	assert.Equal(t, vo.SignupWithdrawn, result.Signup.Status())
	assert.Equal(t, 2, result.OpenSlots, "slot is released even though the posting stays closed")

	kinds := auditKinds(env)
	assert.Contains(t, kinds, overtime.AuditSignupWithdrawn)
}

func TestWithdrawSlotUseCase_Execute_UnknownSignup(t *testing.T) {
	env := newTestEnv()

	_, err := env.withdrawUC().Execute(context.Background(), WithdrawSlotCommand{
		SignupSID: "ots_missing",
		CallerID:  "off-1",
		Role:      authorization.RoleOfficer,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func auditKinds(env *testEnv) []overtime.AuditKind {
	events := env.audits.Events()
	kinds := make([]overtime.AuditKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	return kinds
}
