package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	apperrors "dutywire/internal/shared/errors"
)

func TestForceAssignUseCase_Execute_Success(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)

	result, err := env.forceUC().Execute(context.Background(), ForceAssignCommand{
		PostingSID:   posting.SID(),
		OrgID:        "org-1",
		SupervisorID: "sup-1",
		OfficerID:    "off-1",
		Reason:       "mandatory coverage",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.SignupForced, result.Signup.Status())
	assert.Equal(t, 1, result.OpenSlots)
	require.NotNil(t, result.Signup.ForcedBy())
	assert.Equal(t, "sup-1", *result.Signup.ForcedBy())

	audits := env.audits.Events()
	require.Len(t, audits, 1)
	assert.Equal(t, overtime.AuditForcedAssignment, audits[0].Kind())
	assert.Equal(t, "sup-1", audits[0].ActorID())
	require.NotNil(t, audits[0].Reason())
	assert.Equal(t, "mandatory coverage", *audits[0].Reason())
	require.NotNil(t, audits[0].OfficerID())
	assert.Equal(t, "off-1", *audits[0].OfficerID())

	assert.Equal(t, []string{overtime.EventForcedAssignment}, env.pub.PublishedTypes())
}

func TestForceAssignUseCase_Execute_OverCapacityGoesNegative(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 1, vo.PolicyFirstComeFirstServed, nil)
	env.seedClaim(t, posting, "off-1")

	result, err := env.forceUC().Execute(context.Background(), ForceAssignCommand{
		PostingSID:   posting.SID(),
		OrgID:        "org-1",
		SupervisorID: "sup-1",
		OfficerID:    "off-2",
		Reason:       "event staffing order",
	})

	require.NoError(t, err)
	assert.Equal(t, -1, result.OpenSlots)

	active, err := env.signups.ListActiveByPosting(context.Background(), posting.ID())
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestForceAssignUseCase_Execute_MissingReason(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)

	_, err := env.forceUC().Execute(context.Background(), ForceAssignCommand{
		PostingSID:   posting.SID(),
		OrgID:        "org-1",
		SupervisorID: "sup-1",
		OfficerID:    "off-1",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, env.audits.Events(), "no signup means no audit entry")
}

func TestForceAssignUseCase_Execute_BypassesDeadline(t *testing.T) {
	env := newTestEnv()
	deadline := time.Now().UTC().Add(-time.Hour)
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, &deadline)

	result, err := env.forceUC().Execute(context.Background(), ForceAssignCommand{
		PostingSID:   posting.SID(),
		OrgID:        "org-1",
		SupervisorID: "sup-1",
		OfficerID:    "off-1",
		Reason:       "late coverage order",
	})

	require.NoError(t, err)
	assert.True(t, result.Signup.Status().IsForced())
}

func TestForceAssignUseCase_Execute_ClosedPostingRejects(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 2, vo.PolicyFirstComeFirstServed, nil)
	posting.Close()
	require.NoError(t, env.postings.Update(context.Background(), posting))

	_, err := env.forceUC().Execute(context.Background(), ForceAssignCommand{
		PostingSID:   posting.SID(),
		OrgID:        "org-1",
		SupervisorID: "sup-1",
		OfficerID:    "off-1",
		Reason:       "coverage",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsPostingClosedError(err))
}

func TestForceAssignUseCase_Execute_DuplicateOfficer(t *testing.T) {
	env := newTestEnv()
	posting := env.seedPosting(t, "org-1", 3, vo.PolicyFirstComeFirstServed, nil)
	env.seedClaim(t, posting, "off-1")

	_, err := env.forceUC().Execute(context.Background(), ForceAssignCommand{
		PostingSID:   posting.SID(),
		OrgID:        "org-1",
		SupervisorID: "sup-1",
		OfficerID:    "off-1",
		Reason:       "coverage",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadySignedUpError(err))
}
