package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dutywire/internal/application/overtime/testutil"
	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	"dutywire/internal/shared/id"
	"dutywire/internal/shared/logger"
)

const testLockWait = 2 * time.Second

type testEnv struct {
	postings *testutil.MockPostingRepository
	signups  *testutil.MockSignupRepository
	audits   *testutil.MockAuditEventRepository
	tx       *testutil.MockTransactor
	locker   *testutil.MockPostingLocker
	pub      *testutil.MockEventPublisher
	log      logger.Interface
}

func newTestEnv() *testEnv {
	return &testEnv{
		postings: testutil.NewMockPostingRepository(),
		signups:  testutil.NewMockSignupRepository(),
		audits:   testutil.NewMockAuditEventRepository(),
		tx:       testutil.NewMockTransactor(),
		locker:   testutil.NewMockPostingLocker(),
		pub:      testutil.NewMockEventPublisher(),
		log:      logger.NewLogger(),
	}
}

func (e *testEnv) claimUC() *ClaimSlotUseCase {
	return NewClaimSlotUseCase(e.postings, e.signups, e.audits, e.tx, e.locker,
		testLockWait, overtime.DefaultRankTable(), e.pub, e.log)
}

func (e *testEnv) withdrawUC() *WithdrawSlotUseCase {
	return NewWithdrawSlotUseCase(e.postings, e.signups, e.audits, e.tx, e.locker,
		testLockWait, e.pub, e.log)
}

func (e *testEnv) forceUC() *ForceAssignUseCase {
	return NewForceAssignUseCase(e.postings, e.signups, e.audits, e.tx, e.locker,
		testLockWait, overtime.DefaultRankTable(), e.pub, e.log)
}

func (e *testEnv) createUC() *CreatePostingUseCase {
	return NewCreatePostingUseCase(e.postings, e.audits, e.tx, e.pub, e.log)
}

func (e *testEnv) updateUC() *UpdatePostingUseCase {
	return NewUpdatePostingUseCase(e.postings, e.signups, e.audits, e.tx, e.locker,
		testLockWait, e.log)
}

func (e *testEnv) closeUC() *ClosePostingUseCase {
	return NewClosePostingUseCase(e.postings, e.audits, e.tx, e.locker,
		testLockWait, e.pub, e.log)
}

func (e *testEnv) deleteUC() *DeletePostingUseCase {
	return NewDeletePostingUseCase(e.postings, e.signups, e.audits, e.tx, e.locker,
		testLockWait, e.log)
}

func (e *testEnv) getUC() *GetPostingUseCase {
	return NewGetPostingUseCase(e.postings, e.signups, e.log)
}

func (e *testEnv) listUC() *ListPostingsUseCase {
	return NewListPostingsUseCase(e.postings, e.signups, e.log)
}

func (e *testEnv) auditUC() *GetAuditTrailUseCase {
	return NewGetAuditTrailUseCase(e.postings, e.audits, e.log)
}

// seedPosting stores an open posting directly through the repository.
func (e *testEnv) seedPosting(t *testing.T, orgID string, capacity int, policy vo.OrderingPolicy, deadline *time.Time) *overtime.Posting {
	t.Helper()
	start := time.Now().UTC().Add(24 * time.Hour)
	p, err := overtime.NewPosting(
		orgID, "River crossing detail", nil, vo.ScenarioPatrolShortShift,
		start, start.Add(8*time.Hour), capacity, policy, nil, deadline, "sup-1",
	)
	require.NoError(t, err)
	require.NoError(t, p.SetSID(id.MustGenerate(16)))
	require.NoError(t, e.postings.Save(context.Background(), p))
	return p
}

func (e *testEnv) seedClaim(t *testing.T, p *overtime.Posting, officerID string) *overtime.Signup {
	t.Helper()
	result, err := e.claimUC().Execute(context.Background(), ClaimSlotCommand{
		PostingSID: p.SID(),
		OrgID:      p.OrgID(),
		OfficerID:  officerID,
	})
	require.NoError(t, err)
	return result.Signup
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
