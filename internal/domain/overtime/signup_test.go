package overtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "dutywire/internal/domain/overtime/valueobjects"
)

func newPendingSignup(t *testing.T, officerID string, badge *string) *Signup {
	t.Helper()
	s, err := NewSignup(1, "org-1", officerID, strPtr("Sergeant"), badge,
		DefaultRankTable(), time.Now())
	require.NoError(t, err)
	return s
}

func TestNewSignup_CapturesOrderingKeysAtSubmission(t *testing.T) {
	submitted := time.Date(2026, 9, 1, 8, 30, 0, 0, time.FixedZone("CST", -6*3600))

	s, err := NewSignup(1, "org-1", "off-1", strPtr("Sergeant"), strPtr("A050"),
		DefaultRankTable(), submitted)
	require.NoError(t, err)

	assert.Equal(t, vo.SignupPending, s.Status())
	assert.Equal(t, 3, s.RankPriority())
	assert.Equal(t, "A050", s.TieBreakerKey())
	assert.Equal(t, submitted.UTC(), s.SubmittedAt())
	assert.Equal(t, time.UTC, s.SubmittedAt().Location())
	assert.Nil(t, s.ForcedBy())
	assert.Nil(t, s.ForcedReason())
}

func TestNewSignup_TieBreakFallsBackToOfficerID(t *testing.T) {
	s := newPendingSignup(t, "off-9", nil)
	assert.Equal(t, "off-9", s.TieBreakerKey())

	empty := ""
	s2, err := NewSignup(1, "org-1", "off-10", nil, &empty,
		DefaultRankTable(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "off-10", s2.TieBreakerKey())
}

func TestNewSignup_Validation(t *testing.T) {
	tests := []struct {
		name      string
		postingID uint
		orgID     string
		officerID string
		wantErr   string
	}{
		{"missing posting", 0, "org-1", "off-1", "posting ID is required"},
		{"missing org", 1, "", "off-1", "org ID is required"},
		{"missing officer", 1, "org-1", "", "officer identity is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSignup(tt.postingID, tt.orgID, tt.officerID, nil, nil,
				DefaultRankTable(), time.Now())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewForcedSignup_RequiresSupervisorAndReason(t *testing.T) {
	_, err := NewForcedSignup(1, "org-1", "off-1", nil, nil, "", "short shift",
		DefaultRankTable(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supervisor identity is required")

	_, err = NewForcedSignup(1, "org-1", "off-1", nil, nil, "sup-1", "",
		DefaultRankTable(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason is required")

	s, err := NewForcedSignup(1, "org-1", "off-1", nil, nil, "sup-1", "short shift",
		DefaultRankTable(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, vo.SignupForced, s.Status())
	require.NotNil(t, s.ForcedBy())
	assert.Equal(t, "sup-1", *s.ForcedBy())
	require.NotNil(t, s.ForcedReason())
	assert.Equal(t, "short shift", *s.ForcedReason())
	assert.True(t, s.IsActive())
}

func TestReconstructSignup_ForcedRequiresAuditFields(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructSignup(3, "ots_x", 1, "org-1", "off-1",
		vo.SignupForced, nil, PriorityUnknownRank, nil, "off-1",
		now, nil, nil, now, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing supervisor or reason")

	sup, reason := "sup-1", "coverage gap"
	s, err := ReconstructSignup(3, "ots_x", 1, "org-1", "off-1",
		vo.SignupForced, nil, PriorityUnknownRank, nil, "off-1",
		now, &sup, &reason, now, now)
	require.NoError(t, err)
	assert.True(t, s.Status().IsForced())
}

func TestSignup_Withdraw_ReleasesExactlyOnce(t *testing.T) {
	s := newPendingSignup(t, "off-1", strPtr("A050"))

	assert.True(t, s.Withdraw())
	assert.Equal(t, vo.SignupWithdrawn, s.Status())
	assert.False(t, s.IsActive())

	// retried withdrawal must not report a second release
	assert.False(t, s.Withdraw())
	assert.Equal(t, vo.SignupWithdrawn, s.Status())
}

func TestSignupStatus_IsActive(t *testing.T) {
	assert.True(t, vo.SignupPending.IsActive())
	assert.True(t, vo.SignupConfirmed.IsActive())
	assert.True(t, vo.SignupForced.IsActive())
	assert.False(t, vo.SignupWithdrawn.IsActive())
}
