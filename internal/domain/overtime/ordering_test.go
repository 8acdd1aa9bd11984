package overtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "dutywire/internal/domain/overtime/valueobjects"
)

func rankedSignup(t *testing.T, officerID string, rank *string, badge *string, submitted time.Time) *Signup {
	t.Helper()
	now := time.Now().UTC()
	s, err := ReconstructSignup(
		1, "ots_"+officerID, 1, "org-1", officerID,
		vo.SignupPending,
		rank, DefaultRankTable().PriorityFor(rank),
		badge, tieBreakerKey(badge, officerID),
		submitted, nil, nil, now, now,
	)
	require.NoError(t, err)
	return s
}

func officerOrder(signups []*Signup) []string {
	out := make([]string, len(signups))
	for i, s := range signups {
		out[i] = s.OfficerID()
	}
	return out
}

func TestRankSignups_FirstComeFirstServed(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	late := rankedSignup(t, "off-late", nil, nil, base.Add(2*time.Hour))
	early := rankedSignup(t, "off-early", nil, nil, base)
	mid := rankedSignup(t, "off-mid", nil, nil, base.Add(time.Hour))

	ranked := RankSignups(vo.PolicyFirstComeFirstServed, []*Signup{late, early, mid})

	assert.Equal(t, []string{"off-early", "off-mid", "off-late"}, officerOrder(ranked))
}

func TestRankSignups_FCFS_ZeroTimestampSortsLast(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	missing := rankedSignup(t, "off-missing", nil, nil, time.Time{})
	timed := rankedSignup(t, "off-timed", nil, nil, base)

	ranked := RankSignups(vo.PolicyFirstComeFirstServed, []*Signup{missing, timed})

	assert.Equal(t, []string{"off-timed", "off-missing"}, officerOrder(ranked))
}

func TestRankSignups_FCFS_SameInstantTieBreaksOnBadge(t *testing.T) {
	at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	b := rankedSignup(t, "off-b", nil, strPtr("A100"), at)
	a := rankedSignup(t, "off-a", nil, strPtr("A050"), at)

	ranked := RankSignups(vo.PolicyFirstComeFirstServed, []*Signup{b, a})

	assert.Equal(t, []string{"off-a", "off-b"}, officerOrder(ranked))
}

func TestRankSignups_Seniority(t *testing.T) {
	at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	officer := rankedSignup(t, "off-plain", strPtr("Officer"), strPtr("B200"), at)
	captain := rankedSignup(t, "off-capt", strPtr("Captain"), strPtr("C300"), at.Add(time.Hour))
	sergeant := rankedSignup(t, "off-serg", strPtr("Sergeant"), strPtr("A100"), at.Add(2*time.Hour))
	unknown := rankedSignup(t, "off-none", nil, strPtr("D400"), at)

	ranked := RankSignups(vo.PolicySeniority, []*Signup{officer, unknown, sergeant, captain})

	// rank priority ascending, submission time irrelevant
	assert.Equal(t, []string{"off-capt", "off-serg", "off-plain", "off-none"}, officerOrder(ranked))
}

func TestRankSignups_Seniority_EqualRankTieBreaksOnBadge(t *testing.T) {
	at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	s100 := rankedSignup(t, "off-100", strPtr("Sergeant"), strPtr("A100"), at)
	s050 := rankedSignup(t, "off-050", strPtr("Sergeant"), strPtr("A050"), at.Add(time.Hour))

	ranked := RankSignups(vo.PolicySeniority, []*Signup{s100, s050})

	// equal rank: badge "A050" ranks ahead of "A100" regardless of who
	// submitted first
	assert.Equal(t, []string{"off-050", "off-100"}, officerOrder(ranked))
}

func TestRankSignups_Seniority_MissingBadgeFallsBackToOfficerID(t *testing.T) {
	at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	noBadgeZ := rankedSignup(t, "zz-officer", strPtr("Sergeant"), nil, at)
	noBadgeA := rankedSignup(t, "aa-officer", strPtr("Sergeant"), nil, at)

	ranked := RankSignups(vo.PolicySeniority, []*Signup{noBadgeZ, noBadgeA})

	assert.Equal(t, []string{"aa-officer", "zz-officer"}, officerOrder(ranked))
}

func TestRankSignups_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	late := rankedSignup(t, "off-late", nil, nil, base.Add(time.Hour))
	early := rankedSignup(t, "off-early", nil, nil, base)
	input := []*Signup{late, early}

	_ = RankSignups(vo.PolicyFirstComeFirstServed, input)

	assert.Equal(t, []string{"off-late", "off-early"}, officerOrder(input))
}

func TestRankSignups_Deterministic(t *testing.T) {
	at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	signups := []*Signup{
		rankedSignup(t, "off-3", strPtr("Sergeant"), strPtr("A100"), at),
		rankedSignup(t, "off-1", strPtr("Sergeant"), strPtr("A050"), at),
		rankedSignup(t, "off-2", strPtr("Captain"), nil, at),
	}

	first := officerOrder(RankSignups(vo.PolicySeniority, signups))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, officerOrder(RankSignups(vo.PolicySeniority, signups)))
	}
}
