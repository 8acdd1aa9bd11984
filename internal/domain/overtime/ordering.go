package overtime

import (
	"sort"

	vo "dutywire/internal/domain/overtime/valueobjects"
)

// RankSignups returns the signups ordered by the posting's configured policy.
// The result is a new slice; the input is never mutated. Ranking is purely
// informational: it answers "who is ahead in line" for display, and never
// decides whether a claim is admitted.
//
// First-come-first-served orders by submission time ascending; signups with a
// zero submission time sort last. Seniority orders by rank priority ascending
// (lower is more senior), then tie-break key. Both policies fall through to
// the tie-break key and then the officer identity so the order is a
// deterministic total order for any input.
func RankSignups(policy vo.OrderingPolicy, signups []*Signup) []*Signup {
	ranked := make([]*Signup, len(signups))
	copy(ranked, signups)

	less := bySubmission
	if policy.IsSeniority() {
		less = bySeniority
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})

	return ranked
}

func bySubmission(a, b *Signup) bool {
	aZero, bZero := a.SubmittedAt().IsZero(), b.SubmittedAt().IsZero()
	if aZero != bZero {
		return bZero
	}
	if !aZero && !a.SubmittedAt().Equal(b.SubmittedAt()) {
		return a.SubmittedAt().Before(b.SubmittedAt())
	}
	return tieBreak(a, b)
}

func bySeniority(a, b *Signup) bool {
	if a.RankPriority() != b.RankPriority() {
		return a.RankPriority() < b.RankPriority()
	}
	return tieBreak(a, b)
}

func tieBreak(a, b *Signup) bool {
	if a.TieBreakerKey() != b.TieBreakerKey() {
		return a.TieBreakerKey() < b.TieBreakerKey()
	}
	return a.OfficerID() < b.OfficerID()
}
