package overtime

import "strings"

// Rank priority values: lower is more senior. Labels are matched as
// case-insensitive substrings so "Sgt. Sergeant II" and "sergeant" land on
// the same tier.
const (
	// PriorityOtherRank is assigned to a recognized but unranked label.
	PriorityOtherRank = 10
	// PriorityUnknownRank sorts missing or unparseable ranks last.
	PriorityUnknownRank = 999
)

// RankTable maps rank-label fragments to seniority priorities.
type RankTable map[string]int

// DefaultRankTable mirrors the agency rank ladder the product shipped with.
func DefaultRankTable() RankTable {
	return RankTable{
		"capt":   1,
		"lt":     2,
		"serg":   3,
		"corp":   4,
		"detect": 5,
	}
}

// PriorityFor resolves a rank label to its seniority priority. A nil or empty
// label yields PriorityUnknownRank; a label matching no fragment yields
// PriorityOtherRank.
func (t RankTable) PriorityFor(rank *string) int {
	if rank == nil || *rank == "" {
		return PriorityUnknownRank
	}

	label := strings.ToLower(*rank)
	best := PriorityOtherRank
	matched := false
	for fragment, priority := range t {
		if strings.Contains(label, strings.ToLower(fragment)) {
			if !matched || priority < best {
				best = priority
			}
			matched = true
		}
	}
	if !matched {
		return PriorityOtherRank
	}
	return best
}
