package overtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankTable_PriorityFor(t *testing.T) {
	ranks := DefaultRankTable()

	tests := []struct {
		name string
		rank *string
		want int
	}{
		{"nil rank", nil, PriorityUnknownRank},
		{"empty rank", strPtr(""), PriorityUnknownRank},
		{"captain", strPtr("Captain"), 1},
		{"lieutenant abbreviated", strPtr("Lt."), 2},
		{"sergeant", strPtr("Sergeant"), 3},
		{"sergeant with noise", strPtr("Sgt. Sergeant II"), 3},
		{"corporal", strPtr("Corporal"), 4},
		{"detective", strPtr("Detective"), 5},
		{"mixed case", strPtr("SERGEANT"), 3},
		{"unmatched label", strPtr("Officer"), PriorityOtherRank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ranks.PriorityFor(tt.rank))
		})
	}
}

func TestRankTable_PriorityFor_BestMatchWins(t *testing.T) {
	ranks := DefaultRankTable()

	// "Detective Lt." matches both detect (5) and lt (2); the more senior
	// tier must win.
	assert.Equal(t, 2, ranks.PriorityFor(strPtr("Detective Lt.")))
}

func TestRankTable_PriorityFor_CustomTable(t *testing.T) {
	ranks := RankTable{"chief": 0}

	assert.Equal(t, 0, ranks.PriorityFor(strPtr("Deputy Chief")))
	assert.Equal(t, PriorityOtherRank, ranks.PriorityFor(strPtr("Sergeant")))
}
