package leave_test

import (
	"testing"

	"team-pulse/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestTeamConflictWarning(t *testing.T) {
	tests := []struct {
		name        string
		overlapping int64
		teamSize    int64
		wantWarn    bool
		wantText    string
	}{
		{
			name:        "half of the team away",
			overlapping: 2,
			teamSize:    4,
			wantWarn:    true,
			wantText:    "2 other team member(s) (50% of your team) are already on leave during this period.",
		},
		{
			name:        "exactly at threshold",
			overlapping: 3,
			teamSize:    10,
			wantWarn:    true,
			wantText:    "3 other team member(s) (30% of your team) are already on leave during this period.",
		},
		{
			name:        "rounded percentage",
			overlapping: 1,
			teamSize:    3,
			wantWarn:    true,
			wantText:    "1 other team member(s) (33% of your team) are already on leave during this period.",
		},
		{name: "below threshold", overlapping: 1, teamSize: 4},
		{name: "nobody away", overlapping: 0, teamSize: 4},
		{name: "empty team", overlapping: 2, teamSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, warn := leave.TeamConflictWarning(tt.overlapping, tt.teamSize)
			assert.Equal(t, tt.wantWarn, warn)
			assert.Equal(t, tt.wantText, text)
		})
	}
}
