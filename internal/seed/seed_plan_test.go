package seed_test

import (
	"testing"

	"team-pulse/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan(t *testing.T) {
	t.Run("success default shape", func(t *testing.T) {
		plan := seed.BuildPlan(seed.DefaultWorkspaces, seed.DefaultUsersPerTeam)

		w, teams, users := plan.Counts()
		assert.Equal(t, 10, w)
		assert.Equal(t, 40, teams)
		assert.Equal(t, 10+40*(1+5), users)

		first := plan.Workspaces[0]
		assert.Equal(t, "TechCorp", first.Name)
		assert.Equal(t, "alice.smith@example.com", first.Admin.Email)
		assert.Equal(t, []string{"Engineering", "QA", "DevOps", "Product"}, teamNames(first))
	})

	t.Run("success emails are unique across the plan", func(t *testing.T) {
		plan := seed.BuildPlan(12, 8)

		seen := map[string]bool{}
		for _, ws := range plan.Workspaces {
			emails := []string{ws.Admin.Email}
			for _, tp := range ws.Teams {
				emails = append(emails, tp.Manager.Email)
				for _, m := range tp.Members {
					emails = append(emails, m.Email)
				}
			}
			for _, e := range emails {
				require.False(t, seen[e], "duplicate email %s", e)
				seen[e] = true
			}
		}
	})

	t.Run("success workspaces past the pool use numbered names and default teams", func(t *testing.T) {
		plan := seed.BuildPlan(11, 0)

		last := plan.Workspaces[10]
		assert.Equal(t, "Workspace 11", last.Name)
		assert.Equal(t, []string{"Engineering", "Marketing", "Design", "Operations"}, teamNames(last))
		assert.Empty(t, last.Teams[0].Members)
	})

	t.Run("success deterministic", func(t *testing.T) {
		assert.Equal(t, seed.BuildPlan(3, 2), seed.BuildPlan(3, 2))
	})
}

func teamNames(ws seed.WorkspacePlan) []string {
	names := make([]string, len(ws.Teams))
	for i, tp := range ws.Teams {
		names[i] = tp.Name
	}
	return names
}
