package token_test

import (
	"testing"
	"time"

	"team-pulse/internal/domain"
	"team-pulse/internal/shared/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIssueAndParse(t *testing.T) {
	secret := "test-secret"
	teamID := uuid.New()
	id := domain.Identity{
		UserID:      uuid.New(),
		WorkspaceID: uuid.New(),
		TeamID:      &teamID,
		Role:        domain.RoleManager,
	}

	t.Run("success round trip keeps team", func(t *testing.T) {
		signed, err := token.Issue(secret, id, time.Hour, time.Now())
		assert.NoError(t, err)

		got, err := token.Parse(secret, signed)

		assert.NoError(t, err)
		assert.Equal(t, id.UserID, got.UserID)
		assert.Equal(t, id.WorkspaceID, got.WorkspaceID)
		assert.Equal(t, domain.RoleManager, got.Role)
		assert.NotNil(t, got.TeamID)
		assert.Equal(t, teamID, *got.TeamID)
	})

	t.Run("success without team", func(t *testing.T) {
		noTeam := id
		noTeam.TeamID = nil
		signed, err := token.Issue(secret, noTeam, time.Hour, time.Now())
		assert.NoError(t, err)

		got, err := token.Parse(secret, signed)

		assert.NoError(t, err)
		assert.Nil(t, got.TeamID)
		assert.False(t, got.HasTeam())
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		signed, _ := token.Issue(secret, id, time.Hour, time.Now())

		_, err := token.Parse("other-secret", signed)

		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("negative expired", func(t *testing.T) {
		signed, _ := token.Issue(secret, id, time.Minute, time.Now().Add(-time.Hour))

		_, err := token.Parse(secret, signed)

		assert.ErrorIs(t, err, token.ErrTokenExpired)
	})
}
