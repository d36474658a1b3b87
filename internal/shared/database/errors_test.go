package database_test

import (
	"errors"
	"fmt"
	"testing"

	"team-pulse/internal/shared/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolation(t *testing.T) {
	t.Run("success unique violation wrapped", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"})

		name, ok := database.ConstraintViolation(err)

		assert.True(t, ok)
		assert.Equal(t, "uq_user_email", name)
		assert.True(t, database.IsUniqueViolation(err))
		assert.False(t, database.IsExclusionViolation(err))
	})

	t.Run("success exclusion violation", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23P01", ConstraintName: "excl_leave_user_slots"}

		name, ok := database.ConstraintViolation(err)

		assert.True(t, ok)
		assert.Equal(t, "excl_leave_user_slots", name)
		assert.True(t, database.IsExclusionViolation(err))
	})

	t.Run("negative other errors", func(t *testing.T) {
		_, ok := database.ConstraintViolation(errors.New("boom"))
		assert.False(t, ok)

		_, ok = database.ConstraintViolation(&pgconn.PgError{Code: "23503"})
		assert.False(t, ok)
	})
}
