package apperror_test

import (
	"testing"

	"team-pulse/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dateRange struct {
	StartDate string `json:"start_date" binding:"required,isodate"`
}

func TestInit(t *testing.T) {
	require.NoError(t, apperror.Init())

	t.Run("success calendar date and timestamp", func(t *testing.T) {
		assert.NoError(t, binding.Validator.ValidateStruct(dateRange{StartDate: "2024-02-05"}))
		assert.NoError(t, binding.Validator.ValidateStruct(dateRange{StartDate: "2024-02-05T09:00:00Z"}))
	})

	t.Run("negative malformed date reports json field name", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(dateRange{StartDate: "05/02/2024"})

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "start_date", errs[0].Field())
		assert.Equal(t, "isodate", errs[0].Tag())
	})

	t.Run("success repeated init", func(t *testing.T) {
		assert.NoError(t, apperror.Init())
	})
}
