package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCity(t *testing.T) {
	t.Run("should normalize whitespace", func(t *testing.T) {
		c, err := kernel.NewCity("  Nuwara   Eliya ")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "Nuwara Eliya", c.String())
	})

	t.Run("should reject blank name", func(t *testing.T) {
		_, err := kernel.NewCity("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var c kernel.City
		assert.Equal(t, kernel.ErrCityIsNotConstructed, c.Validate())
	})
}

func TestCity_IsEqual(t *testing.T) {
	assert.True(t, kernel.MustCity("Kandy").IsEqual(kernel.MustCity(" kandy")))
	assert.False(t, kernel.MustCity("Kandy").IsEqual(kernel.MustCity("Galle")))

	var zero kernel.City
	assert.False(t, zero.IsEqual(zero))
}
