package guard_test

import (
	"errors"
	"testing"

	"freight/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("Ticket must be created via NewTicket")

	type ticket struct {
		id    string
		guard guard.ConstructorGuard
	}

	newTicket := func(id string) (ticket, error) {
		if id == "" {
			return ticket{}, errors.New("ticket ID is required")
		}
		return ticket{id: id, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		tk, err := newTicket("t-1")

		require.NoError(t, err)
		require.NoError(t, tk.guard.Validate(errNotConstructed))
		assert.Equal(t, "t-1", tk.id)
	})

	t.Run("zero value", func(t *testing.T) {
		var tk ticket

		assert.Equal(t, errNotConstructed, tk.guard.Validate(errNotConstructed))
	})

	t.Run("copy keeps flag", func(t *testing.T) {
		tk, _ := newTicket("t-2")
		cp := tk

		require.NoError(t, cp.guard.Validate(errNotConstructed))
	})
}
