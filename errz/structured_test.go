package errz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{InvalidConfiguration, "invalid configuration"},
		{TypeMismatch, "type mismatch"},
		{UndeclaredSlot, "undeclared slot"},
		{NoPolicy, "no policy"},
		{MissingCloneCapability, "missing clone capability"},
		{ReservedSlot, "reserved slot"},
		{Kind(99), "error"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.kind.String())
	}
}

func TestErrorMessage(t *testing.T) {
	err := NoPolicyf("no policy for %s value", "userdata").WithSlot("conn")
	require.Equal(t, `no policy: no policy for userdata value (slot "conn")`, err.Error())

	require.Equal(t, "type mismatch", New(TypeMismatch, "").Error())
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("cloning: %w", UndeclaredSlotf("x"))
	require.True(t, errors.Is(err, ErrUndeclaredSlot))
	require.False(t, errors.Is(err, ErrNoPolicy))

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, UndeclaredSlot, e.Kind)
}

func TestMissingCloneCapabilityIsTypeMismatch(t *testing.T) {
	err := MissingCloneCapabilityf("userdata has no clone operation")
	require.True(t, errors.Is(err, ErrMissingCloneCapability))
	require.True(t, errors.Is(err, ErrTypeMismatch))
	require.False(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestCodes(t *testing.T) {
	require.Equal(t, E4004, NoPolicy.Code())
	require.Equal(t, E4001, InvalidConfiguration.Code())
	require.Equal(t, Code(""), Kind(0).Code())
	require.NotEmpty(t, E4003.Description())
}
