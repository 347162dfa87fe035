package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEngineErrorEmpty(t *testing.T) {
	require.Nil(t, NewEngineError("Sim1", ""))
}

func TestAsEngineErrorThroughWrap(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrInitialize, NewEngineError("Sim1", "license not found"))

	require.ErrorIs(t, err, ErrInitialize)
	engineErr, ok := AsEngineError(err)
	require.True(t, ok)
	require.Equal(t, "Sim1", engineErr.Label)
	require.Equal(t, "license not found", engineErr.Message)
	require.Contains(t, err.Error(), `engine error for simulation "Sim1": license not found`)

	_, ok = AsEngineError(ErrUnknownCommand)
	require.False(t, ok)
}
