package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("ephemeris offline")
	err := Wrap(CodeProviderFailure, "failed to compute panchanga", cause)

	require.EqualError(t, err, "failed to compute panchanga: ephemeris offline")
	require.ErrorIs(t, err, cause)
	require.True(t, IsCode(err, CodeProviderFailure))
	require.False(t, IsCode(err, CodeInvalidInput))
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("request: %w", Wrap(CodeSolverDivergence, "tithi boundary", nil))
	require.Equal(t, CodeSolverDivergence, CodeOf(err))
	require.Equal(t, "", CodeOf(errors.New("plain")))
}
