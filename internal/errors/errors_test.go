package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jterrors "github.com/clangoi/judotimer/internal/errors"
)

// testError is a custom error type used to test default branches
// in UserMessage and Actionable without matching any sentinel.
type testError struct {
	msg string
}

func (e testError) Error() string {
	return e.msg
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	all := []error{
		jterrors.ErrInvalidTabataConfig,
		jterrors.ErrInvalidCountdownConfig,
		jterrors.ErrInvalidMode,
		jterrors.ErrModeChangeWhileRunning,
		jterrors.ErrSessionCompleted,
		jterrors.ErrSequenceEmpty,
		jterrors.ErrSequenceIndexOutOfRange,
		jterrors.ErrInvalidDeviceCode,
		jterrors.ErrDeviceNameRequired,
		jterrors.ErrNotLinked,
		jterrors.ErrRecordNotFound,
		jterrors.ErrLockTimeout,
	}

	for i, a := range all {
		require.NotEmpty(t, a.Error())
		for j, b := range all {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "%v should not match %v", a, b)
		}
	}
}

func TestWrap_PreservesErrorChain(t *testing.T) {
	wrapped := jterrors.Wrap(jterrors.ErrInvalidTabataConfig, "failed to apply flags")

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, jterrors.ErrInvalidTabataConfig)
	assert.Equal(t, "failed to apply flags: invalid tabata configuration", wrapped.Error())
}

func TestWrap_NilError(t *testing.T) {
	assert.NoError(t, jterrors.Wrap(nil, "context"))
	assert.NoError(t, jterrors.Wrapf(nil, "context %d", 1))
}

func TestWrapf_MessageFormat(t *testing.T) {
	wrapped := jterrors.Wrapf(jterrors.ErrRecordNotFound, "record %s in %s", "sync_status", "file store")

	assert.Equal(t, "record sync_status in file store: record not found", wrapped.Error())
	assert.True(t, jterrors.Is(wrapped, jterrors.ErrRecordNotFound))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"tabata config", jterrors.ErrInvalidTabataConfig, "tabata settings are invalid"},
		{"mode change", jterrors.ErrModeChangeWhileRunning, "running"},
		{"sequence empty", jterrors.ErrSequenceEmpty, "no entries"},
		{"device code", jterrors.ErrInvalidDeviceCode, "device code"},
		{"wrapped", fmt.Errorf("link: %w", jterrors.ErrNotLinked), "No device is linked"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, jterrors.UserMessage(tc.err), tc.contains)
		})
	}
}

func TestUserMessage_NilAndUnknown(t *testing.T) {
	assert.Empty(t, jterrors.UserMessage(nil))
	assert.Equal(t, "something odd", jterrors.UserMessage(testError{msg: "something odd"}))
}

func TestActionable(t *testing.T) {
	msg, action := jterrors.Actionable(jterrors.ErrSessionCompleted)
	assert.Contains(t, msg, "already complete")
	assert.Contains(t, action, "Reset")

	msg, action = jterrors.Actionable(jterrors.ErrOperationCanceled)
	assert.Equal(t, "Operation canceled.", msg)
	assert.Empty(t, action)

	msg, action = jterrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)
}

func TestExitCode2Error(t *testing.T) {
	base := jterrors.ErrInvalidOutputFormat
	err := jterrors.NewExitCode2Error(base)

	assert.Equal(t, base.Error(), err.Error())
	assert.ErrorIs(t, err, base)
	assert.True(t, jterrors.IsExitCode2Error(err))
	assert.True(t, jterrors.IsExitCode2Error(fmt.Errorf("outer: %w", err)))
	assert.False(t, jterrors.IsExitCode2Error(base))
	assert.False(t, jterrors.IsExitCode2Error(nil))
}
