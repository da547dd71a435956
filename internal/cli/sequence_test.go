package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

func listSequence(t *testing.T) sequenceView {
	t.Helper()
	out, err := executeCommand(t, "sequence", "list", "-o", "json")
	require.NoError(t, err)

	var view sequenceView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	return view
}

func TestSequenceCommand_AddListRemove(t *testing.T) {
	isolateHome(t)

	_, err := executeCommand(t, "sequence", "add", "Uchi-komi", "--work", "30", "--rest", "10", "--cycles", "6")
	require.NoError(t, err)

	out, err := executeCommand(t, "sequence", "add", "--work", "60", "--rest", "0", "--cycles", "1", "-o", "json")
	require.NoError(t, err)

	var added entryResult
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, "added", added.Status)
	assert.Equal(t, 2, added.Position)
	assert.Equal(t, "Tabata 2", added.Entry.Name)

	view := listSequence(t)
	require.Len(t, view.Entries, 2)
	assert.False(t, view.Enabled)
	assert.Equal(t, "Uchi-komi", view.Entries[0].Name)
	assert.Equal(t, 30, view.Entries[0].WorkSeconds)
	assert.Equal(t, 6, view.Entries[0].CyclesPerSet)
	// Unset flags copy the saved tabata configuration.
	assert.Equal(t, 1, view.Entries[0].TotalSets)
	assert.Equal(t, 6*30+5*10+60, view.TotalSeconds)

	out, err = executeCommand(t, "sequence", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1. Uchi-komi")

	view = listSequence(t)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Tabata 2", view.Entries[0].Name)
}

func TestSequenceCommand_Replace(t *testing.T) {
	isolateHome(t)

	_, err := executeCommand(t, "sequence", "add", "Randori", "--work", "240", "--cycles", "1")
	require.NoError(t, err)

	// The name is kept when only flags are given.
	_, err = executeCommand(t, "sequence", "replace", "1", "--work", "180")
	require.NoError(t, err)

	view := listSequence(t)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Randori", view.Entries[0].Name)
	assert.Equal(t, 180, view.Entries[0].WorkSeconds)

	_, err = executeCommand(t, "sequence", "replace", "1", "Nage-komi")
	require.NoError(t, err)
	assert.Equal(t, "Nage-komi", listSequence(t).Entries[0].Name)
}

func TestSequenceCommand_EnableDisableClear(t *testing.T) {
	isolateHome(t)

	_, err := executeCommand(t, "sequence", "enable")
	require.ErrorIs(t, err, errors.ErrSequenceEmpty)

	_, err = executeCommand(t, "sequence", "add", "Warm-up")
	require.NoError(t, err)

	out, err := executeCommand(t, "sequence", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "enabled")
	assert.True(t, listSequence(t).Enabled)

	_, err = executeCommand(t, "sequence", "disable")
	require.NoError(t, err)
	assert.False(t, listSequence(t).Enabled)

	_, err = executeCommand(t, "sequence", "enable")
	require.NoError(t, err)
	_, err = executeCommand(t, "sequence", "clear")
	require.NoError(t, err)

	view := listSequence(t)
	assert.Empty(t, view.Entries)
	assert.False(t, view.Enabled)
}

func TestSequenceCommand_InvalidPositions(t *testing.T) {
	isolateHome(t)

	_, err := executeCommand(t, "sequence", "add", "Only")
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "remove zero", args: []string{"sequence", "remove", "0"}, wantErr: errors.ErrInvalidArgument},
		{name: "remove text", args: []string{"sequence", "remove", "first"}, wantErr: errors.ErrInvalidArgument},
		{name: "remove past end", args: []string{"sequence", "remove", "2"}, wantErr: errors.ErrSequenceIndexOutOfRange},
		{name: "replace past end", args: []string{"sequence", "replace", "5"}, wantErr: errors.ErrSequenceIndexOutOfRange},
		{name: "invalid config", args: []string{"sequence", "add", "--cycles", "0"}, wantErr: errors.ErrInvalidTabataConfig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := executeCommand(t, tc.args...)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
		})
	}

	assert.Len(t, listSequence(t).Entries, 1)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	index, err := parsePosition("3")
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	for _, arg := range []string{"0", "-1", "x", ""} {
		_, err := parsePosition(arg)
		require.ErrorIs(t, err, errors.ErrInvalidArgument, "arg %q", arg)
	}
}

func TestDescribeTabata(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultTabataConfig()
	assert.Equal(t, "20s work / 10s rest x8", describeTabata(cfg))

	cfg.TotalSets = 3
	assert.Equal(t, "20s work / 10s rest x8, 3 sets / 60s between", describeTabata(cfg))
}
