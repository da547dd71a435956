package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

func TestConfigStore_Defaults(t *testing.T) {
	s := NewConfigStore()
	assert.Equal(t, domain.DefaultTabataConfig(), s.Tabata())
	assert.Equal(t, domain.DefaultCountdownConfig(), s.Countdown())
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Entries())
}

func TestConfigStore_RejectsInvalidAndKeepsLastValid(t *testing.T) {
	s := NewConfigStore()
	require.NoError(t, s.SetTabata(tabata(30, 0, 1, 1, 0)))

	require.ErrorIs(t, s.SetTabata(tabata(30, 0, 0, 1, 0)), errors.ErrInvalidTabataConfig)
	assert.Equal(t, tabata(30, 0, 1, 1, 0), s.Tabata())

	require.ErrorIs(t, s.SetCountdown(domain.CountdownConfig{Minutes: 99}), errors.ErrInvalidCountdownConfig)
	assert.Equal(t, domain.DefaultCountdownConfig(), s.Countdown())
}

func TestConfigStore_SequenceEdits(t *testing.T) {
	s := NewConfigStore()
	for range 3 {
		_, err := s.Append("", tabata(10, 5, 2, 1, 0))
		require.NoError(t, err)
	}

	require.NoError(t, s.RemoveAt(1))
	names := []string{}
	for _, e := range s.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Tabata 1", "Tabata 3"}, names)

	entry, err := s.ReplaceAt(1, "Randori", tabata(60, 0, 1, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "Randori", entry.Name)

	got, err := s.Entry(1)
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	_, err = s.Entry(2)
	require.ErrorIs(t, err, errors.ErrSequenceIndexOutOfRange)

	// Entries returns a copy.
	entries := s.Entries()
	entries[0].Name = "changed"
	first, err := s.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "Tabata 1", first.Name)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}
