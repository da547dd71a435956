package timer

import (
	"slices"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

// ConfigStore holds the validated tabata and countdown configurations and the
// ordered sequence of named tabata entries.
//
// ConfigStore is not safe for concurrent use on its own. The Engine owns one
// and guards it with its own lock; standalone use (plan previews, tests) must
// stay on one goroutine.
type ConfigStore struct {
	tabata    domain.TabataConfig
	countdown domain.CountdownConfig
	sequence  []domain.NamedTabataEntry
}

// NewConfigStore returns a store holding the default configurations and an
// empty sequence.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		tabata:    domain.DefaultTabataConfig(),
		countdown: domain.DefaultCountdownConfig(),
	}
}

// Tabata returns the standalone tabata configuration.
func (s *ConfigStore) Tabata() domain.TabataConfig {
	return s.tabata
}

// Countdown returns the countdown configuration.
func (s *ConfigStore) Countdown() domain.CountdownConfig {
	return s.countdown
}

// SetTabata replaces the tabata configuration. An invalid configuration is
// rejected and the last valid one is kept.
func (s *ConfigStore) SetTabata(cfg domain.TabataConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.tabata = cfg
	return nil
}

// SetCountdown replaces the countdown configuration. An invalid configuration
// is rejected and the last valid one is kept.
func (s *ConfigStore) SetCountdown(cfg domain.CountdownConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.countdown = cfg
	return nil
}

// Len returns the number of sequence entries.
func (s *ConfigStore) Len() int {
	return len(s.sequence)
}

// Entries returns a copy of the sequence.
func (s *ConfigStore) Entries() []domain.NamedTabataEntry {
	if len(s.sequence) == 0 {
		return nil
	}
	out := make([]domain.NamedTabataEntry, len(s.sequence))
	copy(out, s.sequence)
	return out
}

// Entry returns the entry at index.
func (s *ConfigStore) Entry(index int) (domain.NamedTabataEntry, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.NamedTabataEntry{}, err
	}
	return s.sequence[index], nil
}

// Append validates cfg and adds it at the end of the sequence. A blank name
// becomes "Tabata {n}" where n is the new length.
func (s *ConfigStore) Append(name string, cfg domain.TabataConfig) (domain.NamedTabataEntry, error) {
	if err := cfg.Validate(); err != nil {
		return domain.NamedTabataEntry{}, err
	}
	entry := domain.NamedTabataEntry{
		Name:         domain.EntryName(name, len(s.sequence)+1),
		TabataConfig: cfg,
	}
	s.sequence = append(s.sequence, entry)
	return entry, nil
}

// RemoveAt deletes the entry at index.
func (s *ConfigStore) RemoveAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.sequence = slices.Delete(s.sequence, index, index+1)
	return nil
}

// ReplaceAt overwrites the entry at index. A blank name keeps the default
// name for that position.
func (s *ConfigStore) ReplaceAt(index int, name string, cfg domain.TabataConfig) (domain.NamedTabataEntry, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.NamedTabataEntry{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.NamedTabataEntry{}, err
	}
	entry := domain.NamedTabataEntry{
		Name:         domain.EntryName(name, index+1),
		TabataConfig: cfg,
	}
	s.sequence[index] = entry
	return entry, nil
}

// Clear empties the sequence.
func (s *ConfigStore) Clear() {
	s.sequence = nil
}

func (s *ConfigStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.sequence) {
		return errors.Wrapf(errors.ErrSequenceIndexOutOfRange, "index %d, sequence has %d entries", index, len(s.sequence))
	}
	return nil
}
