package timer

import (
	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

// SequenceManager edits the engine's ordered list of named tabata entries and
// the playback cursor. It shares the engine's lock, so every edit is atomic
// with respect to ticks and snapshots.
type SequenceManager struct {
	e *Engine
}

// Entries returns a copy of the sequence.
func (m *SequenceManager) Entries() []domain.NamedTabataEntry {
	m.e.mu.Lock()
	defer m.e.mu.Unlock()
	return m.e.cfg.Entries()
}

// Len returns the number of entries.
func (m *SequenceManager) Len() int {
	m.e.mu.Lock()
	defer m.e.mu.Unlock()
	return m.e.cfg.Len()
}

// Enabled reports whether sequence mode is on.
func (m *SequenceManager) Enabled() bool {
	m.e.mu.Lock()
	defer m.e.mu.Unlock()
	return m.e.st.IsSequenceMode
}

// Cursor returns the index of the entry being (or about to be) played.
func (m *SequenceManager) Cursor() int {
	m.e.mu.Lock()
	defer m.e.mu.Unlock()
	return m.e.st.CurrentSequenceIndex
}

// AddEntry appends cfg. A blank name becomes "Tabata {n}".
func (m *SequenceManager) AddEntry(name string, cfg domain.TabataConfig) (domain.NamedTabataEntry, error) {
	var entry domain.NamedTabataEntry
	err := m.e.do(func() error {
		var err error
		entry, err = m.e.cfg.Append(name, cfg)
		if err != nil {
			return err
		}
		m.e.emitLocked(EventStateChange, m.e.st.Phase)
		return nil
	})
	return entry, err
}

// RemoveEntryAt deletes the entry at index.
//
// Removing the entry that is playing aborts the session as completed. An
// entry removed before the cursor moves the cursor back so it keeps pointing
// at the same entry, and the cursor falls back to 0 if it would run past the
// end. Removing the last entry turns sequence mode off.
func (m *SequenceManager) RemoveEntryAt(index int) error {
	return m.e.do(func() error {
		e := m.e
		if _, err := e.cfg.Entry(index); err != nil {
			return err
		}
		playing := e.st.IsSequenceMode &&
			e.st.Mode == constants.ModeTabata &&
			e.st.Phase.IsActive() &&
			index == e.st.CurrentSequenceIndex
		prev := e.st.Phase

		if err := e.cfg.RemoveAt(index); err != nil {
			return err
		}

		switch {
		case e.cfg.Len() == 0:
			e.st.IsSequenceMode = false
			e.st.CurrentSequenceIndex = 0
		case index < e.st.CurrentSequenceIndex:
			e.st.CurrentSequenceIndex--
		case e.st.CurrentSequenceIndex >= e.cfg.Len():
			e.st.CurrentSequenceIndex = 0
		}

		if playing {
			e.logger.Warn().Int("index", index).Msg("playing sequence entry removed, session stopped")
			e.completeLocked()
			return nil
		}
		e.syncIdleLocked()
		e.emitLocked(EventStateChange, prev)
		return nil
	})
}

// ReplaceEntryAt overwrites the entry at index in place. The playback
// position is unchanged. Replacing the playing entry affects only the phases
// not yet entered.
func (m *SequenceManager) ReplaceEntryAt(index int, name string, cfg domain.TabataConfig) (domain.NamedTabataEntry, error) {
	var entry domain.NamedTabataEntry
	err := m.e.do(func() error {
		e := m.e
		var err error
		entry, err = e.cfg.ReplaceAt(index, name, cfg)
		if err != nil {
			return err
		}
		if e.st.IsSequenceMode && index == e.st.CurrentSequenceIndex {
			e.active = entry.TabataConfig
		}
		e.syncIdleLocked()
		e.emitLocked(EventStateChange, e.st.Phase)
		return nil
	})
	return entry, err
}

// Clear empties the sequence and turns sequence mode off.
func (m *SequenceManager) Clear() error {
	return m.e.do(func() error {
		e := m.e
		e.cfg.Clear()
		e.st.IsSequenceMode = false
		e.st.CurrentSequenceIndex = 0
		e.syncIdleLocked()
		e.emitLocked(EventStateChange, e.st.Phase)
		return nil
	})
}

// EnableSequenceMode turns chained playback on or off.
//
// Turning it on needs at least one entry (ErrSequenceEmpty) and no session in
// progress (ErrModeChangeWhileRunning); the cursor starts at entry 0.
// Turning it off keeps the list and lets the current entry finish as a plain
// tabata session.
func (m *SequenceManager) EnableSequenceMode(on bool) error {
	return m.e.do(func() error {
		e := m.e
		if on == e.st.IsSequenceMode {
			return nil
		}
		if on {
			if e.cfg.Len() == 0 {
				return errors.ErrSequenceEmpty
			}
			if e.st.Phase.IsActive() {
				return errors.ErrModeChangeWhileRunning
			}
			e.st.CurrentSequenceIndex = 0
		}
		e.st.IsSequenceMode = on
		e.syncIdleLocked()
		e.emitLocked(EventStateChange, e.st.Phase)
		return nil
	})
}
