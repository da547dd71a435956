// Package domain provides shared domain types for the judotimer timer and
// sync subsystems. These types are used across all internal packages to
// ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"fmt"
	"strings"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
)

// secondsPerMinute converts countdown minutes into ticks.
const secondsPerMinute = 60

// TabataConfig describes one interval protocol: work/rest phases grouped
// into cycles, cycles grouped into sets.
//
// Example JSON representation:
//
//	{
//	    "work_seconds": 20,
//	    "rest_seconds": 10,
//	    "cycles_per_set": 8,
//	    "total_sets": 1,
//	    "rest_between_sets_seconds": 60
//	}
type TabataConfig struct {
	// WorkSeconds is the length of each work phase, 1 to MaxPhaseSeconds.
	WorkSeconds int `json:"work_seconds" yaml:"work_seconds" mapstructure:"work_seconds"`

	// RestSeconds is the rest after every work phase except the last of a set.
	// Zero means work is followed directly by the next work phase.
	RestSeconds int `json:"rest_seconds" yaml:"rest_seconds" mapstructure:"rest_seconds"`

	// CyclesPerSet is the number of work phases in a set. Must be > 0.
	CyclesPerSet int `json:"cycles_per_set" yaml:"cycles_per_set" mapstructure:"cycles_per_set"`

	// TotalSets is the number of sets in the session. Must be > 0.
	TotalSets int `json:"total_sets" yaml:"total_sets" mapstructure:"total_sets"`

	// RestBetweenSetsSeconds is the rest between two sets.
	RestBetweenSetsSeconds int `json:"rest_between_sets_seconds" yaml:"rest_between_sets_seconds" mapstructure:"rest_between_sets_seconds"`
}

// DefaultTabataConfig returns the classic 20/10 x 8 protocol.
func DefaultTabataConfig() TabataConfig {
	return TabataConfig{
		WorkSeconds:            20,
		RestSeconds:            10,
		CyclesPerSet:           8,
		TotalSets:              1,
		RestBetweenSetsSeconds: 60,
	}
}

// Validate returns ErrInvalidTabataConfig when any field is out of range.
func (c TabataConfig) Validate() error {
	switch {
	case c.WorkSeconds <= 0 || c.WorkSeconds > constants.MaxPhaseSeconds:
		return errors.Wrapf(errors.ErrInvalidTabataConfig, "work_seconds must be between 1 and %d, got %d",
			constants.MaxPhaseSeconds, c.WorkSeconds)
	case c.RestSeconds < 0 || c.RestSeconds > constants.MaxPhaseSeconds:
		return errors.Wrapf(errors.ErrInvalidTabataConfig, "rest_seconds must be between 0 and %d, got %d",
			constants.MaxPhaseSeconds, c.RestSeconds)
	case c.CyclesPerSet <= 0 || c.CyclesPerSet > constants.MaxCyclesPerSet:
		return errors.Wrapf(errors.ErrInvalidTabataConfig, "cycles_per_set must be between 1 and %d, got %d",
			constants.MaxCyclesPerSet, c.CyclesPerSet)
	case c.TotalSets <= 0 || c.TotalSets > constants.MaxTotalSets:
		return errors.Wrapf(errors.ErrInvalidTabataConfig, "total_sets must be between 1 and %d, got %d",
			constants.MaxTotalSets, c.TotalSets)
	case c.RestBetweenSetsSeconds < 0 || c.RestBetweenSetsSeconds > constants.MaxPhaseSeconds:
		return errors.Wrapf(errors.ErrInvalidTabataConfig, "rest_between_sets_seconds must be between 0 and %d, got %d",
			constants.MaxPhaseSeconds, c.RestBetweenSetsSeconds)
	}
	return nil
}

// TotalSeconds is the session length in ticks. There is no rest after the
// last cycle of a set and no set rest after the last set.
func (c TabataConfig) TotalSeconds() int {
	return c.TotalSets*c.CyclesPerSet*c.WorkSeconds +
		c.TotalSets*(c.CyclesPerSet-1)*c.RestSeconds +
		(c.TotalSets-1)*c.RestBetweenSetsSeconds
}

// CountdownConfig is a plain countdown of Minutes:Seconds.
type CountdownConfig struct {
	// Minutes in [0,59].
	Minutes int `json:"minutes" yaml:"minutes" mapstructure:"minutes"`

	// Seconds in [0,59].
	Seconds int `json:"seconds" yaml:"seconds" mapstructure:"seconds"`
}

// DefaultCountdownConfig returns a five minute countdown, the length of a
// standard judo match.
func DefaultCountdownConfig() CountdownConfig {
	return CountdownConfig{Minutes: 5}
}

// Validate returns ErrInvalidCountdownConfig for out-of-range fields or a zero total.
func (c CountdownConfig) Validate() error {
	if c.Minutes < 0 || c.Minutes > 59 {
		return errors.Wrapf(errors.ErrInvalidCountdownConfig, "minutes must be between 0 and 59, got %d", c.Minutes)
	}
	if c.Seconds < 0 || c.Seconds > 59 {
		return errors.Wrapf(errors.ErrInvalidCountdownConfig, "seconds must be between 0 and 59, got %d", c.Seconds)
	}
	if c.TotalSeconds() == 0 {
		return errors.Wrap(errors.ErrInvalidCountdownConfig, "duration must be greater than 0")
	}
	return nil
}

// TotalSeconds returns Minutes*60+Seconds.
func (c CountdownConfig) TotalSeconds() int {
	return c.Minutes*secondsPerMinute + c.Seconds
}

// NamedTabataEntry is one element of a sequence. Identity is positional.
type NamedTabataEntry struct {
	// Name is the display name, "Tabata {n}" when the caller gives none.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	TabataConfig `yaml:",inline" mapstructure:",squash"`
}

// EntryName returns name trimmed, or the default name for position n (1-based)
// when name is blank.
func EntryName(name string, n int) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf(constants.SequenceEntryNameFormat, n)
}

// RuntimeState is the snapshot of the timer engine consumed by observers.
// Only the engine mutates it; everyone else receives copies.
type RuntimeState struct {
	Mode  constants.TimerMode `json:"mode"`
	Phase constants.Phase     `json:"phase"`

	// TimeLeftSeconds counts down in tabata and countdown modes.
	TimeLeftSeconds int `json:"time_left_seconds"`

	// ElapsedSeconds counts up in stopwatch mode.
	ElapsedSeconds int `json:"elapsed_seconds"`

	// CurrentCycle and CurrentSet are 1-based (tabata only).
	CurrentCycle int `json:"current_cycle"`
	CurrentSet   int `json:"current_set"`

	IsRunning   bool `json:"is_running"`
	IsCompleted bool `json:"is_completed"`

	IsSequenceMode       bool               `json:"is_sequence_mode"`
	Sequence             []NamedTabataEntry `json:"sequence"`
	CurrentSequenceIndex int                `json:"current_sequence_index"`

	// Tabata and Countdown are the active configurations.
	Tabata    TabataConfig    `json:"tabata"`
	Countdown CountdownConfig `json:"countdown"`
}

// Clone returns a deep copy of the state.
func (s RuntimeState) Clone() RuntimeState {
	out := s
	if s.Sequence != nil {
		out.Sequence = make([]NamedTabataEntry, len(s.Sequence))
		copy(out.Sequence, s.Sequence)
	}
	return out
}

// CurrentEntry returns the sequence entry under the cursor, if any.
func (s RuntimeState) CurrentEntry() (NamedTabataEntry, bool) {
	if s.CurrentSequenceIndex < 0 || s.CurrentSequenceIndex >= len(s.Sequence) {
		return NamedTabataEntry{}, false
	}
	return s.Sequence[s.CurrentSequenceIndex], true
}

// TimerSettings is the persisted "last-used configuration" record.
type TimerSettings struct {
	Mode         constants.TimerMode `json:"mode"`
	Tabata       TabataConfig        `json:"tabata"`
	Countdown    CountdownConfig     `json:"countdown"`
	Sequence     []NamedTabataEntry  `json:"sequence,omitempty"`
	SequenceMode bool                `json:"sequence_mode"`

	// SchemaVersion is the version of the record format.
	SchemaVersion int `json:"schema_version"`
}
