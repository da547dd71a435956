package timer

import (
	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
)

// EventType identifies what changed in an Event.
type EventType string

// Event types emitted by the Engine.
const (
	// EventStateChange is emitted after a command changed the state.
	EventStateChange EventType = "state_change"

	// EventPhaseChange is emitted when a tick moves the session into a new
	// phase or a new work interval.
	EventPhaseChange EventType = "phase_change"

	// EventTick is emitted for a tick that only moved the counters.
	EventTick EventType = "tick"

	// EventSequenceAdvance is emitted when playback moves to the next
	// sequence entry.
	EventSequenceAdvance EventType = "sequence_advance"

	// EventCompleted is emitted once when a session completes.
	EventCompleted EventType = "completed"
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Type EventType `json:"type"`

	// Previous is the phase before the change.
	Previous constants.Phase `json:"previous"`

	// State is a copy of the engine state after the change.
	State domain.RuntimeState `json:"state"`
}

// Listener receives engine events.
type Listener func(Event)
