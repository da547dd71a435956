package constants

// TimerMode selects which timer sub-state is authoritative.
// Values use snake_case for JSON serialization compatibility.
type TimerMode string

// Timer modes.
const (
	// ModeTabata runs interval sessions of work/rest cycles grouped in sets.
	ModeTabata TimerMode = "tabata"

	// ModeCountdown counts a single duration down to zero.
	ModeCountdown TimerMode = "countdown"

	// ModeStopwatch counts elapsed seconds up until reset.
	ModeStopwatch TimerMode = "stopwatch"
)

// String returns the string representation of the TimerMode.
func (m TimerMode) String() string {
	return string(m)
}

// Valid reports whether m is one of the known timer modes.
func (m TimerMode) Valid() bool {
	switch m {
	case ModeTabata, ModeCountdown, ModeStopwatch:
		return true
	default:
		return false
	}
}

// TimerModes returns all timer modes in display order.
func TimerModes() []TimerMode {
	return []TimerMode{ModeTabata, ModeCountdown, ModeStopwatch}
}

// Phase is the current sub-state of a timer session.
//
// Tabata sessions move through:
//
//	Idle → Preparing → Work ⇄ Rest
//	Work → SetRest → Work
//	Work → Completed
//
// Countdown and stopwatch only use Idle, Running and Completed.
type Phase string

// Phase constants.
const (
	// PhaseIdle indicates nothing has started since the last reset.
	PhaseIdle Phase = "idle"

	// PhasePreparing is the optional lead-in before the first work phase.
	PhasePreparing Phase = "preparing"

	// PhaseWork is a tabata work interval.
	PhaseWork Phase = "work"

	// PhaseRest is the rest between two cycles of the same set.
	PhaseRest Phase = "rest"

	// PhaseSetRest is the rest between two sets.
	PhaseSetRest Phase = "set_rest"

	// PhaseRunning is used by countdown and stopwatch while counting.
	PhaseRunning Phase = "running"

	// PhaseCompleted indicates the session finished.
	PhaseCompleted Phase = "completed"
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	return string(p)
}

// IsTerminal reports whether no further transitions happen without a reset.
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted
}

// IsActive reports whether p is a phase entered after start and before completion.
func (p Phase) IsActive() bool {
	switch p {
	case PhasePreparing, PhaseWork, PhaseRest, PhaseSetRest, PhaseRunning:
		return true
	default:
		return false
	}
}
