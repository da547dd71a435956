package timer

import (
	"slices"

	"github.com/clangoi/judotimer/internal/constants"
)

// ValidPhaseTransitions lists the phase changes a tick (or a start from idle)
// may produce. Reset to idle and forced completion bypass this table.
//
//	Idle → Preparing, Work, Running
//	Preparing → Work
//	Work → Rest, Work, SetRest, Completed
//	Rest → Work
//	SetRest → Work
//	Running → Completed
//
// Work → Work covers a zero rest, a zero set rest, and advancing to the next
// sequence entry.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidPhaseTransitions = map[constants.Phase][]constants.Phase{
	constants.PhaseIdle:      {constants.PhasePreparing, constants.PhaseWork, constants.PhaseRunning},
	constants.PhasePreparing: {constants.PhaseWork},
	constants.PhaseWork: {
		constants.PhaseRest,
		constants.PhaseWork,
		constants.PhaseSetRest,
		constants.PhaseCompleted,
	},
	constants.PhaseRest:    {constants.PhaseWork},
	constants.PhaseSetRest: {constants.PhaseWork},
	constants.PhaseRunning: {constants.PhaseCompleted},
}

// IsValidPhaseTransition reports whether the table allows from → to.
func IsValidPhaseTransition(from, to constants.Phase) bool {
	return slices.Contains(ValidPhaseTransitions[from], to)
}

// tabataExpiry handles the end of a tabata phase, keyed by the phase that ran out.
//
//nolint:gochecknoglobals // Read-only dispatch table
var tabataExpiry = map[constants.Phase]func(*Engine){
	constants.PhasePreparing: (*Engine).finishPreparingLocked,
	constants.PhaseWork:      (*Engine).finishWorkLocked,
	constants.PhaseRest:      (*Engine).finishRestLocked,
	constants.PhaseSetRest:   (*Engine).finishSetRestLocked,
}

// advanceTabataLocked is called when the current tabata phase reached zero.
func (e *Engine) advanceTabataLocked() {
	next, ok := tabataExpiry[e.st.Phase]
	if !ok {
		e.logger.Error().Str("phase", e.st.Phase.String()).Msg("tick in phase without expiry handler")
		e.completeLocked()
		return
	}
	next(e)
}

// enterPhaseLocked moves to phase `to` with timeLeft seconds on the clock.
func (e *Engine) enterPhaseLocked(to constants.Phase, timeLeft int) {
	if !IsValidPhaseTransition(e.st.Phase, to) {
		e.logger.Error().
			Str("from", e.st.Phase.String()).
			Str("to", to.String()).
			Msg("unexpected phase transition")
	}
	e.st.Phase = to
	e.st.TimeLeftSeconds = timeLeft
}

// startWorkLocked enters a work phase and announces it.
func (e *Engine) startWorkLocked(typ EventType) {
	prev := e.st.Phase
	e.enterPhaseLocked(constants.PhaseWork, e.active.WorkSeconds)
	e.logger.Debug().
		Int("cycle", e.st.CurrentCycle).
		Int("set", e.st.CurrentSet).
		Int("entry", e.st.CurrentSequenceIndex).
		Msg("work phase")
	e.emitLocked(typ, prev)
}

func (e *Engine) finishPreparingLocked() {
	e.st.CurrentCycle, e.st.CurrentSet = 1, 1
	e.startWorkLocked(EventPhaseChange)
}

func (e *Engine) finishWorkLocked() {
	if e.st.CurrentCycle >= e.active.CyclesPerSet {
		e.finishSetLocked()
		return
	}
	if e.active.RestSeconds == 0 {
		e.st.CurrentCycle++
		e.startWorkLocked(EventPhaseChange)
		return
	}
	prev := e.st.Phase
	e.enterPhaseLocked(constants.PhaseRest, e.active.RestSeconds)
	e.emitLocked(EventPhaseChange, prev)
}

func (e *Engine) finishRestLocked() {
	e.st.CurrentCycle++
	e.startWorkLocked(EventPhaseChange)
}

func (e *Engine) finishSetRestLocked() {
	e.st.CurrentCycle = 1
	e.startWorkLocked(EventPhaseChange)
}

// finishSetLocked runs when the last cycle's work phase of a set ended.
func (e *Engine) finishSetLocked() {
	if e.st.CurrentSet >= e.active.TotalSets {
		e.finishUnitLocked()
		return
	}
	e.st.CurrentSet++
	if e.active.RestBetweenSetsSeconds == 0 {
		e.st.CurrentCycle = 1
		e.startWorkLocked(EventPhaseChange)
		return
	}
	prev := e.st.Phase
	e.enterPhaseLocked(constants.PhaseSetRest, e.active.RestBetweenSetsSeconds)
	e.emitLocked(EventPhaseChange, prev)
}

// finishUnitLocked runs when the last set of the active configuration ended.
// In sequence mode playback continues with the next entry.
func (e *Engine) finishUnitLocked() {
	if e.st.IsSequenceMode {
		next := e.st.CurrentSequenceIndex + 1
		if entry, err := e.cfg.Entry(next); err == nil {
			e.st.CurrentSequenceIndex = next
			e.active = entry.TabataConfig
			e.st.CurrentCycle, e.st.CurrentSet = 1, 1
			e.logger.Debug().
				Int("entry", next).
				Str("name", entry.Name).
				Msg("sequence advanced")
			e.startWorkLocked(EventSequenceAdvance)
			return
		}
	}
	e.completeLocked()
}
