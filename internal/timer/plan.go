package timer

import (
	"time"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
)

// Step is one phase of an expanded schedule. Cycle and Set carry the values
// the engine shows while the phase runs.
type Step struct {
	EntryIndex int             `json:"entry_index"`
	Entry      string          `json:"entry,omitempty"`
	Phase      constants.Phase `json:"phase"`
	Cycle      int             `json:"cycle"`
	Set        int             `json:"set"`
	Seconds    int             `json:"seconds"`

	// StartsAt is the offset of the step from the start of the session.
	StartsAt int `json:"starts_at"`
}

// Plan is the full schedule of a session.
type Plan struct {
	Mode         constants.TimerMode `json:"mode"`
	Steps        []Step              `json:"steps"`
	TotalSeconds int                 `json:"total_seconds"`
}

// Duration returns the plan length.
func (p Plan) Duration() time.Duration {
	return time.Duration(p.TotalSeconds) * time.Second
}

// TotalDuration is the length of a tabata session run with cfg.
func TotalDuration(cfg domain.TabataConfig) time.Duration {
	return time.Duration(cfg.TotalSeconds()) * time.Second
}

// SequenceSeconds is the length of playing every entry back to back.
func SequenceSeconds(entries []domain.NamedTabataEntry) int {
	total := 0
	for _, entry := range entries {
		total += entry.TotalSeconds()
	}
	return total
}

// TabataSteps expands cfg into its phases in the order the engine enters
// them. Zero-length rests are left out. A configuration that fails Validate
// has no steps.
func TabataSteps(cfg domain.TabataConfig) []Step {
	if cfg.Validate() != nil {
		return nil
	}
	steps := make([]Step, 0, cfg.TotalSets*cfg.CyclesPerSet*2)
	for set := 1; set <= cfg.TotalSets; set++ {
		for cycle := 1; cycle <= cfg.CyclesPerSet; cycle++ {
			steps = append(steps, Step{Phase: constants.PhaseWork, Cycle: cycle, Set: set, Seconds: cfg.WorkSeconds})
			if cycle < cfg.CyclesPerSet && cfg.RestSeconds > 0 {
				steps = append(steps, Step{Phase: constants.PhaseRest, Cycle: cycle, Set: set, Seconds: cfg.RestSeconds})
			}
		}
		if set < cfg.TotalSets && cfg.RestBetweenSetsSeconds > 0 {
			steps = append(steps, Step{
				Phase:   constants.PhaseSetRest,
				Cycle:   cfg.CyclesPerSet,
				Set:     set + 1,
				Seconds: cfg.RestBetweenSetsSeconds,
			})
		}
	}
	return steps
}

// BuildPlan expands the session state describes: the whole sequence in
// sequence mode, the active tabata configuration otherwise, or a single
// countdown step. A stopwatch has no plan.
func BuildPlan(state domain.RuntimeState, prepareSeconds int) Plan {
	plan := Plan{Mode: state.Mode}

	switch state.Mode {
	case constants.ModeTabata:
		if prepareSeconds > 0 {
			plan.Steps = append(plan.Steps, Step{Phase: constants.PhasePreparing, Cycle: 1, Set: 1, Seconds: prepareSeconds})
		}
		if state.IsSequenceMode && len(state.Sequence) > 0 {
			for i, entry := range state.Sequence {
				for _, step := range TabataSteps(entry.TabataConfig) {
					step.EntryIndex = i
					step.Entry = entry.Name
					plan.Steps = append(plan.Steps, step)
				}
			}
		} else {
			plan.Steps = append(plan.Steps, TabataSteps(state.Tabata)...)
		}
	case constants.ModeCountdown:
		plan.Steps = []Step{{Phase: constants.PhaseRunning, Cycle: 1, Set: 1, Seconds: state.Countdown.TotalSeconds()}}
	case constants.ModeStopwatch:
		return plan
	}

	offset := 0
	for i := range plan.Steps {
		plan.Steps[i].StartsAt = offset
		offset += plan.Steps[i].Seconds
	}
	plan.TotalSeconds = offset
	return plan
}
