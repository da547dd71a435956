package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
)

func TestTabataSteps(t *testing.T) {
	steps := TabataSteps(tabata(20, 10, 2, 2, 60))

	want := []Step{
		{Phase: constants.PhaseWork, Cycle: 1, Set: 1, Seconds: 20},
		{Phase: constants.PhaseRest, Cycle: 1, Set: 1, Seconds: 10},
		{Phase: constants.PhaseWork, Cycle: 2, Set: 1, Seconds: 20},
		{Phase: constants.PhaseSetRest, Cycle: 2, Set: 2, Seconds: 60},
		{Phase: constants.PhaseWork, Cycle: 1, Set: 2, Seconds: 20},
		{Phase: constants.PhaseRest, Cycle: 1, Set: 2, Seconds: 10},
		{Phase: constants.PhaseWork, Cycle: 2, Set: 2, Seconds: 20},
	}
	assert.Equal(t, want, steps)
}

func TestTabataSteps_ZeroRestsOmitted(t *testing.T) {
	for _, step := range TabataSteps(tabata(5, 0, 3, 3, 0)) {
		assert.Equal(t, constants.PhaseWork, step.Phase)
	}
	assert.Len(t, TabataSteps(tabata(5, 0, 3, 3, 0)), 9)
}

func TestTabataSteps_InvalidConfigHasNoSteps(t *testing.T) {
	assert.Nil(t, TabataSteps(tabata(20, 10, 1<<31, 1<<31, 0)))
	assert.Nil(t, TabataSteps(tabata(0, 10, 2, 1, 0)))
}

func TestBuildPlan_Tabata(t *testing.T) {
	cfg := domain.DefaultTabataConfig()
	state := domain.RuntimeState{Mode: constants.ModeTabata, Tabata: cfg}

	plan := BuildPlan(state, 0)
	assert.Equal(t, constants.ModeTabata, plan.Mode)
	assert.Equal(t, cfg.TotalSeconds(), plan.TotalSeconds)
	assert.Equal(t, 230*time.Second, plan.Duration())

	last := plan.Steps[len(plan.Steps)-1]
	assert.Equal(t, plan.TotalSeconds, last.StartsAt+last.Seconds)

	withPrepare := BuildPlan(state, 10)
	require.NotEmpty(t, withPrepare.Steps)
	assert.Equal(t, constants.PhasePreparing, withPrepare.Steps[0].Phase)
	assert.Equal(t, 10, withPrepare.Steps[1].StartsAt)
	assert.Equal(t, cfg.TotalSeconds()+10, withPrepare.TotalSeconds)
}

func TestBuildPlan_Sequence(t *testing.T) {
	entries := []domain.NamedTabataEntry{
		{Name: "Warmup", TabataConfig: tabata(5, 5, 1, 1, 0)},
		{Name: "Finisher", TabataConfig: tabata(3, 0, 2, 1, 0)},
	}
	state := domain.RuntimeState{
		Mode:           constants.ModeTabata,
		IsSequenceMode: true,
		Sequence:       entries,
		Tabata:         entries[0].TabataConfig,
	}

	plan := BuildPlan(state, 0)
	require.Len(t, plan.Steps, 3)
	assert.Equal(t, "Warmup", plan.Steps[0].Entry)
	assert.Equal(t, 0, plan.Steps[0].EntryIndex)
	assert.Equal(t, "Finisher", plan.Steps[2].Entry)
	assert.Equal(t, 1, plan.Steps[2].EntryIndex)
	assert.Equal(t, 11, plan.TotalSeconds)
	assert.Equal(t, SequenceSeconds(entries), plan.TotalSeconds)
}

func TestBuildPlan_CountdownAndStopwatch(t *testing.T) {
	countdown := BuildPlan(domain.RuntimeState{
		Mode:      constants.ModeCountdown,
		Countdown: domain.CountdownConfig{Minutes: 1, Seconds: 5},
	}, 10)
	require.Len(t, countdown.Steps, 1)
	assert.Equal(t, constants.PhaseRunning, countdown.Steps[0].Phase)
	assert.Equal(t, 65, countdown.TotalSeconds)

	stopwatch := BuildPlan(domain.RuntimeState{Mode: constants.ModeStopwatch}, 10)
	assert.Empty(t, stopwatch.Steps)
	assert.Equal(t, 0, stopwatch.TotalSeconds)
}

func TestBuildPlan_LargestTabata(t *testing.T) {
	cfg := tabata(constants.MaxPhaseSeconds, constants.MaxPhaseSeconds,
		constants.MaxCyclesPerSet, constants.MaxTotalSets, constants.MaxPhaseSeconds)
	require.NoError(t, cfg.Validate())

	e := New(WithPrepareSeconds(constants.MaxPhaseSeconds))
	require.NoError(t, e.UpdateTabataConfig(cfg))

	plan := BuildPlan(e.Snapshot(), e.PrepareSeconds())

	sets, cycles := constants.MaxTotalSets, constants.MaxCyclesPerSet
	wantSteps := 1 + sets*cycles + sets*(cycles-1) + (sets - 1)
	assert.Len(t, plan.Steps, wantSteps)
	assert.Equal(t, constants.MaxPhaseSeconds+cfg.TotalSeconds(), plan.TotalSeconds)
	assert.Equal(t, time.Duration(cfg.TotalSeconds())*time.Second, TotalDuration(cfg))
	assert.Equal(t, 71_996_400, cfg.TotalSeconds())
}
