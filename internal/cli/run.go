package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/signal"
	"github.com/clangoi/judotimer/internal/timer"
	"github.com/clangoi/judotimer/internal/tui"
)

// newTicker creates the periodic trigger for the run command.
//
//nolint:gochecknoglobals // Test injection point - standard Go testing pattern
var newTicker timer.TickerFactory = timer.NewRealTicker

// runOptions holds the run command flags. Only flags the user set are
// applied on top of the saved settings.
type runOptions struct {
	tabata   tabataFlags
	minutes  int
	seconds  int
	sequence bool
	prepare  int
	tick     time.Duration
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command) {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:       "run [tabata|countdown|stopwatch]",
		Short:     "Run a timer session",
		ValidArgs: []string{"tabata", "countdown", "stopwatch"},
		Long: `Run a tabata, countdown or stopwatch session in the terminal.

Without a mode argument the last used mode is run. Flags change the saved
settings for this and later runs. Press Ctrl+C to pause and leave with a summary.

Examples:
  judotimer run                                  # Last used mode and settings
  judotimer run tabata --work 30 --rest 15       # 30s on, 15s off
  judotimer run tabata --sets 3 --set-rest 90    # Three sets with 90s between
  judotimer run tabata --sequence                # Play the saved sequence
  judotimer run countdown --minutes 3            # Three minute round
  judotimer run stopwatch -o json                # Event stream as JSON lines`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd.Context(), cmd, cmd.OutOrStdout(), args, opts)
		},
	}

	opts.tabata.register(cmd.Flags())
	cmd.Flags().IntVar(&opts.minutes, "minutes", 0, "countdown minutes")
	cmd.Flags().IntVar(&opts.seconds, "seconds", 0, "countdown seconds (0-59)")
	cmd.Flags().BoolVar(&opts.sequence, "sequence", false, "play the saved sequence instead of a single tabata")
	cmd.Flags().IntVar(&opts.prepare, "prepare", 0, "lead-in seconds before the first work phase")
	cmd.Flags().DurationVar(&opts.tick, "tick", constants.DefaultTickInterval, "wall-clock time per timer second")

	root.AddCommand(cmd)
}

// runTimer applies the flags, persists the resulting settings and runs the
// session until it completes or is interrupted.
func runTimer(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string, opts *runOptions) error {
	logger := GetLogger()
	output := cmd.Flag("output").Value.String()

	var extra []timer.Option
	if cmd.Flags().Changed("prepare") {
		if opts.prepare < 0 || opts.prepare > constants.MaxPhaseSeconds {
			return errors.NewExitCode2Error(errors.Wrapf(errors.ErrInvalidArgument,
				"--prepare must be between 0 and %d, got %d", constants.MaxPhaseSeconds, opts.prepare))
		}
		extra = append(extra, timer.WithPrepareSeconds(opts.prepare))
	}

	a, err := openApp(ctx, logger, extra...)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	interval := a.cfg.Timer.TickInterval
	if cmd.Flags().Changed("tick") {
		interval = opts.tick
	}
	if interval < constants.MinTickInterval || interval > constants.MaxTickInterval {
		return errors.NewExitCode2Error(errors.Wrapf(errors.ErrInvalidArgument,
			"--tick must be between %s and %s, got %s", constants.MinTickInterval, constants.MaxTickInterval, interval))
	}

	if err := applyRunFlags(cmd, a.engine, args, opts); err != nil {
		return err
	}
	a.saveSettings()

	return driveSession(ctx, a.engine, w, output, interval)
}

// applyRunFlags switches mode and updates the configurations from the flags
// the user set.
func applyRunFlags(cmd *cobra.Command, engine *timer.Engine, args []string, opts *runOptions) error {
	if len(args) == 1 {
		if err := engine.SetMode(constants.TimerMode(args[0])); err != nil {
			return errors.NewExitCode2Error(err)
		}
	}

	flags := cmd.Flags()
	settings := engine.Settings()

	if tabata, changed := opts.tabata.apply(flags, settings.Tabata); changed {
		if err := engine.UpdateTabataConfig(tabata); err != nil {
			return errors.NewExitCode2Error(err)
		}
	}

	if flags.Changed("minutes") || flags.Changed("seconds") {
		countdown := settings.Countdown
		if flags.Changed("minutes") {
			countdown.Minutes = opts.minutes
		}
		if flags.Changed("seconds") {
			countdown.Seconds = opts.seconds
		}
		if err := engine.UpdateCountdownConfig(countdown); err != nil {
			return errors.NewExitCode2Error(err)
		}
	}

	if flags.Changed("sequence") {
		if err := engine.Sequence().EnableSequenceMode(opts.sequence); err != nil {
			return err
		}
	}
	return nil
}

// driveSession starts the engine and ticks it until the session completes
// or a signal pauses it. Events are rendered as they arrive.
func driveSession(ctx context.Context, engine *timer.Engine, w io.Writer, output string, interval time.Duration) error {
	logger := GetLogger()

	h := signal.NewHandler(ctx)
	defer h.Stop()
	h.OnInterrupt(func(sig os.Signal) {
		logger.Debug().Str("signal", sig.String()).Msg("pausing timer on signal")
		_ = engine.Pause()
	})

	runCtx, cancel := context.WithCancel(h.Context())
	defer cancel()

	plan := timer.BuildPlan(engine.Snapshot(), engine.PrepareSeconds())
	r := newEventRenderer(w, output, plan.TotalSeconds)
	done := make(chan struct{})
	var doneOnce sync.Once
	unsubscribe := engine.Subscribe(func(ev timer.Event) {
		r.render(ev)
		if ev.Type == timer.EventCompleted {
			doneOnce.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	if err := engine.Start(); err != nil {
		return err
	}

	driver := timer.NewDriver(engine,
		timer.WithInterval(interval),
		timer.WithTickerFactory(newTicker),
		timer.WithDriverLogger(logger),
	)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return driver.Run(gctx)
	})
	g.Go(func() error {
		select {
		case <-done:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// Make sure nothing ticks after the summary is taken.
	_ = engine.Pause()
	unsubscribe()

	st := engine.Snapshot()
	r.finish()
	logger.Info().
		Str("mode", st.Mode.String()).
		Str("phase", st.Phase.String()).
		Bool("completed", st.IsCompleted).
		Msg("session ended")

	if output == OutputJSON {
		return nil
	}
	return writeSummary(w, st)
}

// writeSummary prints where the session ended.
func writeSummary(w io.Writer, st domain.RuntimeState) error {
	var err error
	switch {
	case st.IsCompleted:
		_, err = fmt.Fprintf(w, "%s %s session complete\n", checkmark(), modeLabel(st.Mode))
	case st.Mode == constants.ModeStopwatch:
		_, err = fmt.Fprintf(w, "%s Stopwatch stopped at %s\n", warnStyle.Render("⏸"), formatClock(st.ElapsedSeconds))
	default:
		_, err = fmt.Fprintf(w, "%s Paused in %s with %s left\n", warnStyle.Render("⏸"), phaseLabel(st.Phase), formatClock(st.TimeLeftSeconds))
		if err == nil && st.Mode == constants.ModeTabata {
			_, err = fmt.Fprintf(w, "  cycle %d/%d, set %d/%d\n", st.CurrentCycle, st.Tabata.CyclesPerSet, st.CurrentSet, st.Tabata.TotalSets)
		}
	}
	return err
}

// eventRenderer writes engine events as status lines or JSON lines. Events
// arrive from the tick goroutine. In-place status lines carry a progress bar
// over the planned session length.
type eventRenderer struct {
	mu       sync.Mutex
	w        io.Writer
	json     bool
	inPlace  bool
	dirty    bool
	progress *tui.SessionProgress
	bar      *tui.ProgressBar
}

func newEventRenderer(w io.Writer, output string, totalSeconds int) *eventRenderer {
	return &eventRenderer{
		w:        w,
		json:     output == OutputJSON,
		inPlace:  output != OutputJSON && isTerminalWriter(w),
		progress: tui.NewSessionProgress(totalSeconds),
		bar:      tui.NewProgressBar(tui.DefaultBarWidth),
	}
}

func (r *eventRenderer) render(ev timer.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Every event except a command's state change stands for one tick.
	switch ev.Type {
	case timer.EventStateChange:
	case timer.EventCompleted:
		r.progress.Complete()
	default:
		r.progress.Advance()
	}

	if r.json {
		_ = writeJSONLine(r.w, ev)
		return
	}

	line := statusLine(ev.State)
	if ev.Type == timer.EventSequenceAdvance {
		if entry, ok := ev.State.CurrentEntry(); ok {
			r.breakLine()
			_, _ = fmt.Fprintf(r.w, "%s next: %s\n", dimStyle.Render("→"), entry.Name)
		}
	}

	if r.inPlace {
		// Phase changes keep their line so the scrollback shows the session.
		if ev.Type == timer.EventPhaseChange || ev.Type == timer.EventCompleted {
			r.breakLine()
		}
		if r.progress.Known() {
			line += "  " + r.bar.Render(r.progress.Percent())
		}
		_, _ = fmt.Fprintf(r.w, "\r\033[K%s", line)
		r.dirty = true
		return
	}
	_, _ = fmt.Fprintln(r.w, line)
}

// breakLine ends an in-place status line.
func (r *eventRenderer) breakLine() {
	if r.dirty {
		_, _ = fmt.Fprintln(r.w)
		r.dirty = false
	}
}

func (r *eventRenderer) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakLine()
}

// writeJSONLine writes v as a single compact JSON line.
func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
