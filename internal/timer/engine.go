// Package timer implements the interval-training timer: the tick-driven
// Engine for tabata, countdown and stopwatch sessions, the SequenceManager
// that chains named tabata configurations, and the Driver that feeds the
// engine from a periodic trigger.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/store, internal/link, internal/cli
package timer

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transition and rejection messages.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPrepareSeconds sets the lead-in before the first work phase of a
// tabata session, clamped to [0, MaxPhaseSeconds]. Zero (the default) skips
// the preparing phase.
func WithPrepareSeconds(seconds int) Option {
	return func(e *Engine) {
		e.prepareSeconds = min(max(seconds, 0), constants.MaxPhaseSeconds)
	}
}

// WithConfigStore makes the engine use store instead of a fresh default one.
// The engine takes ownership of store.
func WithConfigStore(store *ConfigStore) Option {
	return func(e *Engine) {
		if store != nil {
			e.cfg = store
		}
	}
}

type subscription struct {
	id int
	fn Listener
}

// Engine is the timer state machine. Every exported method is safe for
// concurrent use, but Tick is expected to come from a single periodic source.
//
// State changes happen under the engine lock; the resulting events are
// queued and delivered in order after the lock is released, so listeners
// may call back into the engine.
type Engine struct {
	mu sync.Mutex

	cfg    *ConfigStore
	active domain.TabataConfig
	st     domain.RuntimeState

	prepareSeconds int
	logger         zerolog.Logger

	subs       []subscription
	nextSubID  int
	queue      []Event
	delivering bool
}

// New creates an engine in tabata mode, idle, with counters at their minimums.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:    NewConfigStore(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.st.Mode = constants.ModeTabata
	e.resetLocked()
	return e
}

// Subscribe registers fn for every subsequent event. The returned function
// removes the subscription; calling it more than once is harmless.
func (e *Engine) Subscribe(fn Listener) (unsubscribe func()) {
	e.mu.Lock()
	e.nextSubID++
	id := e.nextSubID
	e.subs = append(e.subs, subscription{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, s := range e.subs {
				if s.id == id {
					e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() domain.RuntimeState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// PrepareSeconds returns the configured lead-in length.
func (e *Engine) PrepareSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prepareSeconds
}

// Sequence returns the manager for the engine's sequence.
func (e *Engine) Sequence() *SequenceManager {
	return &SequenceManager{e: e}
}

// SetMode switches the active mode and resets it to idle. It is rejected
// with ErrModeChangeWhileRunning while a session is running.
func (e *Engine) SetMode(mode constants.TimerMode) error {
	return e.do(func() error {
		if !mode.Valid() {
			return errors.Wrapf(errors.ErrInvalidMode, "%q", mode)
		}
		if e.st.IsRunning {
			e.logger.Debug().
				Str("from", e.st.Mode.String()).
				Str("to", mode.String()).
				Msg("mode change rejected while running")
			return errors.ErrModeChangeWhileRunning
		}
		prev := e.st.Phase
		e.st.Mode = mode
		e.resetLocked()
		e.emitLocked(EventStateChange, prev)
		return nil
	})
}

// Start begins or resumes the session. It is a no-op when already running
// and returns ErrSessionCompleted for a completed countdown or tabata session.
func (e *Engine) Start() error {
	return e.do(func() error {
		if e.st.IsRunning {
			return nil
		}
		if e.st.IsCompleted && e.st.Mode != constants.ModeStopwatch {
			return errors.ErrSessionCompleted
		}
		prev := e.st.Phase
		e.st.IsRunning = true

		if prev == constants.PhaseIdle {
			switch e.st.Mode {
			case constants.ModeTabata:
				e.st.CurrentCycle, e.st.CurrentSet = 1, 1
				if e.prepareSeconds > 0 {
					e.enterPhaseLocked(constants.PhasePreparing, e.prepareSeconds)
				} else {
					e.enterPhaseLocked(constants.PhaseWork, e.active.WorkSeconds)
				}
			case constants.ModeCountdown, constants.ModeStopwatch:
				e.enterPhaseLocked(constants.PhaseRunning, e.st.TimeLeftSeconds)
			}
		}

		e.logger.Debug().
			Str("mode", e.st.Mode.String()).
			Str("phase", e.st.Phase.String()).
			Int("time_left", e.st.TimeLeftSeconds).
			Msg("timer started")
		e.emitLocked(EventStateChange, prev)
		return nil
	})
}

// Pause stops counting without touching any counter.
func (e *Engine) Pause() error {
	return e.do(func() error {
		if !e.st.IsRunning {
			return nil
		}
		e.st.IsRunning = false
		e.emitLocked(EventStateChange, e.st.Phase)
		return nil
	})
}

// Reset returns the active mode to idle. Configuration, the sequence and the
// sequence-mode flag are kept; in sequence mode playback rewinds to entry 0.
func (e *Engine) Reset() error {
	return e.do(func() error {
		prev := e.st.Phase
		e.resetLocked()
		e.emitLocked(EventStateChange, prev)
		return nil
	})
}

// Tick advances the session by one interval. It does nothing unless running.
func (e *Engine) Tick() {
	_ = e.do(func() error {
		if !e.st.IsRunning {
			return nil
		}
		switch e.st.Mode {
		case constants.ModeStopwatch:
			e.st.ElapsedSeconds++
			e.emitLocked(EventTick, e.st.Phase)
		case constants.ModeCountdown:
			e.st.TimeLeftSeconds--
			if e.st.TimeLeftSeconds <= 0 {
				e.completeLocked()
				return nil
			}
			e.emitLocked(EventTick, e.st.Phase)
		case constants.ModeTabata:
			e.st.TimeLeftSeconds--
			if e.st.TimeLeftSeconds > 0 {
				e.emitLocked(EventTick, e.st.Phase)
				return nil
			}
			e.advanceTabataLocked()
		}
		return nil
	})
}

// UpdateTabataConfig replaces the standalone tabata configuration. Invalid
// input is rejected and the last valid configuration stays in effect. While
// idle the new work duration is shown at once; mid-session only phases not
// yet entered see the change.
func (e *Engine) UpdateTabataConfig(cfg domain.TabataConfig) error {
	return e.do(func() error {
		if err := e.cfg.SetTabata(cfg); err != nil {
			e.logger.Warn().Err(err).Msg("tabata configuration rejected")
			return err
		}
		if !e.st.IsSequenceMode {
			e.active = cfg
		}
		e.syncIdleLocked()
		e.emitLocked(EventStateChange, e.st.Phase)
		return nil
	})
}

// UpdateCountdownConfig replaces the countdown configuration. Invalid input
// is rejected and the last valid configuration stays in effect.
func (e *Engine) UpdateCountdownConfig(cfg domain.CountdownConfig) error {
	return e.do(func() error {
		if err := e.cfg.SetCountdown(cfg); err != nil {
			e.logger.Warn().Err(err).Msg("countdown configuration rejected")
			return err
		}
		e.syncIdleLocked()
		e.emitLocked(EventStateChange, e.st.Phase)
		return nil
	})
}

// Settings returns the configuration worth persisting between runs.
func (e *Engine) Settings() domain.TimerSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.TimerSettings{
		Mode:          e.st.Mode,
		Tabata:        e.cfg.Tabata(),
		Countdown:     e.cfg.Countdown(),
		Sequence:      e.cfg.Entries(),
		SequenceMode:  e.st.IsSequenceMode,
		SchemaVersion: constants.RecordSchemaVersion,
	}
}

// Restore loads previously saved settings and resets the engine. Invalid
// parts are skipped with a warning and the current values are kept for them.
func (e *Engine) Restore(s domain.TimerSettings) error {
	return e.do(func() error {
		if e.st.IsRunning {
			return errors.ErrModeChangeWhileRunning
		}
		prev := e.st.Phase

		if s.Mode.Valid() {
			e.st.Mode = s.Mode
		} else if s.Mode != "" {
			e.logger.Warn().Str("mode", s.Mode.String()).Msg("ignoring saved timer mode")
		}
		if err := e.cfg.SetTabata(s.Tabata); err != nil {
			e.logger.Warn().Err(err).Msg("ignoring saved tabata configuration")
		}
		if err := e.cfg.SetCountdown(s.Countdown); err != nil {
			e.logger.Warn().Err(err).Msg("ignoring saved countdown configuration")
		}

		e.cfg.Clear()
		for i, entry := range s.Sequence {
			if _, err := e.cfg.Append(entry.Name, entry.TabataConfig); err != nil {
				e.logger.Warn().Err(err).Int("index", i).Msg("skipping saved sequence entry")
			}
		}
		e.st.IsSequenceMode = s.SequenceMode && e.cfg.Len() > 0

		e.resetLocked()
		e.emitLocked(EventStateChange, prev)
		return nil
	})
}

// do runs fn under the lock and then delivers whatever it queued.
func (e *Engine) do(fn func() error) error {
	e.mu.Lock()
	err := fn()
	e.mu.Unlock()
	e.flush()
	return err
}

// flush delivers queued events. Only one goroutine delivers at a time, which
// keeps events in the order they were produced; a listener that calls back
// into the engine only appends to the queue.
func (e *Engine) flush() {
	e.mu.Lock()
	if e.delivering {
		e.mu.Unlock()
		return
	}
	e.delivering = true
	for len(e.queue) > 0 {
		batch := e.queue
		e.queue = nil
		subs := make([]subscription, len(e.subs))
		copy(subs, e.subs)
		e.mu.Unlock()

		for _, ev := range batch {
			for _, s := range subs {
				s.fn(ev)
			}
		}

		e.mu.Lock()
	}
	e.delivering = false
	e.mu.Unlock()
}

func (e *Engine) emitLocked(typ EventType, prev constants.Phase) {
	if len(e.subs) == 0 {
		return
	}
	e.queue = append(e.queue, Event{Type: typ, Previous: prev, State: e.snapshotLocked()})
}

func (e *Engine) snapshotLocked() domain.RuntimeState {
	s := e.st.Clone()
	s.Sequence = e.cfg.Entries()
	s.Tabata = e.active
	s.Countdown = e.cfg.Countdown()
	return s
}

// baseConfigLocked is the tabata configuration a session starts from: the
// entry under the cursor in sequence mode, the standalone one otherwise.
func (e *Engine) baseConfigLocked() domain.TabataConfig {
	if e.st.IsSequenceMode {
		if entry, err := e.cfg.Entry(e.st.CurrentSequenceIndex); err == nil {
			return entry.TabataConfig
		}
	}
	return e.cfg.Tabata()
}

func (e *Engine) resetLocked() {
	if e.st.IsSequenceMode {
		e.st.CurrentSequenceIndex = 0
	}
	e.st.Phase = constants.PhaseIdle
	e.st.IsRunning = false
	e.st.IsCompleted = false
	e.st.ElapsedSeconds = 0
	e.st.CurrentCycle = 1
	e.st.CurrentSet = 1
	e.st.TimeLeftSeconds = 0
	e.syncIdleLocked()
}

// syncIdleLocked makes an idle session reflect the current configuration.
func (e *Engine) syncIdleLocked() {
	if e.st.Phase != constants.PhaseIdle {
		return
	}
	e.active = e.baseConfigLocked()
	switch e.st.Mode {
	case constants.ModeTabata:
		// An idle session shows the length of the phase Start enters first.
		if e.prepareSeconds > 0 {
			e.st.TimeLeftSeconds = e.prepareSeconds
		} else {
			e.st.TimeLeftSeconds = e.active.WorkSeconds
		}
	case constants.ModeCountdown:
		e.st.TimeLeftSeconds = e.cfg.Countdown().TotalSeconds()
	case constants.ModeStopwatch:
		e.st.TimeLeftSeconds = 0
	}
}

// completeLocked ends the session. It is also used to abort playback whose
// entry was removed, so it does not consult the transition table.
func (e *Engine) completeLocked() {
	prev := e.st.Phase
	e.st.Phase = constants.PhaseCompleted
	e.st.TimeLeftSeconds = 0
	e.st.IsRunning = false
	e.st.IsCompleted = true
	e.logger.Debug().
		Str("mode", e.st.Mode.String()).
		Str("from", prev.String()).
		Msg("session completed")
	e.emitLocked(EventCompleted, prev)
}
