package timer

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clangoi/judotimer/internal/constants"
)

// Tickable is anything advanced by a periodic trigger. *Engine implements it.
type Tickable interface {
	Tick()
}

// Ticker is the periodic trigger a Driver waits on.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	*time.Ticker
}

func (t realTicker) Chan() <-chan time.Time {
	return t.C
}

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithInterval sets the tick interval. Non-positive values keep the default.
func WithInterval(d time.Duration) DriverOption {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

// WithTickerFactory replaces the real ticker, mostly for tests.
func WithTickerFactory(f TickerFactory) DriverOption {
	return func(dr *Driver) {
		if f != nil {
			dr.newTicker = f
		}
	}
}

// WithDriverLogger sets the driver's logger.
func WithDriverLogger(logger zerolog.Logger) DriverOption {
	return func(dr *Driver) {
		dr.logger = logger
	}
}

// Driver calls Tick on its target once per interval until its context ends.
type Driver struct {
	target    Tickable
	interval  time.Duration
	newTicker TickerFactory
	logger    zerolog.Logger
}

// NewDriver creates a driver for target ticking every second by default.
func NewDriver(target Tickable, opts ...DriverOption) *Driver {
	d := &Driver{
		target:    target,
		interval:  constants.DefaultTickInterval,
		newTicker: NewRealTicker,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Interval returns the tick interval.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Run blocks, ticking the target, until ctx is done. Cancellation is the
// normal way to stop, so it returns nil.
func (d *Driver) Run(ctx context.Context) error {
	ticker := d.newTicker(d.interval)
	defer ticker.Stop()

	d.logger.Debug().Dur("interval", d.interval).Msg("tick driver started")
	ticks := 0
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug().Int("ticks", ticks).Msg("tick driver stopped")
			return nil
		case <-ticker.Chan():
			ticks++
			d.target.Tick()
		}
	}
}
