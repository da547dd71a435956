package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()                  { f.stopped.Store(true) }

type countingTarget struct {
	ticks chan struct{}
}

func (c *countingTarget) Tick() { c.ticks <- struct{}{} }

func TestDriver_TicksUntilCanceled(t *testing.T) {
	ticker := &fakeTicker{ch: make(chan time.Time)}
	var gotInterval time.Duration
	target := &countingTarget{ticks: make(chan struct{}, 10)}

	d := NewDriver(target,
		WithInterval(250*time.Millisecond),
		WithTickerFactory(func(interval time.Duration) Ticker {
			gotInterval = interval
			return ticker
		}),
	)
	assert.Equal(t, 250*time.Millisecond, d.Interval())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	for range 3 {
		ticker.ch <- time.Now()
		<-target.ticks
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "driver did not stop")
	}
	assert.True(t, ticker.stopped.Load())
	assert.Equal(t, 250*time.Millisecond, gotInterval)
}

func TestDriver_DrivesEngine(t *testing.T) {
	e := newTabataEngine(t, tabata(2, 0, 1, 1, 0))
	require.NoError(t, e.Start())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	e.Subscribe(func(ev Event) {
		if ev.Type == EventCompleted {
			close(done)
		}
	})

	d := NewDriver(e, WithInterval(5*time.Millisecond))
	go func() { _ = d.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "engine did not complete")
	}
	assert.True(t, e.Snapshot().IsCompleted)
}

func TestDriver_DefaultInterval(t *testing.T) {
	d := NewDriver(&countingTarget{}, WithInterval(0), WithTickerFactory(nil))
	assert.Equal(t, time.Second, d.Interval())
}
