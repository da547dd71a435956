package link

import (
	"context"
	"slices"
	"sync"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

// Transport moves snapshots between linked instances.
type Transport interface {
	// Send delivers snap to the other side.
	Send(ctx context.Context, snap domain.Snapshot) error

	// OnReceive registers the handler for incoming snapshots.
	OnReceive(fn func(domain.Snapshot))
}

// AttachTransport connects the manager to t. Incoming snapshots for the
// linked code are merged into the data bag; the manager's own echoes and
// snapshots for other codes are dropped.
func (m *Manager) AttachTransport(t Transport) {
	m.mu.Lock()
	m.transport = t
	m.mu.Unlock()
	t.OnReceive(m.receive)
}

// Push sends the current data bag to the linked device.
func (m *Manager) Push(ctx context.Context) error {
	m.mu.Lock()
	t := m.transport
	linked := m.status.IsLinked
	snap := domain.Snapshot{
		Origin:     m.origin,
		DeviceCode: m.status.DeviceCode,
		Data:       m.data.Clone(),
		SentAt:     m.clock.Now(),
	}
	m.mu.Unlock()

	if !linked {
		return errors.ErrNotLinked
	}
	if t == nil {
		return errors.ErrTransportNotAttached
	}
	if err := t.Send(ctx, snap); err != nil {
		return errors.Wrap(err, "failed to push sync data")
	}

	m.update(func() bool {
		m.touchLocked()
		return true
	})
	m.logger.Debug().Int("keys", len(snap.Data)).Msg("sync data pushed")
	return nil
}

func (m *Manager) receive(snap domain.Snapshot) {
	if snap.Origin == m.origin {
		return
	}
	var accepted bool
	m.update(func() bool {
		if !m.status.IsLinked || snap.DeviceCode != m.status.DeviceCode {
			return false
		}
		m.data.Merge(snap.Data)
		m.touchLocked()
		accepted = true
		return true
	})
	if !accepted {
		m.logger.Debug().Str("origin", snap.Origin).Msg("ignoring snapshot for another link")
		return
	}
	m.logger.Debug().Str("origin", snap.Origin).Int("keys", len(snap.Data)).Msg("sync data received")
}

// LoopbackHub connects transports in the same process. Every snapshot sent
// through one of its transports is handed to every registered handler,
// including the sender's own.
type LoopbackHub struct {
	mu       sync.Mutex
	handlers []func(domain.Snapshot)
}

// NewLoopbackHub returns an empty hub.
func NewLoopbackHub() *LoopbackHub {
	return &LoopbackHub{}
}

// Transport returns a new endpoint on the hub.
func (h *LoopbackHub) Transport() Transport {
	return &loopbackTransport{hub: h}
}

type loopbackTransport struct {
	hub *LoopbackHub
}

func (t *loopbackTransport) Send(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.hub.mu.Lock()
	handlers := slices.Clone(t.hub.handlers)
	t.hub.mu.Unlock()

	for _, h := range handlers {
		h(domain.Snapshot{
			Origin:     snap.Origin,
			DeviceCode: snap.DeviceCode,
			Data:       snap.Data.Clone(),
			SentAt:     snap.SentAt,
		})
	}
	return nil
}

func (t *loopbackTransport) OnReceive(fn func(domain.Snapshot)) {
	t.hub.mu.Lock()
	t.hub.handlers = append(t.hub.handlers, fn)
	t.hub.mu.Unlock()
}
