// Package link tracks the pairing between this judotimer instance and another
// device: device codes, linked state, and the shared data bag both sides
// mirror.
//
// Linking is cooperative. A code is a capability token shown on one device
// and typed into the other; nothing is registered with a server. Moving
// snapshots between devices is left to a Transport.
package link

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clangoi/judotimer/internal/clock"
	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/store"
)

// Persister queues records for writing without waiting. *store.Writer
// implements it.
type Persister interface {
	SaveJSON(key string, v any) error
}

// Change is delivered to subscribers after every mutation.
type Change struct {
	Status domain.SyncStatus
	Data   domain.SyncDataBag
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock replaces the clock used for sync timestamps.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithPersister makes every mutation queue the status and data records.
func WithPersister(p Persister) Option {
	return func(m *Manager) {
		m.persist = p
	}
}

// WithCodeLength sets the length of generated device codes, clamped to the
// accepted range.
func WithCodeLength(n int) Option {
	return func(m *Manager) {
		m.codeLength = min(max(n, constants.MinDeviceCodeLength), constants.MaxDeviceCodeLength)
	}
}

type subscription struct {
	id int
	fn func(Change)
}

// Manager owns SyncStatus and the SyncDataBag. All methods are safe for
// concurrent use. Records are queued for persistence in mutation order, and
// subscribers see changes in that same order.
type Manager struct {
	mu        sync.Mutex
	status    domain.SyncStatus
	data      domain.SyncDataBag
	transport Transport

	origin     string
	codeLength int
	clock      clock.Clock
	persist    Persister
	logger     zerolog.Logger

	subs       []subscription
	nextSubID  int
	queue      []Change
	delivering bool
}

// NewManager returns an unlinked manager with an empty data bag.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		data:       domain.SyncDataBag{},
		origin:     uuid.NewString(),
		codeLength: constants.DefaultDeviceCodeLength,
		clock:      clock.RealClock{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the persisted status and data bag. Missing records leave the
// defaults in place; unreadable ones are logged and skipped.
func (m *Manager) Load(ctx context.Context, s store.Store) error {
	var status domain.SyncStatus
	if err := store.GetJSON(ctx, s, constants.RecordSyncStatus, &status); err != nil {
		if !m.skippable(err, constants.RecordSyncStatus) {
			return errors.Wrap(err, "failed to load sync status")
		}
		status = domain.SyncStatus{}
	}

	var data domain.SyncDataBag
	if err := store.GetJSON(ctx, s, constants.RecordSyncData, &data); err != nil {
		if !m.skippable(err, constants.RecordSyncData) {
			return errors.Wrap(err, "failed to load sync data")
		}
		data = nil
	}

	m.mu.Lock()
	m.status = status
	m.data = data.Clone()
	m.mu.Unlock()

	m.logger.Debug().
		Bool("linked", status.IsLinked).
		Int("keys", len(data)).
		Msg("sync state loaded")
	return nil
}

func (m *Manager) skippable(err error, record string) bool {
	switch {
	case errors.Is(err, errors.ErrRecordNotFound):
		return true
	case errors.Is(err, errors.ErrRecordCorrupted):
		m.logger.Warn().Err(err).Str("record", record).Msg("ignoring unreadable record")
		return true
	default:
		return false
	}
}

// Origin returns the identifier this instance stamps on outgoing snapshots.
func (m *Manager) Origin() string {
	return m.origin
}

// Status returns a copy of the current status.
func (m *Manager) Status() domain.SyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status.Clone()
}

// DeviceCode returns the linked or pending device code, or "".
func (m *Manager) DeviceCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status.DeviceCode
}

// Data returns a copy of the data bag.
func (m *Manager) Data() domain.SyncDataBag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone()
}

// Subscribe registers fn for every subsequent change. Subscribers are called
// in registration order, after the manager's lock is released.
func (m *Manager) Subscribe(fn func(Change)) (unsubscribe func()) {
	m.mu.Lock()
	m.nextSubID++
	id := m.nextSubID
	m.subs = append(m.subs, subscription{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// GenerateDeviceCode returns a random uppercase alphanumeric code for the
// other device to type in. While unlinked the code is kept as the pending
// device code.
func (m *Manager) GenerateDeviceCode() (string, error) {
	code, err := randomCode(m.codeLength)
	if err != nil {
		return "", err
	}

	m.update(func() bool {
		if m.status.IsLinked {
			return false
		}
		m.status.DeviceCode = code
		return true
	})
	return code, nil
}

// LinkDevice pairs with the device called name using code. A malformed code
// (ErrInvalidDeviceCode) or a blank name (ErrDeviceNameRequired) leaves the
// status untouched; callers must check the error.
func (m *Manager) LinkDevice(ctx context.Context, code, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized, err := NormalizeCode(code)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.ErrDeviceNameRequired
	}

	m.update(func() bool {
		now := m.clock.Now()
		m.status = domain.SyncStatus{
			IsLinked:          true,
			DeviceCode:        normalized,
			LinkedDeviceName:  name,
			LastSyncTimestamp: &now,
		}
		return true
	})
	m.logger.Info().Str("device_name", name).Str("device_code", normalized).Msg("device linked")
	return nil
}

// UnlinkDevice forgets the linked device and empties the data bag. It cannot
// be undone. Unlinking an unlinked manager still clears any pending code and
// data.
func (m *Manager) UnlinkDevice(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.update(func() bool {
		m.status = domain.SyncStatus{}
		m.data = domain.SyncDataBag{}
		return true
	})
	m.logger.Info().Msg("device unlinked")
	return nil
}

// UpdateRemoteData shallow-merges partial into the data bag and refreshes the
// sync timestamp.
func (m *Manager) UpdateRemoteData(partial domain.SyncDataBag) {
	m.update(func() bool {
		m.data.Merge(partial)
		m.touchLocked()
		return true
	})
}

// SyncData records a heartbeat by refreshing the sync timestamp. Nothing is
// transmitted. It returns ErrNotLinked when no device is linked.
func (m *Manager) SyncData() error {
	var linked bool
	m.update(func() bool {
		linked = m.status.IsLinked
		if linked {
			m.touchLocked()
		}
		return linked
	})
	if !linked {
		return errors.ErrNotLinked
	}
	return nil
}

// update applies fn under the lock. When fn reports a change the records are
// queued for persistence before the lock is released, and subscribers are
// notified afterwards.
func (m *Manager) update(fn func() bool) {
	m.mu.Lock()
	if !fn() {
		m.mu.Unlock()
		return
	}
	change := Change{Status: m.status.Clone(), Data: m.data.Clone()}
	m.persistLocked(change)
	m.queue = append(m.queue, change)
	m.mu.Unlock()

	m.flush()
}

// flush delivers queued changes. Only one goroutine delivers at a time; a
// subscriber that mutates the manager only appends to the queue.
func (m *Manager) flush() {
	m.mu.Lock()
	if m.delivering {
		m.mu.Unlock()
		return
	}
	m.delivering = true
	for len(m.queue) > 0 {
		batch := m.queue
		m.queue = nil
		subs := make([]subscription, len(m.subs))
		copy(subs, m.subs)
		m.mu.Unlock()

		for _, c := range batch {
			for _, s := range subs {
				s.fn(c)
			}
		}

		m.mu.Lock()
	}
	m.delivering = false
	m.mu.Unlock()
}

// persistLocked queues both records. Persister must not block or call back
// into the manager. Failures are logged and the in-memory state stays as it
// is.
func (m *Manager) persistLocked(c Change) {
	if m.persist == nil {
		return
	}
	if err := m.persist.SaveJSON(constants.RecordSyncStatus, c.Status); err != nil {
		m.logger.Error().Err(err).Str("record", constants.RecordSyncStatus).Msg("failed to queue record")
	}
	if err := m.persist.SaveJSON(constants.RecordSyncData, c.Data); err != nil {
		m.logger.Error().Err(err).Str("record", constants.RecordSyncData).Msg("failed to queue record")
	}
}

func (m *Manager) touchLocked() {
	now := m.clock.Now()
	m.status.LastSyncTimestamp = &now
}

// NormalizeCode trims and uppercases code and checks it against the code
// alphabet and length limits.
func NormalizeCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) < constants.MinDeviceCodeLength || len(normalized) > constants.MaxDeviceCodeLength {
		return "", errors.Wrapf(errors.ErrInvalidDeviceCode, "length must be %d to %d characters",
			constants.MinDeviceCodeLength, constants.MaxDeviceCodeLength)
	}
	for _, r := range normalized {
		if !strings.ContainsRune(constants.DeviceCodeAlphabet, r) {
			return "", errors.Wrapf(errors.ErrInvalidDeviceCode, "unexpected character %q", r)
		}
	}
	return normalized, nil
}

func randomCode(n int) (string, error) {
	alphabet := big.NewInt(int64(len(constants.DeviceCodeAlphabet)))
	var b strings.Builder
	b.Grow(n)
	for range n {
		idx, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate device code")
		}
		b.WriteByte(constants.DeviceCodeAlphabet[idx.Int64()])
	}
	return b.String(), nil
}
