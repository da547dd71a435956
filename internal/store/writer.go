package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clangoi/judotimer/internal/errors"
)

// defaultWriteTimeout bounds a single background write.
const defaultWriteTimeout = 10 * time.Second

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger write failures are reported to.
func WithWriterLogger(logger zerolog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithWriteTimeout bounds each background write.
func WithWriteTimeout(d time.Duration) WriterOption {
	return func(w *Writer) {
		if d > 0 {
			w.writeTimeout = d
		}
	}
}

// WithErrorHandler registers fn to be called for every failed write, after
// it has been logged.
func WithErrorHandler(fn func(key string, err error)) WriterOption {
	return func(w *Writer) {
		w.onError = fn
	}
}

// Writer persists records in the background. Save returns immediately; a
// single goroutine writes queued records in order, and a record saved again
// before it was written is written once with the latest data.
//
// Failed writes are logged and dropped. The caller's in-memory state is never
// rolled back, so a change that failed to persist is lost at the next start.
type Writer struct {
	store        Store
	logger       zerolog.Logger
	writeTimeout time.Duration
	onError      func(key string, err error)

	mu      sync.Mutex
	pending map[string][]byte
	order   []string
	idle    chan struct{}
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewWriter starts a background writer in front of s.
func NewWriter(s Store, opts ...WriterOption) *Writer {
	w := &Writer{
		store:        s,
		logger:       zerolog.Nop(),
		writeTimeout: defaultWriteTimeout,
		pending:      make(map[string][]byte),
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

// Save queues data for key. It returns errors.ErrStoreClosed after Close.
func (w *Writer) Save(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.Wrapf(errors.ErrStoreClosed, "record %s", key)
	}
	if _, queued := w.pending[key]; !queued {
		w.order = append(w.order, key)
	}
	w.pending[key] = data
	if w.idle == nil {
		w.idle = make(chan struct{})
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return nil
}

// SaveJSON encodes v and queues it for key.
func (w *Writer) SaveJSON(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", key, err)
	}
	return w.Save(key, data)
}

// Flush waits until every queued record has been written or dropped.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()
	if idle == nil {
		return nil
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting records, drains the queue, and stops the goroutine.
// It does not close the underlying store.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		key, data, ok := w.next()
		if !ok {
			return
		}
		w.write(key, data)
	}
}

// next blocks until a record is queued or the writer is closed and empty.
func (w *Writer) next() (string, []byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for len(w.order) == 0 {
		if w.idle != nil {
			close(w.idle)
			w.idle = nil
		}
		if w.closed {
			return "", nil, false
		}
		w.mu.Unlock()
		<-w.wake
		w.mu.Lock()
	}

	key := w.order[0]
	w.order = w.order[1:]
	data := w.pending[key]
	delete(w.pending, key)
	return key, data, true
}

func (w *Writer) write(key string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	if err := w.store.Put(ctx, key, data); err != nil {
		w.logger.Error().Err(err).Str("record", key).Msg("failed to persist record")
		if w.onError != nil {
			w.onError(key, err)
		}
		return
	}
	w.logger.Debug().Str("record", key).Int("bytes", len(data)).Msg("record persisted")
}
