package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clangoi/judotimer/internal/config"
	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/link"
	"github.com/clangoi/judotimer/internal/store"
	"github.com/clangoi/judotimer/internal/timer"
)

// app bundles the state every stateful command works on: the loaded config,
// the record store with its background writer, the timer engine restored
// from the last saved settings, and the link manager.
type app struct {
	cfg    *config.Config
	store  store.Store
	writer *store.Writer
	engine *timer.Engine
	link   *link.Manager
	logger zerolog.Logger
}

// openApp loads configuration and persisted records. Engine options in
// extra are applied after the configured ones.
func openApp(ctx context.Context, logger zerolog.Logger, extra ...timer.Option) (*app, error) {
	cfg, err := config.Load(logger.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	dir, err := config.DataDir(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, store.Options{
		Backend: cfg.Store.Backend,
		Dir:     dir,
		Redis: store.RedisOptions{
			URL:         cfg.Store.RedisURL,
			MaxActive:   cfg.Store.RedisMaxActive,
			MaxIdle:     cfg.Store.RedisMaxIdle,
			IdleTimeout: cfg.Store.RedisIdleTimeout,
			Prefix:      constants.RedisKeyPrefix,
		},
		LockTimeout: constants.LockTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open record store")
	}

	a := &app{
		cfg:    cfg,
		store:  st,
		writer: store.NewWriter(st, store.WithWriterLogger(logger)),
		logger: logger,
	}

	opts := append([]timer.Option{
		timer.WithLogger(logger),
		timer.WithPrepareSeconds(cfg.Timer.PrepareSeconds),
	}, extra...)
	a.engine = timer.New(opts...)
	if err := a.restoreSettings(ctx); err != nil {
		a.close(ctx)
		return nil, err
	}

	a.link = link.NewManager(
		link.WithLogger(logger),
		link.WithPersister(a.writer),
		link.WithCodeLength(cfg.Sync.CodeLength),
	)
	if err := a.link.Load(ctx, st); err != nil {
		a.close(ctx)
		return nil, err
	}

	return a, nil
}

// restoreSettings seeds the engine with the configured defaults and then
// with the last saved settings, if any.
func (a *app) restoreSettings(ctx context.Context) error {
	defaults := domain.TimerSettings{
		Mode:      constants.TimerMode(a.cfg.Timer.DefaultMode),
		Tabata:    a.cfg.Timer.Tabata,
		Countdown: a.cfg.Timer.Countdown,
	}
	if err := a.engine.Restore(defaults); err != nil {
		return err
	}

	var saved domain.TimerSettings
	err := store.GetJSON(ctx, a.store, constants.RecordTimerSettings, &saved)
	switch {
	case errors.Is(err, errors.ErrRecordNotFound):
		return nil
	case errors.Is(err, errors.ErrRecordCorrupted):
		a.logger.Warn().Err(err).Msg("ignoring unreadable timer settings")
		return nil
	case err != nil:
		return errors.Wrap(err, "failed to load timer settings")
	}
	return a.engine.Restore(saved)
}

// saveSettings queues the engine settings for writing. Failures are logged
// by the writer.
func (a *app) saveSettings() {
	if err := a.writer.SaveJSON(constants.RecordTimerSettings, a.engine.Settings()); err != nil {
		a.logger.Warn().Err(err).Msg("failed to queue timer settings")
	}
}

// close drains pending writes and releases the store.
func (a *app) close(ctx context.Context) {
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.WriterFlushTimeout)
	defer cancel()

	if err := a.writer.Close(flushCtx); err != nil {
		a.logger.Warn().Err(err).Msg("pending records were not written")
	}
	if err := a.store.Close(); err != nil {
		a.logger.Debug().Err(err).Msg("failed to close record store")
	}
}
