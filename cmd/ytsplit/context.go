package main

import (
	"log/slog"
	"strings"
	"sync"

	"ytsplit/internal/config"
	"ytsplit/internal/fetch"
	"ytsplit/internal/history"
	"ytsplit/internal/i18n"
	"ytsplit/internal/logging"
	"ytsplit/internal/media/ffmpeg"
	"ytsplit/internal/pipeline"
	"ytsplit/internal/segment"
	"ytsplit/internal/trash"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// appEnv bundles the wired pipeline for one CLI invocation.
type appEnv struct {
	cfg     *config.Config
	logger  *slog.Logger
	msgs    i18n.Messages
	runner  *ffmpeg.CLI
	fetcher *fetch.Fetcher
	store   *history.Store
	queue   *trash.Queue
	pipe    *pipeline.Pipeline
	lock    *pipeline.RunLock
}

// openEnv loads config, acquires the run lock, and wires the pipeline.
// Callers must Close the environment.
func (c *commandContext) openEnv() (*appEnv, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	msgs := i18n.New(cfg.Language)

	lock, err := pipeline.AcquireRunLock(cfg.Paths.LogDir)
	if err != nil {
		return nil, err
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg)
		if err != nil {
			logger.Warn(msgs.Tr("Verlaufsdatenbank nicht verfügbar", "history database unavailable"), slog.Any("error", err))
			store = nil
		}
	}

	runner := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary()))
	queue := trash.NewQueue(cfg, logger, msgs)
	segmenter := segment.New(runner, cfg, logger, msgs)

	return &appEnv{
		cfg:     cfg,
		logger:  logger,
		msgs:    msgs,
		runner:  runner,
		fetcher: fetch.New(cfg, logger, msgs, runner),
		store:   store,
		queue:   queue,
		pipe:    pipeline.New(cfg, logger, msgs, segmenter, store, queue),
		lock:    lock,
	}, nil
}

// Close flushes the trash queue and releases resources.
func (e *appEnv) Close() {
	if e == nil {
		return
	}
	if err := e.pipe.Flush(); err != nil {
		e.logger.Warn(e.msgs.Tr("Papierkorb-Verschiebung fehlgeschlagen", "trash move failed"), slog.Any("error", err))
	}
	_ = e.store.Close()
	_ = e.lock.Release()
}
