package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sadopc/pixeltrainer/internal/config"
	"github.com/sadopc/pixeltrainer/internal/engine"
	"github.com/sadopc/pixeltrainer/internal/store"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
}

// env is an opened configuration, logger, store and ledger.
type env struct {
	cfg    config.Config
	log    *slog.Logger
	store  *store.Store
	ledger *engine.Ledger

	logCloser io.Closer
}

// configFile is --config or the default location.
func (o *options) configFile() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultPath()
}

func (o *options) loadConfig() (config.Config, error) {
	// No config dir means no config file; flags and defaults still apply.
	path, _ := o.configFile()
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.Resolve()
}

// open loads everything a command needs. The ledger reconciles idle
// streaks as of now.
func (o *options) open(now time.Time) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	log, closer, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	log.Debug("store opened", slog.String("path", cfg.DBPath))

	return &env{
		cfg:       cfg,
		log:       log,
		store:     s,
		ledger:    engine.Open(s, log, now),
		logCloser: closer,
	}, nil
}

func (e *env) Close() {
	_ = e.store.Close()
	_ = e.logCloser.Close()
}
