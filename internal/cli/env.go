package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-depextract/internal/backend"
	"github.com/jakoblorz/go-depextract/internal/config"
	"github.com/jakoblorz/go-depextract/internal/filesystem"
	"github.com/jakoblorz/go-depextract/internal/logging"
	"github.com/jakoblorz/go-depextract/internal/session"
)

// ClientFactory creates the collaborator client for a loaded config
type ClientFactory func(cfg config.Config, logger *slog.Logger) (backend.Client, error)

// NewHTTPClientFactory talks to the server named in the config
func NewHTTPClientFactory() ClientFactory {
	return func(cfg config.Config, logger *slog.Logger) (backend.Client, error) {
		return backend.NewHTTPClient(cfg.Server, backend.WithLogger(logger))
	}
}

// env carries what every command needs: the filesystem, the client
// factory and the global flags.
type env struct {
	fs        filesystem.FileSystem
	newClient ClientFactory
	now       func() time.Time

	configPath string
	overrides  config.Overrides
}

func (e *env) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "Config file (default: <user config dir>/depextract/config.yaml)")
	flags.StringVar(&e.overrides.Server, "server", "", "Analyzer server URL")
	flags.StringVar(&e.overrides.Framework, "framework", "", "PHP framework: zf1, cakephp or laravel")
	flags.StringVar(&e.overrides.LogFile, "log-file", "", "Append logs to this file")
	flags.StringVar(&e.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// runtime is the loaded configuration with its logger and client
type runtime struct {
	cfg    config.Config
	path   string
	logger *slog.Logger
	client backend.Client
	closer io.Closer
	now    func() time.Time
}

func (e *env) resolveConfigPath() (string, error) {
	if e.configPath != "" {
		return e.configPath, nil
	}
	return config.DefaultPath(e.fs)
}

// load reads the config and applies the flag overrides
func (e *env) load() (config.Config, string, error) {
	path, err := e.resolveConfigPath()
	if err != nil {
		return config.Config{}, "", err
	}

	cfg, err := config.Load(e.fs, path)
	if err != nil {
		return cfg, path, err
	}
	cfg, err = cfg.Apply(e.overrides)
	if err != nil {
		return cfg, path, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, path, nil
}

// setup loads the config and builds the logger and client
func (e *env) setup() (*runtime, error) {
	cfg, path, err := e.load()
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.Open(e.fs, cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	client, err := e.newClient(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	now := e.now
	if now == nil {
		now = time.Now
	}

	logger.Debug("configuration loaded", "path", path, "server", cfg.Server, "framework", cfg.Framework)
	return &runtime{
		cfg:    cfg,
		path:   path,
		logger: logger,
		client: client,
		closer: closer,
		now:    now,
	}, nil
}

// Close releases the log file
func (r *runtime) Close() error {
	return r.closer.Close()
}

// newSession creates a session configured from the loaded config
func (r *runtime) newSession() *session.Session {
	return session.New(r.client, session.Options{
		Framework:     r.cfg.Framework,
		Mappings:      r.cfg.Mappings,
		ParseIncludes: r.cfg.IncludesEnabled(),
		Timeout:       r.cfg.Timeout,
		HidePatterns:  r.cfg.HiddenPatterns,
		Logger:        r.logger,
		Now:           r.now,
	})
}
