package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pjv/pkg/buildinfo"
	"github.com/matzehuels/pjv/pkg/cache"
	"github.com/matzehuels/pjv/pkg/config"
	"github.com/matzehuels/pjv/pkg/runner"
	"github.com/matzehuels/pjv/pkg/validator"
)

// appName is the application name used for directories and display.
const appName = "pjv"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	config     *config.Config
}

// New creates a CLI writing results to stdout and logs and failures to
// stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(stderr, level),
		stdin:  os.Stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a batch runner for CLI use.
func (c *CLI) newRunner(opts validateOptions) (*runner.Runner, error) {
	rc, err := c.newCache(opts.cache)
	if err != nil {
		return nil, err
	}
	return &runner.Runner{
		Spec: validator.SpecName(opts.spec),
		Options: validator.Options{
			HideWarnings:        !opts.warnings,
			HideRecommendations: !opts.recommendations,
		},
		Concurrency: opts.concurrency,
		Cache:       rc,
		Keyer:       cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope()),
		TTL:         c.config.Cache.TTL.Duration,
		Logger:      c.Logger,
	}, nil
}

func (c *CLI) newCache(enabled bool) (cache.Cache, error) {
	if !enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// standard location (~/.cache/pjv/).
func (c *CLI) cacheDir() (string, error) {
	if c.config != nil && c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
