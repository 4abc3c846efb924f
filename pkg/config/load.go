package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pjv/pkg/errors"
)

// Load resolves the configuration. An explicit path must exist; with an
// empty path, FileName in the working directory is used when present and
// defaults otherwise. Environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	if err := decodeFile(path, cfg); err != nil {
		if explicit || !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnvOverrides applies PJV_* environment variables. Values that do not
// parse are ignored and the file setting is kept.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("PJV_SPEC"); val != "" {
		cfg.Spec = val
	}
	if val := os.Getenv("PJV_FORMAT"); val != "" {
		cfg.Format = val
	}
	if val := os.Getenv("PJV_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Concurrency = i
		}
	}
	if val := os.Getenv("PJV_CACHE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	if val := os.Getenv("PJV_CACHE_DIR"); val != "" {
		cfg.Cache.Dir = val
	}
	if val := os.Getenv("PJV_SERVER_ADDR"); val != "" {
		cfg.Server.Addr = val
	}
}
