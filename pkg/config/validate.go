package config

import (
	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/report"
	"github.com/matzehuels/pjv/pkg/validator"
)

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if err := errors.ValidateSpecName(c.Spec, specNames()...); err != nil {
		return err
	}
	if err := errors.ValidateOutputFormat(c.Format, report.Formats()...); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server addr cannot be empty")
	}
	if c.Server.MaxBodyBytes < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "server max_body_bytes must be positive")
	}
	return nil
}

func specNames() []string {
	names := validator.SpecNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
