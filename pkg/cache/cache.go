// Package cache stores validation results keyed by manifest content.
//
// A [Cache] is a byte store with per-entry expiry. The CLI uses [FileCache]
// so repeated runs over unchanged manifests skip validation; [NullCache]
// stands in when caching is disabled. Keys come from a [Keyer], which hashes
// everything that can change a result: the manifest bytes, the spec name and
// the reporting options.
//
//	c, _ := cache.NewFileCache(dir)
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
//	key := keyer.ResultKey(data, "npm", cache.ResultKeyOpts{})
//	if b, ok, _ := c.Get(ctx, key); ok {
//	    // decode cached result
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true on a hit. Expired or unreadable
	// entries are reported as misses, not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ResultKeyOpts holds the reporting options that change a cached result.
type ResultKeyOpts struct {
	HideWarnings        bool `json:"hide_warnings"`
	HideRecommendations bool `json:"hide_recommendations"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for the result of validating content
	// against spec.
	ResultKey(content []byte, spec string, opts ResultKeyOpts) string
}

// DefaultKeyer builds keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey hashes the content together with the spec and options.
func (DefaultKeyer) ResultKey(content []byte, spec string, opts ResultKeyOpts) string {
	return hashKey("result", Hash(content), spec, opts)
}
