// Package runner validates batches of manifest files concurrently.
//
// A [Runner] reads each file, consults the result cache, validates on a miss
// and reports events to the registered observability hooks. Results come
// back in the order the jobs were given regardless of completion order.
//
//	r := &runner.Runner{Spec: validator.NPM, Concurrency: 4}
//	results, err := r.Run(ctx, runner.Paths("package.json", "web/package.json"))
package runner

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pjv/pkg/cache"
	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/observability"
	"github.com/matzehuels/pjv/pkg/validator"
)

// Job names one manifest to validate. When Data is nil the manifest is read
// from Path; otherwise Data is validated and Path is only a label.
type Job struct {
	Path string
	Data []byte
}

// Paths builds file jobs.
func Paths(paths ...string) []Job {
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		jobs[i] = Job{Path: p}
	}
	return jobs
}

// FileResult is the outcome for one job. Exactly one of Result, Missing and
// Err describes it.
type FileResult struct {
	Path    string
	Result  *validator.Result
	Missing bool  // the file does not exist
	Cached  bool  // Result came from the cache
	Err     error // the file exists but could not be read
}

// OK reports whether the file was found and is valid.
func (f FileResult) OK() bool {
	return f.Result != nil && f.Result.Valid
}

// Runner validates jobs. The zero value validates against npm, one file at
// a time, without caching.
type Runner struct {
	Spec        validator.SpecName
	Options     validator.Options
	Concurrency int

	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration

	Logger *log.Logger
}

// Run validates every job and returns one FileResult per job, in order.
// Per-file problems are reported in the results; the error is non-nil only
// when ctx is cancelled before every job ran.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]FileResult, error) {
	results := make([]FileResult, len(jobs))

	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runOne(gctx, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (r *Runner) runOne(ctx context.Context, job Job) FileResult {
	logger := r.logger().With("file", job.Path)
	out := FileResult{Path: job.Path}

	data := job.Data
	if data == nil {
		if err := errors.ValidatePath(job.Path); err != nil {
			out.Err = err
			return out
		}
		b, err := os.ReadFile(job.Path)
		switch {
		case stderrors.Is(err, fs.ErrNotExist):
			logger.Debug("file does not exist")
			out.Missing = true
			return out
		case err != nil:
			out.Err = errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", job.Path)
			return out
		}
		data = b
	}

	spec := r.spec()
	key := r.keyer().ResultKey(data, string(spec), cache.ResultKeyOpts{
		HideWarnings:        r.Options.HideWarnings,
		HideRecommendations: r.Options.HideRecommendations,
	})

	if res, ok := r.lookup(ctx, key, logger); ok {
		observability.Cache().OnCacheHit(ctx, string(spec))
		out.Result = res
		out.Cached = true
		return out
	}
	observability.Cache().OnCacheMiss(ctx, string(spec))

	hooks := observability.Validation()
	hooks.OnValidateStart(ctx, string(spec))
	start := time.Now()
	res := validator.Validate(data, spec, r.Options)
	hooks.OnValidateComplete(ctx, string(spec), res.Valid, len(res.Errors), time.Since(start))

	logger.Debug("validated", "valid", res.Valid, "errors", len(res.Errors), "duration", time.Since(start))
	r.store(ctx, key, res, logger)

	out.Result = res
	return out
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*validator.Result, bool) {
	if r.Cache == nil {
		return nil, false
	}
	b, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var res validator.Result
	if err := json.Unmarshal(b, &res); err != nil {
		logger.Warn("discarding unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *validator.Result, logger *log.Logger) {
	if r.Cache == nil {
		return
	}
	b, err := json.Marshal(res)
	if err != nil {
		logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, b, r.TTL); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
}

func (r *Runner) spec() validator.SpecName {
	if r.Spec == "" {
		return validator.NPM
	}
	return r.Spec
}

func (r *Runner) keyer() cache.Keyer {
	if r.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return r.Keyer
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}
