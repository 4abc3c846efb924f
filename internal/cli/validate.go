package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/report"
	"github.com/matzehuels/pjv/pkg/runner"
	"github.com/matzehuels/pjv/pkg/validator"
	"github.com/matzehuels/pjv/pkg/watch"
)

// stdinPath reads the manifest from standard input.
const stdinPath = "-"

// validateOptions holds the flag values for validate.
type validateOptions struct {
	filename        string
	spec            string
	warnings        bool
	recommendations bool
	quiet           bool
	output          string
	cache           bool
	watch           bool
	concurrency     int
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate package.json files",
		Long: `Validate one or more package.json files.

Without arguments the file named by --filename is checked. Use "-" to read
a manifest from standard input.`,
		Example: `  # Validate ./package.json against npm
  pjv validate

  # Show warnings and recommendations for several files
  pjv validate -w -r a/package.json b/package.json

  # Check against CommonJS 1.1 and emit JSON
  pjv validate -s commonjs_1.1 -o json package.json

  # Re-validate on every save
  pjv validate --watch`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd, args, opts)
		},
	}

	c.addValidateFlags(cmd, opts)
	return cmd
}

func (c *CLI) addValidateFlags(cmd *cobra.Command, opts *validateOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.filename, "filename", "f", "package.json", "file to validate when no arguments are given")
	f.StringVarP(&opts.spec, "spec", "s", string(validator.NPM), "specification to validate against (npm, commonjs_1.0, commonjs_1.1)")
	f.BoolVarP(&opts.warnings, "warnings", "w", false, "display warnings")
	f.BoolVarP(&opts.recommendations, "recommendations", "r", false, "display recommendations")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "print nothing for valid files")
	f.StringVarP(&opts.output, "output", "o", report.FormatText, "output format (text, json, yaml)")
	f.BoolVar(&opts.cache, "cache", false, "cache results on disk")
	f.BoolVar(&opts.watch, "watch", false, "re-validate when files change")
	f.IntVar(&opts.concurrency, "concurrency", 4, "number of files validated in parallel")
	registerCompletions(cmd)
}

// applyConfig fills every flag the user did not set from the loaded config.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *validateOptions) {
	cfg := c.config
	if cfg == nil {
		return
	}
	f := cmd.Flags()
	if !f.Changed("spec") {
		opts.spec = cfg.Spec
	}
	if !f.Changed("warnings") {
		opts.warnings = cfg.Warnings
	}
	if !f.Changed("recommendations") {
		opts.recommendations = cfg.Recommendations
	}
	if !f.Changed("quiet") {
		opts.quiet = cfg.Quiet
	}
	if !f.Changed("output") {
		opts.output = cfg.Format
	}
	if !f.Changed("cache") {
		opts.cache = cfg.Cache.Enabled
	}
	if !f.Changed("concurrency") {
		opts.concurrency = cfg.Concurrency
	}
}

func (opts *validateOptions) validate() error {
	if err := errors.ValidateSpecName(opts.spec, specNames()...); err != nil {
		return err
	}
	if err := errors.ValidateOutputFormat(opts.output, report.Formats()...); err != nil {
		return err
	}
	if opts.concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--concurrency must be at least 1")
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

func (c *CLI) runValidate(cmd *cobra.Command, args []string, opts *validateOptions) error {
	c.applyConfig(cmd, opts)
	if err := opts.validate(); err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{opts.filename}
	}

	r, err := c.newRunner(*opts)
	if err != nil {
		return err
	}
	defer r.Cache.Close()

	ctx := cmd.Context()
	if opts.watch {
		return c.watchAndValidate(ctx, r, paths, opts)
	}

	ok, err := c.validateOnce(ctx, r, paths, opts)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalid
	}
	return nil
}

// validateOnce runs every path through r and prints the report. It returns
// false when any file is missing or invalid.
func (c *CLI) validateOnce(ctx context.Context, r *runner.Runner, paths []string, opts *validateOptions) (bool, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	jobs, err := c.jobs(paths)
	if err != nil {
		return false, err
	}
	results, err := r.Run(ctx, jobs)
	if err != nil {
		return false, err
	}
	if err := c.printResults(results, opts); err != nil {
		return false, err
	}

	ok := true
	for _, fr := range results {
		if !fr.OK() {
			ok = false
			break
		}
	}
	prog.done(report.Summary(results))
	return ok, nil
}

func (c *CLI) jobs(paths []string) ([]runner.Job, error) {
	jobs := make([]runner.Job, 0, len(paths))
	for _, p := range paths {
		if p != stdinPath {
			jobs = append(jobs, runner.Job{Path: p})
			continue
		}
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		if data == nil {
			data = []byte{}
		}
		jobs = append(jobs, runner.Job{Path: "stdin", Data: data})
	}
	return jobs, nil
}

// printResults writes valid files to stdout and failures to stderr. For
// structured output the whole document goes to stdout and only the status
// lines go to stderr. Quiet leaves valid files out of either form.
func (c *CLI) printResults(results []runner.FileResult, opts *validateOptions) error {
	if opts.output != report.FormatText {
		shown := make([]runner.FileResult, 0, len(results))
		for _, fr := range results {
			switch {
			case fr.Missing:
				fmt.Fprintln(c.stderr, "File does not exist: "+fr.Path)
			case !fr.OK():
				fmt.Fprintln(c.stderr, fr.Path+" is NOT valid")
			}
			if opts.quiet && fr.OK() {
				continue
			}
			shown = append(shown, fr)
		}
		return report.Write(c.stdout, opts.output, shown, report.TextOptions{})
	}

	var passed, failed []runner.FileResult
	for _, fr := range results {
		if fr.OK() {
			passed = append(passed, fr)
		} else {
			failed = append(failed, fr)
		}
	}
	textOpts := report.TextOptions{Quiet: opts.quiet}
	if err := report.WriteText(c.stdout, passed, textOpts); err != nil {
		return err
	}
	return report.WriteText(c.stderr, failed, textOpts)
}

// watchAndValidate validates paths once, then again for every batch of
// changed files until ctx is cancelled.
func (c *CLI) watchAndValidate(ctx context.Context, r *runner.Runner, paths []string, opts *validateOptions) error {
	logger := loggerFromContext(ctx)

	for _, p := range paths {
		if p == stdinPath {
			return errors.New(errors.ErrCodeInvalidInput, "--watch cannot read from stdin")
		}
	}

	w, err := watch.New(paths, watch.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := c.validateOnce(ctx, r, paths, opts); err != nil {
		return err
	}
	logger.Info("watching for changes", "files", len(paths))

	err = w.Run(ctx, func(changed []string) {
		logger.Debug("change detected", "files", changed)
		if _, err := c.validateOnce(ctx, r, changed, opts); err != nil && ctx.Err() == nil {
			logger.Error("validate", "err", err)
		}
	})
	if err != nil {
		return err
	}
	return ctx.Err()
}
