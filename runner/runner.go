// Package runner wires a Checker to its input streams and reports the
// outcome, following the teacher's functional-options constructor pattern.
package runner

import (
	"context"
	"errors"
	"io"
	"os"

	lidrup "github.com/arminbiere/lidrup-check"
	"go.uber.org/zap"
)

// ErrNoProofStream is returned by Run when no proof lexer was configured.
var ErrNoProofStream = errors.New("runner: no proof stream configured")

// Runner owns one checking run: it builds a lidrup.Checker from its
// configured streams and options, executes it, and reports statistics.
type Runner struct {
	interaction *lidrup.Lexer
	proof       *lidrup.Lexer
	opts        lidrup.Options
	logger      *zap.Logger
	styles      *Styles
	stdout      io.Writer
	stderr      io.Writer
	stats       *lidrup.Stats
}

// Option configures a Runner.
type Option func(*Runner)

// WithStreams sets the input streams. interaction may be nil for
// single-file mode.
func WithStreams(interaction, proof *lidrup.Lexer) Option {
	return func(r *Runner) {
		r.interaction = interaction
		r.proof = proof
	}
}

// WithOptions sets the checker's mode/no-reuse settings.
func WithOptions(opts lidrup.Options) Option {
	return func(r *Runner) {
		r.opts = opts
	}
}

// WithLogger sets the structured logger used for progress and error
// reporting.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithStyles overrides the default summary styles.
func WithStyles(s *Styles) Option {
	return func(r *Runner) {
		r.styles = s
	}
}

// WithOutputs overrides the stdout/stderr writers (tests use this to
// capture output).
func WithOutputs(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithStats supplies the Stats instance the Checker will accumulate into.
// Callers that need to report partial statistics on interruption (spec
// §6.1) should build one with lidrup.NewStats, pass it here, and hold on
// to their own reference. If omitted, Run creates one internally.
func WithStats(stats *lidrup.Stats) Option {
	return func(r *Runner) {
		r.stats = stats
	}
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: zap.NewNop(),
		styles: DefaultStyles(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run builds a Checker from the configured streams and executes it to
// completion, printing a colored verdict banner followed by the
// statistics summary (unless verbosity is negative). The Checker's own
// error, if any, is returned unchanged so the caller can translate it
// into the process exit code (spec §6.1, §7).
func (r *Runner) Run(ctx context.Context) error {
	if r.proof == nil {
		return ErrNoProofStream
	}

	stats := r.stats
	if stats == nil {
		stats = lidrup.NewStats()
	}
	checker := lidrup.NewChecker(r.interaction, r.proof, r.opts, stats)

	err := checker.Run()

	banner := r.styles.OK.Render(r.styles.SymbolOK + " verified")
	if err != nil {
		banner = r.styles.Fail.Render(r.styles.SymbolFail + " check failed")
	}
	io.WriteString(r.stdout, banner+"\n")

	if r.opts.Verbosity >= 0 {
		stats.WriteSummary(r.stdout)
	}

	if err != nil {
		r.logger.Error("check failed", zap.Error(err))
		return err
	}
	r.logger.Info("check succeeded")
	return nil
}
