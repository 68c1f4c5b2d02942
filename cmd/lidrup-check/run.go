package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/arminbiere/lidrup-check"
	"github.com/arminbiere/lidrup-check/runner"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// ErrMissingProof is returned when the required <lidrup> argument is
	// absent from the command line.
	ErrMissingProof = errors.New("lidrup-check: missing <lidrup> argument")
	// ErrTooManyArgs is returned when more than two positional arguments
	// are given.
	ErrTooManyArgs = errors.New("lidrup-check: too many arguments")
)

func run(ctx context.Context, cmd *cli.Command) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger, err := newLogger(opts.Verbosity, cmd.Bool("logging"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() { _ = logger.Sync() }()

	icnfPath, lidrupPath, err := positionalArgs(cmd.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	lidrupFile, err := os.Open(filepath.Clean(lidrupPath))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer lidrupFile.Close()

	proofLexer := lidrup.NewLexer("proof", lidrupFile)

	var interactionLexer *lidrup.Lexer
	if icnfPath != "" {
		icnfFile, err := os.Open(filepath.Clean(icnfPath))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer icnfFile.Close()
		interactionLexer = lidrup.NewLexer("interaction", icnfFile)
	}

	stats := lidrup.NewStats()
	r := runner.New(
		runner.WithStreams(interactionLexer, proofLexer),
		runner.WithOptions(opts),
		runner.WithLogger(logger),
		runner.WithStats(stats),
	)

	runDone := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("interrupted")
			if opts.Verbosity >= 0 {
				stats.WriteSummary(os.Stderr)
			}
			os.Exit(130)
		case <-runDone:
		}
	}()
	defer close(runDone)

	logger.Debug("starting check",
		zap.String("proof", lidrupPath),
		zap.String("interaction", icnfPath),
		zap.Int("mode", int(opts.Mode)),
		zap.Bool("no-reuse", opts.NoReuse),
	)

	if err := r.Run(ctx); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

// buildOptions merges the project config file (if any) with the explicit
// command-line flags, flags always winning (spec §6.1).
func buildOptions(cmd *cli.Command) (lidrup.Options, error) {
	opts := lidrup.Options{}

	cfg, err := lidrup.LoadConfig(".")
	if err != nil {
		return opts, err
	}
	opts, err = lidrup.ApplyConfig(opts, cfg)
	if err != nil {
		return opts, err
	}

	switch {
	case cmd.Bool("pedantic"):
		opts.Mode = lidrup.ModePedantic
	case cmd.Bool("relaxed"):
		opts.Mode = lidrup.ModeRelaxed
	case cmd.Bool("strict"):
		opts.Mode = lidrup.ModeStrict
	}

	if cmd.Bool("no-reuse") {
		opts.NoReuse = true
	}

	switch {
	case cmd.Bool("quiet"):
		opts.Verbosity = -1
	case cmd.Bool("logging"):
		opts.Verbosity = 2
	case cmd.Bool("verbose"):
		opts.Verbosity = cmd.Count("verbose")
	}

	return opts, nil
}

// positionalArgs interprets the `[<icnf>] <lidrup>` argument list of spec
// §6.1: one argument means proof-only mode, two mean icnf then lidrup.
func positionalArgs(args []string) (icnf, lidrupPath string, err error) {
	switch len(args) {
	case 0:
		return "", "", ErrMissingProof
	case 1:
		return "", args[0], nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", ErrTooManyArgs
	}
}

// newLogger builds a zap logger whose level tracks the verbosity flags of
// spec §6.1.
func newLogger(verbosity int, logging bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	switch {
	case logging:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case verbosity < 0:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	case verbosity == 0:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case verbosity == 1:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
