// Command lidrup-check verifies incremental SAT solver proofs in the
// LIDRUP format against their interaction log.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:      "lidrup-check",
		Version:   version,
		Usage:     "check a LIDRUP incremental proof against its interaction log",
		ArgsUsage: "[<icnf>] <lidrup>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "verbosity = -1 (errors only)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "increase verbosity (repeatable)"},
			&cli.BoolFlag{Name: "logging", Aliases: []string{"l"}, Usage: "maximal verbosity (debug-level logging)"},
			&cli.BoolFlag{Name: "no-reuse", Aliases: []string{"n"}, Usage: "forbid reusing clause identifiers ever"},
			&cli.BoolFlag{Name: "strict", Usage: "default mode"},
			&cli.BoolFlag{Name: "relaxed", Usage: "accept missing m/u conclusions in the proof"},
			&cli.BoolFlag{Name: "pedantic", Usage: "require headers and interaction conclusions"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a returned error to the process exit status of spec §6.1:
// 0 on full verification, 1 on any parse-error or check-error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if ce, ok := err.(cli.ExitCoder); ok {
		return ce.ExitCode()
	}
	return 1
}
