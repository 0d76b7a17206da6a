package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	level := "warn"
	if slices.Contains(os.Args[1:], "-v") || slices.Contains(os.Args[1:], "--verbose") {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Debugf))
	logger.Debug("starting", logging.FieldVersion, Version)

	code := runMain(os.Args, DefaultEnv())
	undo()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch {
	case cmd == "render":
		err = runRender(ctx, rest, env)
	case cmd == "stats":
		err = runStats(ctx, rest, env)
	case cmd == "strip":
		err = runStrip(ctx, rest, env)
	case cmd == "css":
		err = runCSS(rest, env)
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "richtext %s\n", Version)
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		runHelp(rest, env)
	case cmd == stdinPath || fileutil.IsContentFile(cmd):
		err = runRender(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
