// Command bpn trains back-propagation networks from a key=value
// configuration file and evaluates exported networks.
//
// Usage:
//
//	bpn [train] [-config config.txt] [-stopfile delete_this_to_stop.txt]
//	bpn eval -import net.txt [-format numberList] < inputs.txt
//	bpn version
//
// Training stops when the stop file is deleted or on SIGINT/SIGTERM; the
// network trained so far is still exported.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := "train"
	if len(args) > 0 && (args[0] == "train" || args[0] == "eval" || args[0] == "version" || args[0] == "help") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "bpn %s\n", version)
		return 0
	case "help":
		usage(stdout)
		return 0
	case "eval":
		err = runEval(args, stdin, stdout, stderr)
	default:
		err = runTrain(args, stdout, stderr)
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "bpn - back-propagation network trainer")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train a network from a configuration file (default)")
	fmt.Fprintln(w, "  eval       Evaluate an exported network on inputs read from stdin")
	fmt.Fprintln(w, "  version    Show version")
}

// newLogger maps the configured verbosity to a log level.
func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
