// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// rendezvous-selftest drives a rendezvous channel with concurrent
// speakers and listeners and reports whether every scenario paired off
// correctly.
//
// Scenarios come from --config, from --speakers/--listeners for a single
// ad-hoc run, or from the built-in defaults when neither is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"code.hybscloud.com/rendezvous/selftest"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		configPath string
		speakers   int
		listeners  int
		window     time.Duration
		hold       time.Duration
		verbose    bool
	)

	flagSet := pflag.NewFlagSet("rendezvous-selftest", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "YAML file listing scenarios")
	flagSet.IntVar(&speakers, "speakers", -1, "number of concurrent speakers for a single scenario")
	flagSet.IntVar(&listeners, "listeners", -1, "number of concurrent listeners for a single scenario")
	flagSet.DurationVar(&window, "window", 0, "deadline for the expected pairings (overrides config)")
	flagSet.DurationVar(&hold, "hold", 0, "how long surplus calls must stay blocked (overrides config)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every channel event")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet, stderr)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet, stderr)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := loadConfig(configPath, speakers, listeners)
	if err != nil {
		return err
	}
	for i := range cfg.Scenarios {
		if window > 0 {
			cfg.Scenarios[i].Window = window
		}
		if hold > 0 {
			cfg.Scenarios[i].Hold = hold
		}
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reports, err := selftest.RunAll(ctx, cfg, logger)
	for _, r := range reports {
		status := "passed"
		if !r.Passed {
			status = "FAILED"
		}
		fmt.Fprintf(stdout, "%-20s S:%-3d L:%-3d pairs:%-3d remaining S:%d L:%d  %s\n",
			r.Scenario, r.Scenario.Speakers, r.Scenario.Listeners,
			r.Pairs, r.RemainingSpeakers, r.RemainingListeners, status)
	}
	return err
}

// loadConfig picks the scenario source: a config file, a single
// scenario from the count flags, or the defaults.
func loadConfig(path string, speakers, listeners int) (*selftest.Config, error) {
	adHoc := speakers >= 0 || listeners >= 0
	switch {
	case path != "" && adHoc:
		return nil, errors.New("--config cannot be combined with --speakers/--listeners")
	case path != "":
		cfg, err := selftest.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return cfg, nil
	case adHoc:
		cfg := selftest.Default()
		base := cfg.Scenarios[0]
		cfg.Scenarios = []selftest.Scenario{{
			Speakers:  max(speakers, 0),
			Listeners: max(listeners, 0),
			Window:    base.Window,
			Hold:      base.Hold,
		}}
		return cfg, nil
	}
	return selftest.Default(), nil
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `rendezvous-selftest pairs concurrent speakers and listeners on one
channel and checks that min(S, L) pairings complete, every spoken word
reaches exactly one listener, and the surplus calls stay blocked.

Usage:
  rendezvous-selftest [flags]

Examples:
  # Run the built-in scenarios (10x10, 3x1, 1x3, 1x1, 0x2)
  rendezvous-selftest

  # One scenario with 50 speakers and 40 listeners
  rendezvous-selftest --speakers 50 --listeners 40

  # Scenarios from a file, narrating every channel event
  rendezvous-selftest --config scenarios.yaml -v

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
