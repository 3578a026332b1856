// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gemmbench times naive, BLAS and cache-blocked matrix
// multiplication on the same random inputs and checks that the products
// agree.
//
// Usage:
//
//	gemmbench [flags]
//
// Examples:
//
//	gemmbench
//	gemmbench -n 1024 -block 32
//	gemmbench -n 2048 -workers 8 -cold
//	gemmbench -seed 42 -log-dir benchmark_logs
//	gemmbench -n 512 -counters
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/LynnColeArt/gemmbench"
)

type options struct {
	n       int
	block   int
	workers int
	seed    int64
	absTol  float64
	relTol  float64
	cold    bool
	hw      bool
	logDir  string
	session string
	verbose bool
	version bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	def := gemmbench.DefaultConfig()
	var o options

	fs := flag.NewFlagSet("gemmbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.n, "n", def.N, "matrix order")
	fs.IntVar(&o.block, "block", def.BlockSize, "tile width of the blocked kernel")
	fs.IntVar(&o.workers, "workers", def.Workers, "goroutines for the blocked kernel's row tiles")
	fs.Int64Var(&o.seed, "seed", 0, "input generator seed (0 = derive from clock)")
	fs.Float64Var(&o.absTol, "tol-abs", def.Tolerance.AbsTol, "absolute tolerance for the match verdict")
	fs.Float64Var(&o.relTol, "tol-rel", def.Tolerance.RelTol, "relative tolerance for the match verdict")
	fs.BoolVar(&o.cold, "cold", false, "flush CPU caches before each multiplication")
	fs.BoolVar(&o.hw, "counters", false, "read hardware performance counters (Linux)")
	fs.StringVar(&o.logDir, "log-dir", "", "write a JSON session log to this directory")
	fs.StringVar(&o.session, "session", "gemmbench", "session name used in the log file name")
	fs.BoolVar(&o.verbose, "v", false, "verbose output")
	fs.BoolVar(&o.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gemmbench [flags]\n\n")
		fmt.Fprintf(stderr, "Times naive, BLAS and cache-blocked N×N matrix multiplication.\n\n")
		fs.PrintDefaults()
	}

	err := fs.Parse(args)
	return o, err
}

func (o options) config() gemmbench.Config {
	cfg := gemmbench.DefaultConfig()
	cfg.N = o.n
	cfg.BlockSize = o.block
	cfg.Workers = o.workers
	cfg.Seed = o.seed
	cfg.Tolerance.AbsTol = o.absTol
	cfg.Tolerance.RelTol = o.relTol
	cfg.ColdCache = o.cold
	cfg.Counters = o.hw
	return cfg
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if o.version {
		v, _ := gemmbench.Version()
		if v == "" {
			v = "(devel)"
		}
		fmt.Fprintf(stdout, "gemmbench %s\n", v)
		return 0
	}

	log := newLogger(stderr, o.verbose)

	cfg := o.config()
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 2
	}

	opts := []gemmbench.HarnessOption{gemmbench.WithLogger(log)}
	if o.logDir != "" {
		session, err := gemmbench.NewSessionLogger(o.logDir, o.session)
		if err != nil {
			log.Error().Err(err).Msg("cannot start session log")
			return 1
		}
		log.Info().Str("file", session.Path()).Msg("logging results")
		opts = append(opts, gemmbench.WithSessionLogger(session))
	}

	fmt.Fprintf(stdout, "=== gemmbench ===\n")
	fmt.Fprintf(stdout, "Date: %s\n", time.Now().Format(time.RFC3339))

	report, err := gemmbench.NewHarness(cfg, opts...).Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("benchmark failed")
		return 1
	}

	if err := report.WriteText(stdout); err != nil {
		log.Error().Err(err).Msg("cannot write report")
		return 1
	}

	if !report.Match() {
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
