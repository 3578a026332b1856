// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command compare compares a gemmbench session log against a baseline log
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LynnColeArt/gemmbench"
)

// Comparison statuses
const (
	statusPass   = "PASS"
	statusFail   = "FAIL"
	statusSlower = "SLOWER"
	statusFaster = "FASTER"
)

type ComparisonResult struct {
	Name   string
	Status string

	BaselineDuration time.Duration
	CurrentDuration  time.Duration
	BaselineMFLOPS   float64
	CurrentMFLOPS    float64
	SpeedupFactor    float64

	Message string
}

func main() {
	var (
		baselineFile = flag.String("baseline", "", "Baseline session log")
		currentFile  = flag.String("current", "", "Current session log (default: latest in -log-dir)")
		logDir       = flag.String("log-dir", "benchmark_logs", "Directory searched when -current is empty")
		perfRegress  = flag.Float64("perf-regress", 1.1, "Performance regression threshold (1.1 = 10% slower)")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *baselineFile == "" {
		log.Fatal().Msg("-baseline is required")
	}
	if *currentFile == "" {
		latest, err := gemmbench.LatestLogFile(*logDir)
		if err != nil {
			log.Fatal().Err(err).Msg("no current session log")
		}
		*currentFile = latest
	}

	baseline, err := gemmbench.LoadResults(*baselineFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *baselineFile).Msg("failed to load baseline")
	}
	current, err := gemmbench.LoadResults(*currentFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *currentFile).Msg("failed to load current results")
	}

	comparisons := compareResults(baseline, current, *perfRegress)
	printSummary(os.Stdout, comparisons)

	for _, comp := range comparisons {
		if comp.Status == statusFail {
			os.Exit(1)
		}
	}
}

func compareResults(baseline, current []gemmbench.BenchmarkResult, perfRegress float64) []ComparisonResult {
	currentMap := make(map[string]gemmbench.BenchmarkResult)
	for _, result := range current {
		currentMap[result.Name] = result
	}

	comparisons := make([]ComparisonResult, 0, len(baseline))

	for _, base := range baseline {
		comp := ComparisonResult{
			Name:             base.Name,
			BaselineDuration: base.Duration,
			BaselineMFLOPS:   base.MFLOPS,
		}

		curr, exists := currentMap[base.Name]
		switch {
		case !exists:
			comp.Status = statusFail
			comp.Message = "Strategy missing in current results"
		case curr.Status != gemmbench.StatusPass:
			comp.Status = statusFail
			comp.Message = fmt.Sprintf("Strategy failed: %s", curr.Error)
		case curr.N != base.N:
			comp.Status = statusFail
			comp.Message = fmt.Sprintf("Matrix order differs: %d vs %d", base.N, curr.N)
		}
		if comp.Status != "" {
			comparisons = append(comparisons, comp)
			continue
		}

		comp.CurrentDuration = curr.Duration
		comp.CurrentMFLOPS = curr.MFLOPS
		if curr.Duration > 0 {
			comp.SpeedupFactor = float64(base.Duration) / float64(curr.Duration)
		}

		switch {
		case comp.SpeedupFactor > 0 && comp.SpeedupFactor < 1.0/perfRegress:
			comp.Status = statusSlower
			comp.Message = fmt.Sprintf("Performance regression: %.2fx slower", 1.0/comp.SpeedupFactor)
		case comp.SpeedupFactor > 1.2:
			comp.Status = statusFaster
			comp.Message = fmt.Sprintf("Performance improvement: %.2fx faster", comp.SpeedupFactor)
		default:
			comp.Status = statusPass
		}

		comparisons = append(comparisons, comp)
	}

	return comparisons
}

func printSummary(w io.Writer, comparisons []ComparisonResult) {
	fmt.Fprintln(w, "=== gemmbench Session Comparison ===")
	fmt.Fprintln(w)

	statusCount := make(map[string]int)
	for _, comp := range comparisons {
		statusCount[comp.Status]++
	}

	fmt.Fprintf(w, "Total strategies: %d\n", len(comparisons))
	fmt.Fprintf(w, "  PASS:   %d\n", statusCount[statusPass])
	fmt.Fprintf(w, "  FAIL:   %d\n", statusCount[statusFail])
	fmt.Fprintf(w, "  SLOWER: %d\n", statusCount[statusSlower])
	fmt.Fprintf(w, "  FASTER: %d\n", statusCount[statusFaster])
	fmt.Fprintln(w)

	if statusCount[statusFail] > 0 {
		fmt.Fprintln(w, "FAILURES:")
		for _, comp := range comparisons {
			if comp.Status == statusFail {
				fmt.Fprintf(w, "  %s: %s\n", comp.Name, comp.Message)
			}
		}
		fmt.Fprintln(w)
	}

	if statusCount[statusSlower] > 0 || statusCount[statusFaster] > 0 {
		fmt.Fprintln(w, "PERFORMANCE CHANGES:")
		for _, comp := range comparisons {
			if comp.Status == statusSlower || comp.Status == statusFaster {
				fmt.Fprintf(w, "  %s: %s (%.1fms -> %.1fms)\n",
					comp.Name, comp.Message,
					float64(comp.BaselineDuration)/1e6,
					float64(comp.CurrentDuration)/1e6)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "DETAILED RESULTS:")
	fmt.Fprintf(w, "%-12s %-6s %12s %12s %12s %12s %8s\n",
		"Strategy", "Status", "Base ms", "Current ms", "Base MFlops", "Cur MFlops", "Speedup")
	fmt.Fprintln(w, strings.Repeat("-", 82))

	for _, comp := range comparisons {
		fmt.Fprintf(w, "%-12s %-6s %12.1f %12.1f %12.1f %12.1f %8.2f\n",
			comp.Name,
			comp.Status,
			float64(comp.BaselineDuration)/1e6,
			float64(comp.CurrentDuration)/1e6,
			comp.BaselineMFLOPS,
			comp.CurrentMFLOPS,
			comp.SpeedupFactor)
	}
}
