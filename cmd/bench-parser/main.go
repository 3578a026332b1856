// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bench-parser converts `go test -bench` output for the
// multiplier benchmarks into a session log that cmd/compare can read.
//
// Both plain text and `go test -json` streams are accepted:
//
//	go test -run '^$' -bench Multipliers -json . | bench-parser -out current.json
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LynnColeArt/gemmbench"
)

// TestEvent is one line of `go test -json` output
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test,omitempty"`
	Output  string    `json:"Output,omitempty"`
	Elapsed float64   `json:"Elapsed,omitempty"`
}

func main() {
	var (
		inFile  = flag.String("file", "", "benchmark output to parse (default: stdin)")
		outFile = flag.String("out", "", "session log to write (default: stdout)")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	in := io.Reader(os.Stdin)
	if *inFile != "" {
		f, err := os.Open(*inFile)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open benchmark output")
		}
		defer f.Close()
		in = f
	}

	results, err := parseBenchOutput(in)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse benchmark output")
	}
	if len(results) == 0 {
		log.Warn().Msg("no multiplier benchmarks found")
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot encode results")
	}

	if *outFile == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*outFile, data, 0644); err != nil {
		log.Fatal().Err(err).Str("file", *outFile).Msg("cannot write session log")
	}
	log.Info().Int("results", len(results)).Str("file", *outFile).Msg("session log written")
}

// parseBenchOutput collects one result per sub-benchmark of
// BenchmarkMultipliers or BenchmarkBlockSizes.
func parseBenchOutput(r io.Reader) ([]gemmbench.BenchmarkResult, error) {
	var results []gemmbench.BenchmarkResult
	scanner := bufio.NewScanner(r)

	currentTest := ""
	for scanner.Scan() {
		line := scanner.Text()

		var event TestEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			// plain `go test -bench` output
			event = TestEvent{Action: "output", Output: line}
			if fields := strings.Fields(line); len(fields) > 0 && strings.HasPrefix(fields[0], "Benchmark") {
				event.Test = trimProcs(fields[0])
			}
		}

		if event.Test != "" {
			currentTest = event.Test
		}

		switch {
		case event.Action == "output" && strings.Contains(event.Output, "ns/op"):
			if res, ok := parseBenchmarkLine(currentTest, event.Output); ok {
				results = append(results, res)
			}
		case event.Action == "fail" && event.Test != "":
			if name, n, ok := splitBenchName(event.Test); ok {
				results = append(results, gemmbench.BenchmarkResult{
					Name:   name,
					Status: gemmbench.StatusFail,
					N:      n,
					Error:  "benchmark failed",
				})
			}
		}
	}
	return results, scanner.Err()
}

// parseBenchmarkLine reads the metrics of a result line such as
//
//	BenchmarkMultipliers/blocked/n=256-8   100   12345678 ns/op   2717.90 MFLOPS
func parseBenchmarkLine(testName, line string) (gemmbench.BenchmarkResult, bool) {
	name, n, ok := splitBenchName(testName)
	if !ok {
		return gemmbench.BenchmarkResult{}, false
	}

	result := gemmbench.BenchmarkResult{
		Name:   name,
		Status: gemmbench.StatusPass,
		N:      n,
	}
	fields := strings.Fields(line)
	for i := 1; i < len(fields); i++ {
		v, err := strconv.ParseFloat(fields[i-1], 64)
		if err != nil {
			continue
		}
		switch fields[i] {
		case "ns/op":
			result.Duration = time.Duration(v)
		case "MFLOPS":
			result.MFLOPS = v
		}
	}
	if result.Duration == 0 {
		return gemmbench.BenchmarkResult{}, false
	}
	if result.MFLOPS == 0 {
		result.MFLOPS = gemmbench.MFLOPS(n, result.Duration)
	}
	return result, true
}

// splitBenchName turns "BenchmarkMultipliers/blocked/n=256" into
// ("blocked/n=256", 256).
func splitBenchName(test string) (string, int, bool) {
	parts := strings.Split(trimProcs(test), "/")
	if len(parts) != 3 {
		return "", 0, false
	}
	if parts[0] != "BenchmarkMultipliers" && parts[0] != "BenchmarkBlockSizes" {
		return "", 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(parts[2], "n="))
	if err != nil || !strings.HasPrefix(parts[2], "n=") {
		return "", 0, false
	}
	return parts[1] + "/" + parts[2], n, true
}

// trimProcs drops the -GOMAXPROCS suffix go test appends to names.
func trimProcs(name string) string {
	i := strings.LastIndexByte(name, '-')
	if i < 0 {
		return name
	}
	if _, err := strconv.Atoi(name[i+1:]); err != nil {
		return name
	}
	return name[:i]
}
