package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LynnColeArt/gemmbench"
)

func result(name string, n int, d time.Duration) gemmbench.BenchmarkResult {
	return gemmbench.BenchmarkResult{
		Name:     name,
		Status:   gemmbench.StatusPass,
		N:        n,
		Duration: d,
		MFLOPS:   gemmbench.MFLOPS(n, d),
	}
}

func TestCompareResults(t *testing.T) {
	baseline := []gemmbench.BenchmarkResult{
		result("naive", 512, 100*time.Millisecond),
		result("reference", 512, 100*time.Millisecond),
		result("blocked", 512, 100*time.Millisecond),
		result("slow", 512, 100*time.Millisecond),
		result("resized", 512, 100*time.Millisecond),
		result("broken", 512, 100*time.Millisecond),
		result("gone", 512, 100*time.Millisecond),
	}
	broken := result("broken", 512, 0)
	broken.Status = gemmbench.StatusFail
	broken.Error = "boom"
	current := []gemmbench.BenchmarkResult{
		result("naive", 512, 105*time.Millisecond),
		result("reference", 512, 50*time.Millisecond),
		result("blocked", 512, 95*time.Millisecond),
		result("slow", 512, 150*time.Millisecond),
		result("resized", 256, 10*time.Millisecond),
		broken,
	}

	got := compareResults(baseline, current, 1.1)
	require.Len(t, got, len(baseline))

	want := map[string]string{
		"naive":     statusPass,
		"reference": statusFaster,
		"blocked":   statusPass,
		"slow":      statusSlower,
		"resized":   statusFail,
		"broken":    statusFail,
		"gone":      statusFail,
	}
	for _, c := range got {
		assert.Equal(t, want[c.Name], c.Status, "%s: %s", c.Name, c.Message)
	}

	assert.InDelta(t, 2.0, got[1].SpeedupFactor, 1e-9)
	assert.Contains(t, got[3].Message, "1.50x slower")
	assert.Contains(t, got[5].Message, "boom")
	assert.Equal(t, "Strategy missing in current results", got[6].Message)
}

func TestPrintSummary(t *testing.T) {
	comparisons := compareResults(
		[]gemmbench.BenchmarkResult{result("blocked", 64, 10*time.Millisecond), result("naive", 64, time.Millisecond)},
		[]gemmbench.BenchmarkResult{result("blocked", 64, 20*time.Millisecond)},
		1.1)

	var buf bytes.Buffer
	printSummary(&buf, comparisons)
	out := buf.String()

	assert.Contains(t, out, "Total strategies: 2")
	assert.Contains(t, out, "FAILURES:")
	assert.Contains(t, out, "naive: Strategy missing in current results")
	assert.Contains(t, out, "PERFORMANCE CHANGES:")
	assert.Contains(t, out, "blocked: Performance regression: 2.00x slower (10.0ms -> 20.0ms)")
}
