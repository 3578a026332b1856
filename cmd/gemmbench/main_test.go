package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LynnColeArt/gemmbench"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunSmall(t *testing.T) {
	code, out, _ := runCmd(t, "-n", "9", "-block", "4", "-seed", "1")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "=== gemmbench ===")
	assert.Contains(t, out, "Matrix order: 9, seed: 1")
	assert.Contains(t, out, "Difficulty of algorithm: 1458 floating-point operations")
	assert.Contains(t, out, "Naive algorithm:")
	assert.Contains(t, out, "BLAS (")
	assert.Contains(t, out, "Blocked 4x4 tiles:")
	assert.Contains(t, out, "All matrices match!")
}

func TestRunParallelWorkers(t *testing.T) {
	code, out, _ := runCmd(t, "-n", "20", "-block", "3", "-workers", "4", "-seed", "5")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Blocked 3x3 tiles, 4 workers")
}

func TestRunSessionLog(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := runCmd(t, "-n", "8", "-seed", "3", "-log-dir", dir, "-session", "ci")
	require.Equal(t, 0, code)

	path, err := gemmbench.LatestLogFile(dir)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "ci_")

	results, err := gemmbench.LoadResults(path)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, gemmbench.StatusPass, r.Status)
		assert.Equal(t, 8, r.N)
		assert.Equal(t, int64(3), r.Seed)
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCmd(t, "-version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "gemmbench ")
}

func TestRunHelp(t *testing.T) {
	code, _, errOut := runCmd(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "Usage: gemmbench")
}

func TestRunBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"zero size", []string{"-n", "0"}},
		{"zero block", []string{"-block", "0"}},
		{"zero workers", []string{"-workers", "0"}},
		{"not a number", []string{"-n", "big"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCmd(t, tt.args...)
			assert.Equal(t, 2, code)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"-n", "8"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}

func TestOptionsConfig(t *testing.T) {
	o, err := parseFlags([]string{"-n", "100", "-block", "10", "-workers", "2", "-seed", "9",
		"-tol-abs", "0.5", "-tol-rel", "0.25", "-cold", "-counters"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := o.config()
	assert.Equal(t, 100, cfg.N)
	assert.Equal(t, 10, cfg.BlockSize)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 0.5, cfg.Tolerance.AbsTol)
	assert.Equal(t, 0.25, cfg.Tolerance.RelTol)
	assert.Equal(t, gemmbench.DefaultConfig().Tolerance.ULPTol, cfg.Tolerance.ULPTol)
	assert.True(t, cfg.ColdCache)
	assert.True(t, cfg.Counters)
}
