package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LynnColeArt/gemmbench"
)

func TestParsePlainOutput(t *testing.T) {
	out := `goos: linux
goarch: amd64
pkg: github.com/LynnColeArt/gemmbench
BenchmarkMultipliers/naive/n=64-8         	    1000	   1048576 ns/op	       500.00 MFLOPS
BenchmarkMultipliers/blocked_4w/n=64-8    	    5000	    262144 ns/op	      2000.00 MFLOPS
BenchmarkBlockSizes/block_16/n=256-8      	     100	  16777216 ns/op
BenchmarkFlushCaches-8                    	      10	 100000000 ns/op	 671.09 MB/s
PASS
`
	results, err := parseBenchOutput(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "naive/n=64", results[0].Name)
	assert.Equal(t, 64, results[0].N)
	assert.Equal(t, gemmbench.StatusPass, results[0].Status)
	assert.Equal(t, time.Duration(1048576), results[0].Duration)
	assert.Equal(t, 500.0, results[0].MFLOPS)

	assert.Equal(t, "blocked_4w/n=64", results[1].Name)

	// MFLOPS derived from ns/op when the metric is missing
	assert.Equal(t, "block_16/n=256", results[2].Name)
	assert.InDelta(t, gemmbench.MFLOPS(256, 16777216), results[2].MFLOPS, 1e-9)
}

func TestParseJSONOutput(t *testing.T) {
	out := `{"Action":"run","Package":"p","Test":"BenchmarkMultipliers/reference/n=256"}
{"Action":"output","Package":"p","Test":"BenchmarkMultipliers/reference/n=256","Output":"BenchmarkMultipliers/reference/n=256-4 \t     200\t   5000000 ns/op\t  6710.89 MFLOPS\n"}
{"Action":"fail","Package":"p","Test":"BenchmarkMultipliers/blocked/n=256"}
`
	results, err := parseBenchOutput(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "reference/n=256", results[0].Name)
	assert.Equal(t, 5*time.Millisecond, results[0].Duration)
	assert.Equal(t, 6710.89, results[0].MFLOPS)

	assert.Equal(t, "blocked/n=256", results[1].Name)
	assert.Equal(t, gemmbench.StatusFail, results[1].Status)
	assert.Equal(t, 256, results[1].N)
}

func TestSplitBenchName(t *testing.T) {
	tests := []struct {
		in   string
		name string
		n    int
		ok   bool
	}{
		{"BenchmarkMultipliers/naive/n=512", "naive/n=512", 512, true},
		{"BenchmarkMultipliers/naive/n=512-16", "naive/n=512", 512, true},
		{"BenchmarkBlockSizes/block_8/n=256", "block_8/n=256", 256, true},
		{"BenchmarkFlushCaches", "", 0, false},
		{"BenchmarkMultipliers/naive", "", 0, false},
		{"BenchmarkMultipliers/naive/size=4", "", 0, false},
		{"BenchmarkOther/naive/n=4", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, n, ok := splitBenchName(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.n, n)
		})
	}
}
