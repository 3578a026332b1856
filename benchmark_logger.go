package gemmbench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Result statuses
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// BenchmarkResult captures the result of timing one strategy
type BenchmarkResult struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"` // "pass" or "fail"
	N         int           `json:"n"`
	Block     int           `json:"block"`
	Workers   int           `json:"workers"`
	Seed      int64         `json:"seed"`
	Duration  time.Duration `json:"duration_ns,omitempty"`
	MFLOPS    float64       `json:"mflops,omitempty"`
	Counters  *PerfCounters `json:"counters,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SessionLogger writes benchmark results of one session to a JSON file.
// A nil *SessionLogger discards everything.
type SessionLogger struct {
	mu          sync.Mutex
	results     []BenchmarkResult
	sessionFile string
}

// NewSessionLogger creates dir if needed and starts a session file named
// <session>_<timestamp>.json inside it.
func NewSessionLogger(dir, session string) (*SessionLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	sl := &SessionLogger{
		sessionFile: filepath.Join(dir, fmt.Sprintf("%s_%s.json", session, timestamp)),
	}

	if err := sl.flush(); err != nil {
		return nil, err
	}
	return sl, nil
}

// Path returns the session file path.
func (sl *SessionLogger) Path() string {
	if sl == nil {
		return ""
	}
	return sl.sessionFile
}

// Log appends a result and flushes the session file, so a crash in a later
// strategy keeps the earlier numbers.
func (sl *SessionLogger) Log(result BenchmarkResult) error {
	if sl == nil {
		return nil
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	sl.results = append(sl.results, result)
	return sl.flush()
}

// LogPass records a completed multiplication.
func (sl *SessionLogger) LogPass(res StrategyResult, cfg Config, seed int64) error {
	return sl.Log(BenchmarkResult{
		Name:     res.Name,
		Status:   StatusPass,
		N:        cfg.N,
		Block:    cfg.BlockSize,
		Workers:  cfg.Workers,
		Seed:     seed,
		Duration: res.Duration,
		MFLOPS:   res.MFLOPS,
		Counters: res.Counters,
	})
}

// LogFail records a multiplication that returned an error.
func (sl *SessionLogger) LogFail(name string, cfg Config, seed int64, err error) error {
	return sl.Log(BenchmarkResult{
		Name:    name,
		Status:  StatusFail,
		N:       cfg.N,
		Block:   cfg.BlockSize,
		Workers: cfg.Workers,
		Seed:    seed,
		Error:   err.Error(),
	})
}

// Results returns a copy of the results logged so far.
func (sl *SessionLogger) Results() []BenchmarkResult {
	if sl == nil {
		return nil
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return append([]BenchmarkResult(nil), sl.results...)
}

// flush writes results to disk
func (sl *SessionLogger) flush() error {
	results := sl.results
	if results == nil {
		results = []BenchmarkResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	return os.WriteFile(sl.sessionFile, data, 0644)
}

// LatestLogFile returns the most recently modified session file in dir.
func LatestLogFile(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no log files found in %s", dir)
	}

	var latest string
	var latestTime time.Time
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = file
			latestTime = info.ModTime()
		}
	}

	return latest, nil
}

// LoadResults reads a session file.
func LoadResults(path string) ([]BenchmarkResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var results []BenchmarkResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return results, nil
}
