package gemmbench

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// StrategyResult is the outcome of timing one multiplier.
type StrategyResult struct {
	Name     string
	Duration time.Duration
	MFLOPS   float64
	Product  *Matrix

	// Counters is nil unless hardware counters were requested and readable.
	Counters *PerfCounters

	// Verification and Exact compare Product against the first strategy's
	// product. The first strategy trivially matches itself.
	Verification VerificationResult
	Exact        bool
}

// Harness runs every multiplier once on the same pair of random inputs,
// in sequence, and times each call.
type Harness struct {
	Config      Config
	Multipliers []Multiplier
	Logger      zerolog.Logger
	Session     *SessionLogger
}

// HarnessOption customizes a Harness.
type HarnessOption func(*Harness)

// WithLogger sets the logger used for progress messages.
func WithLogger(l zerolog.Logger) HarnessOption {
	return func(h *Harness) { h.Logger = l }
}

// WithMultipliers replaces the default strategies.
func WithMultipliers(ms ...Multiplier) HarnessOption {
	return func(h *Harness) { h.Multipliers = ms }
}

// WithSessionLogger records every result into s as it completes.
func WithSessionLogger(s *SessionLogger) HarnessOption {
	return func(h *Harness) { h.Session = s }
}

// NewHarness builds a harness for cfg. Unless overridden, the strategies are
// naive, reference and blocked, in that order, so naive is the baseline.
func NewHarness(cfg Config, opts ...HarnessOption) *Harness {
	h := &Harness{
		Config: cfg,
		Logger: zerolog.Nop(),
		Multipliers: []Multiplier{
			NaiveMultiplier{},
			ReferenceMultiplier{},
			&BlockedMultiplier{Block: cfg.BlockSize, Workers: cfg.Workers},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MFLOPS converts an elapsed time for one n×n product into millions of
// floating-point operations per second. A zero duration yields 0.
func MFLOPS(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(Flops(n)) / d.Seconds() * 1e-6
}

// Run generates the inputs and times every strategy. It stops between
// strategies if ctx is done; a multiplication in progress is not interrupted.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	cfg := h.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(h.Multipliers) == 0 {
		return nil, NewInvalidArgError("Run", "no multipliers configured")
	}

	seed := ResolveSeed(cfg.Seed)
	rng := NewRand(seed)
	a, err := NewMatrix(cfg.N)
	if err != nil {
		return nil, err
	}
	b, err := NewMatrix(cfg.N)
	if err != nil {
		return nil, err
	}
	FillRandom(a, rng)
	FillRandom(b, rng)

	report := &Report{
		N:       cfg.N,
		Block:   cfg.BlockSize,
		Workers: cfg.Workers,
		Seed:    seed,
		Flops:   Flops(cfg.N),
		Backend: BLASBackend(),
		CPU:     CPUInfo(),
	}
	h.Logger.Debug().
		Int("n", cfg.N).
		Int("block", cfg.BlockSize).
		Int("workers", cfg.Workers).
		Int64("seed", seed).
		Msg("inputs generated")

	counters := cfg.Counters
	if counters {
		if err := CountersAvailable(); err != nil {
			h.Logger.Warn().Err(err).Msg("hardware counters unavailable, timing only")
			counters = false
		}
	}

	for _, m := range h.Multipliers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := NewMatrix(cfg.N)
		if err != nil {
			return nil, err
		}
		if cfg.ColdCache {
			FlushCaches(0)
		}

		elapsed, hw, err := h.timeMultiply(m, a, b, c, counters)
		if err != nil {
			if lerr := h.Session.LogFail(m.Name(), cfg, seed, err); lerr != nil {
				h.Logger.Warn().Err(lerr).Msg("session log write failed")
			}
			return nil, NewExecutionError("Run", fmt.Sprintf("%s multiplication failed", m.Name()), err)
		}

		res := StrategyResult{
			Name:     m.Name(),
			Duration: elapsed,
			MFLOPS:   MFLOPS(cfg.N, elapsed),
			Product:  c,
			Counters: hw,
		}
		report.Results = append(report.Results, res)
		if err := h.Session.LogPass(res, cfg, seed); err != nil {
			h.Logger.Warn().Err(err).Msg("session log write failed")
		}

		h.Logger.Info().
			Str("strategy", res.Name).
			Dur("elapsed", res.Duration).
			Float64("mflops", res.MFLOPS).
			Msg("multiplication finished")
	}

	baseline := report.Results[0].Product
	for i := range report.Results {
		r := &report.Results[i]
		r.Verification = Verify(baseline, r.Product, cfg.Tolerance)
		r.Exact = ExactEqual(baseline, r.Product)
		if !r.Verification.OK() {
			h.Logger.Warn().
				Str("strategy", r.Name).
				Str("baseline", report.Results[0].Name).
				Int("mismatches", r.Verification.NumErrors).
				Float64("max_abs_error", r.Verification.MaxAbsError).
				Msg("product differs from baseline")
		}
	}

	return report, nil
}

// timeMultiply times one call of m. With counters set it also reads the
// hardware counters; a counter failure is logged and leaves them nil.
func (h *Harness) timeMultiply(m Multiplier, a, b, c *Matrix, counters bool) (time.Duration, *PerfCounters, error) {
	var elapsed time.Duration
	timed := func() error {
		start := time.Now()
		err := m.Multiply(a, b, c)
		elapsed = time.Since(start)
		return err
	}

	if !counters {
		err := timed()
		return elapsed, nil, err
	}

	var (
		ran    bool
		mulErr error
	)
	hw, err := measureCounters(func() error {
		ran = true
		mulErr = timed()
		return mulErr
	})
	if mulErr != nil {
		return elapsed, nil, mulErr
	}
	if err != nil {
		h.Logger.Warn().Err(err).Str("strategy", m.Name()).Msg("hardware counter read failed")
		if !ran {
			err = timed()
			return elapsed, nil, err
		}
		return elapsed, nil, nil
	}
	return elapsed, hw, nil
}
