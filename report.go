package gemmbench

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Report is the outcome of one harness run.
type Report struct {
	N       int
	Block   int
	Workers int
	Seed    int64
	Flops   int64
	Backend string
	CPU     string
	Results []StrategyResult
}

// Match reports whether every product agrees with the baseline within
// tolerance.
func (r *Report) Match() bool {
	for _, res := range r.Results {
		if !res.Verification.OK() {
			return false
		}
	}
	return true
}

// ExactMatch reports whether every product is bit-identical to the baseline.
func (r *Report) ExactMatch() bool {
	for _, res := range r.Results {
		if !res.Exact {
			return false
		}
	}
	return true
}

// Result looks up a strategy by name.
func (r *Report) Result(name string) (StrategyResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return StrategyResult{}, false
}

// Label returns the human-readable title of a strategy.
func (r *Report) Label(name string) string {
	switch name {
	case NameNaive:
		return "Naive algorithm"
	case NameReference:
		return fmt.Sprintf("BLAS (%s)", r.Backend)
	case NameBlocked:
		label := fmt.Sprintf("Blocked %dx%d tiles", r.Block, r.Block)
		if r.Workers > 1 {
			label += fmt.Sprintf(", %d workers", r.Workers)
		}
		return label
	default:
		return name
	}
}

// WriteText prints the report: operation count, one timing block per
// strategy, the match verdict, and the top-left corner of every product.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Matrix order: %d, seed: %d\n", r.N, r.Seed)
	fmt.Fprintf(&b, "CPU: %s\n", r.CPU)
	fmt.Fprintf(&b, "Difficulty of algorithm: %d floating-point operations\n\n", r.Flops)

	for _, res := range r.Results {
		fmt.Fprintf(&b, "%s: %.6f seconds\n", r.Label(res.Name), res.Duration.Seconds())
		fmt.Fprintf(&b, "Performance: %.2f MFlops\n", res.MFLOPS)
		if res.Counters != nil {
			fmt.Fprintf(&b, "Counters: %s\n", res.Counters)
		}
		b.WriteString("\n")
	}

	if len(r.Results) > 0 {
		baseline := r.Results[0].Name
		if r.Match() {
			b.WriteString("All matrices match")
			if !r.ExactMatch() {
				b.WriteString(" within tolerance (summation order differs)")
			}
			b.WriteString("!\n\n")
		} else {
			for _, res := range r.Results {
				if !res.Verification.OK() {
					fmt.Fprintf(&b, "%s vs %s: %s\n", res.Name, baseline, res.Verification)
				}
			}
			b.WriteString("\n")
		}
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\n", r.Label(res.Name))
		for _, row := range res.Product.Corner(CornerSize, CornerSize) {
			for _, v := range row {
				fmt.Fprintf(tw, "%g\t", v)
			}
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}
