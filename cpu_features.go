package gemmbench

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks CPU instruction set extensions relevant to the kernels.
// The blocked inner loop is plain Go; these are reported so that numbers
// from different machines can be told apart.
type CPUFeatures struct {
	HasSSE4     bool
	HasAVX      bool
	HasAVX2     bool
	HasFMA      bool
	HasAVX512F  bool // Foundation
	HasAVX512DQ bool // Double/Quad precision
	HasASIMD    bool // arm64 Advanced SIMD
	HasFP       bool // arm64 floating point
}

// Global CPU feature detection
var cpuFeatures CPUFeatures

func init() {
	detectCPUFeatures()
}

// detectCPUFeatures populates the global cpuFeatures struct
func detectCPUFeatures() {
	cpuFeatures = CPUFeatures{
		HasSSE4:     cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:      cpu.X86.HasAVX,
		HasAVX2:     cpu.X86.HasAVX2,
		HasFMA:      cpu.X86.HasFMA,
		HasAVX512F:  cpu.X86.HasAVX512F,
		HasAVX512DQ: cpu.X86.HasAVX512DQ,
		HasASIMD:    cpu.ARM64.HasASIMD,
		HasFP:       cpu.ARM64.HasFP,
	}
}

// DetectedCPUFeatures returns the features found at startup.
func DetectedCPUFeatures() CPUFeatures {
	return cpuFeatures
}

// Names lists the detected features in a stable order.
func (f CPUFeatures) Names() []string {
	var features []string
	if f.HasSSE4 {
		features = append(features, "SSE4")
	}
	if f.HasAVX {
		features = append(features, "AVX")
	}
	if f.HasAVX2 {
		features = append(features, "AVX2")
	}
	if f.HasFMA {
		features = append(features, "FMA")
	}
	if f.HasAVX512F {
		features = append(features, "AVX512F")
	}
	if f.HasAVX512DQ {
		features = append(features, "AVX512DQ")
	}
	if f.HasFP {
		features = append(features, "FP")
	}
	if f.HasASIMD {
		features = append(features, "ASIMD")
	}
	return features
}

// CPUInfo returns a one-line description of the host CPU.
func CPUInfo() string {
	features := cpuFeatures.Names()
	if len(features) == 0 {
		return runtime.GOARCH + ", no SIMD extensions detected"
	}
	return runtime.GOARCH + ", " + strings.Join(features, ", ")
}
