// Package cpu reports the SIMD extensions algo-vecmath can dispatch to on
// this machine. The exciter logs the result at startup so slow systems can
// be diagnosed from a log line.
package cpu

import (
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sys/cpu"
)

// SIMDLevel is the widest vector extension available.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
)

// String returns the extension name.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the detected extensions.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	Architecture string // runtime.GOARCH
}

// Best returns the widest extension in f.
func (f Features) Best() SIMDLevel {
	switch {
	case f.HasAVX512:
		return SIMDAVX512
	case f.HasAVX2:
		return SIMDAVX2
	case f.HasAVX:
		return SIMDAVX
	case f.HasSSE2:
		return SIMDSSE2
	case f.HasNEON:
		return SIMDNEON
	default:
		return SIMDNone
	}
}

// List returns the names of all detected extensions, narrowest first.
func (f Features) List() string {
	var names []string
	for _, e := range []struct {
		on    bool
		level SIMDLevel
	}{
		{f.HasSSE2, SIMDSSE2},
		{f.HasAVX, SIMDAVX},
		{f.HasAVX2, SIMDAVX2},
		{f.HasAVX512, SIMDAVX512},
		{f.HasNEON, SIMDNEON},
	} {
		if e.on {
			names = append(names, e.level.String())
		}
	}
	if len(names) == 0 {
		return SIMDNone.String()
	}
	return strings.Join(names, ",")
}

var detect = sync.OnceValue(func() Features {
	f := Features{Architecture: runtime.GOARCH}

	switch runtime.GOARCH {
	case "amd64":
		f.HasSSE2 = cpu.X86.HasSSE2
		f.HasAVX = cpu.X86.HasAVX
		f.HasAVX2 = cpu.X86.HasAVX2
		f.HasAVX512 = cpu.X86.HasAVX512
	case "arm64":
		// NEON (ASIMD) is mandatory on ARMv8.
		f.HasNEON = cpu.ARM64.HasASIMD
	}

	return f
})

// DetectFeatures returns the features of the running CPU. Detection runs
// once.
func DetectFeatures() Features {
	return detect()
}
