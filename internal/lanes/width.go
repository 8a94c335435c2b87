package lanes

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"
)

const (
	// MaxWidth is the widest batch accepted by IsValidWidth.
	MaxWidth = 64

	// FallbackWidth is used when no vector extension is detected.
	FallbackWidth = 4

	// EnvWidth overrides NativeWidth when set to a valid width.
	EnvWidth = "VECSOLVE_LANES"
)

// IsValidWidth reports whether w is a power of two in [1, MaxWidth].
func IsValidWidth(w int) bool {
	return w >= 1 && w <= MaxWidth && w&(w-1) == 0
}

// ValidWidths returns every legal width up to limit, in increasing order.
func ValidWidths(limit int) []int {
	var widths []int
	for w := 1; w <= limit && w <= MaxWidth; w <<= 1 {
		widths = append(widths, w)
	}
	return widths
}

// Extension names the vector extension that NativeWidth was derived from.
type Extension uint8

const (
	// Generic means no usable vector extension was detected.
	Generic Extension = iota
	// SSE2 is x86-64 128-bit SIMD.
	SSE2
	// NEON is ARM64 Advanced SIMD.
	NEON
	// AVX2 is x86-64 256-bit SIMD.
	AVX2
	// AVX512 is x86-64 AVX-512 Foundation.
	AVX512
)

// String returns the lowercase name of the extension.
func (e Extension) String() string {
	switch e {
	case Generic:
		return "generic"
	case SSE2:
		return "sse2"
	case NEON:
		return "neon"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// Lanes returns how many 64-bit lanes fit in one register of the extension.
func (e Extension) Lanes() int {
	switch e {
	case AVX512:
		return 8
	case AVX2:
		return 4
	case SSE2, NEON:
		return 2
	default:
		return FallbackWidth
	}
}

// DetectExtension returns the widest vector extension reported by the CPU.
func DetectExtension() Extension {
	switch {
	case cpu.X86.HasAVX512F:
		return AVX512
	case cpu.X86.HasAVX2, cpu.X86.HasAVX:
		return AVX2
	case cpu.ARM64.HasASIMD:
		return NEON
	case cpu.X86.HasSSE2:
		return SSE2
	default:
		return Generic
	}
}

// NativeWidth returns the default batch width for this machine: the
// VECSOLVE_LANES override when it holds a valid width, otherwise the lane
// count of the detected extension.
func NativeWidth() int {
	if w, ok := ParseWidth(os.Getenv(EnvWidth)); ok {
		return w
	}
	return DetectExtension().Lanes()
}

// ParseWidth parses s as a batch width.
func ParseWidth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	w, err := strconv.Atoi(s)
	if err != nil || !IsValidWidth(w) {
		return 0, false
	}
	return w, true
}
