package hash

import (
	"sync"

	"golang.org/x/sys/cpu"
)

var (
	avx2Once      sync.Once
	avx2Available bool
)

// HasAVX2 reports whether this CPU supports the AVX2-class fast path. The
// probe result is cached process-wide for the lifetime of the program
// (§9 open question: caching across calls is assumed safe, since CPU
// features cannot change at runtime).
func HasAVX2() bool {
	avx2Once.Do(func() {
		avx2Available = cpu.X86.HasAVX2
	})
	return avx2Available
}

// oneshotFast is the AVX2-class fast path. It must agree bit-for-bit with
// Oneshot for every input. No vectorized kernel ships with this build, so the
// fast path currently delegates to the portable implementation; the selection
// plumbing (HasAVX2 probe, backend indirection) is what callers depend on,
// and a real SIMD kernel can be dropped in behind it without touching Mine.
func oneshotFast(data []byte) [Size]byte {
	return Oneshot(data)
}

// OneshotBackend computes a SHA3-256 digest using the fastest backend
// available on this CPU, transparently to the caller. It is guaranteed to
// equal Oneshot(data) for all inputs.
func OneshotBackend(data []byte) [Size]byte {
	if HasAVX2() {
		return oneshotFast(data)
	}
	return Oneshot(data)
}
