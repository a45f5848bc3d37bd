// Package randutil centralises how engine seeds are derived so that all call
// sites get reproducible streams from the same inputs.
package randutil

import (
	"github.com/coder/quartz"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// SeedFromInt64 folds a caller-chosen 64-bit value down to the 32-bit seed
// the engine's scrambling rule expects, spreading entropy from both halves.
func SeedFromInt64(seed int64) uint32 {
	u := mix(uint64(seed))
	return uint32(u ^ (u >> 32))
}

// TimeSeed derives a seed from the clock, for callers that did not pick one.
// The clock is injectable so the fallback path stays testable.
func TimeSeed(clock quartz.Clock) uint32 {
	now := clock.Now()
	u := mix(uint64(now.UnixNano()) + goldenRatio64)
	return uint32(u ^ (u >> 32))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
