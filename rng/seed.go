package rng

import (
	"github.com/coder/quartz"

	"github.com/kristoforusbryant/dbarts/internal/randutil"
)

// NewSeededFromClock creates an engine seeded from the clock, for callers
// that did not pick a seed, mirroring the reference environment's behaviour
// when no seed has been set. The derived seed is returned so the stream can
// be reproduced later.
func NewSeededFromClock(alg Algorithm, method NormalMethod, clock quartz.Clock, opts ...Option) (*Engine, uint32, error) {
	seed := randutil.TimeSeed(clock)
	e, err := New(alg, method, seed, opts...)
	if err != nil {
		return nil, 0, err
	}
	return e, seed, nil
}
