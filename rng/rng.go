// Package rng is the random-number engine behind the model-fitting code. It
// reproduces, bit for bit, the uniform generators and standard-normal
// transforms of the reference statistical environment, so that a fit seeded
// the same way produces the same stream on any host.
//
// An Engine is single-owner: it performs no locking, and two goroutines must
// never share one. Independent engines are safe to run in parallel.
package rng

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// UniformSource is the contract an externally owned uniform generator has to
// satisfy for an engine configured with UserPointer or UserUniform. The
// engine never introspects the source and does not manage its lifetime.
type UniformSource interface {
	// NextUniform returns the source's next draw. The engine does not
	// validate the range; sources are expected to stay inside (0,1).
	NextUniform() float64
}

// UniformFunc adapts a plain callback to a UniformSource.
type UniformFunc func() float64

// NextUniform calls f.
func (f UniformFunc) NextUniform() float64 { return f() }

// NormalFunc is a caller-supplied standard-normal generator, used when the
// normal method is UserNorm.
type NormalFunc func() float64

// Engine holds one independent random stream: the bound uniform algorithm's
// word array, the selected normal method, and the cached second variate that
// two-at-a-time transforms produce.
type Engine struct {
	alg    Algorithm
	method NormalMethod

	state    uniformState  // owned state; nil for the user-supplied variants
	external UniformSource // delegate for UserUniform / UserPointer
	normFn   NormalFunc    // delegate for UserNorm

	// Box-Muller produces two variates per transform; the second waits here
	// until the next call. Cleared on any reseed or reconfiguration.
	keep    float64
	hasKeep bool

	logger *log.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger attaches a logger used for debug-level configuration traces.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an engine bound to the given uniform algorithm and normal
// method, seeded with seed. For UserUniform and UserPointer the engine is
// created unready, and draws fail with ErrNotReady until a source is bound
// via BindExternalUniform.
func New(alg Algorithm, method NormalMethod, seed uint32, opts ...Option) (*Engine, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: uniform algorithm %d", ErrConfiguration, alg)
	}
	if !method.valid() {
		return nil, fmt.Errorf("%w: normal method %d", ErrConfiguration, method)
	}

	e := &Engine{alg: alg, method: method}
	for _, opt := range opts {
		opt(e)
	}
	if alg.builtin() {
		e.state = newUniformState(alg, seed)
	}
	if e.logger != nil {
		e.logger.Debug("engine created",
			"algorithm", alg, "normal", method, "ready", e.ready())
	}
	return e, nil
}

// Algorithm returns the bound uniform algorithm.
func (e *Engine) Algorithm() Algorithm { return e.alg }

// NormalMethod returns the bound normal method.
func (e *Engine) NormalMethod() NormalMethod { return e.method }

// Ready reports whether draws can succeed: an engine on a user-supplied
// variant stays unready until a source is bound.
func (e *Engine) Ready() bool { return e.ready() }

func (e *Engine) ready() bool {
	return e.state != nil || e.external != nil
}

// BindExternalUniform attaches the external source an engine configured with
// UserUniform or UserPointer delegates to, moving the engine from unready to
// ready. For any other algorithm it fails with ErrConfiguration.
func (e *Engine) BindExternalUniform(src UniformSource) error {
	if e.alg != UserUniform && e.alg != UserPointer {
		return fmt.Errorf("%w: %s does not take an external source", ErrConfiguration, e.alg)
	}
	if src == nil {
		return fmt.Errorf("%w: nil external source", ErrConfiguration)
	}
	e.external = src
	return nil
}

// BindNormal attaches the callback a UserNorm engine delegates normal draws
// to.
func (e *Engine) BindNormal(fn NormalFunc) error {
	if e.method != UserNorm {
		return fmt.Errorf("%w: %s does not take a normal callback", ErrConfiguration, e.method)
	}
	if fn == nil {
		return fmt.Errorf("%w: nil normal callback", ErrConfiguration)
	}
	e.normFn = fn
	return nil
}

// Uniform returns the next uniform draw in (0,1).
func (e *Engine) Uniform() (float64, error) {
	if e.state != nil {
		return e.state.next(), nil
	}
	if e.external == nil {
		return 0, fmt.Errorf("%w: uniform draw on unready engine", ErrNotReady)
	}
	return e.external.NextUniform(), nil
}

// UniformN fills dst with consecutive uniform draws.
func (e *Engine) UniformN(dst []float64) error {
	for i := range dst {
		v, err := e.Uniform()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// Normal returns the next standard-normal draw using the bound method.
func (e *Engine) Normal() (float64, error) {
	if e.method == UserNorm {
		if e.normFn == nil {
			return 0, fmt.Errorf("%w: normal draw without a bound callback", ErrNotReady)
		}
		return e.normFn(), nil
	}

	if e.method == BoxMuller && e.hasKeep {
		e.hasKeep = false
		return e.keep, nil
	}

	if !e.ready() {
		return 0, fmt.Errorf("%w: normal draw on unready engine", ErrNotReady)
	}
	unif := e.mustUniform

	switch e.method {
	case Inversion:
		return inversionNormal(unif), nil
	case BoxMuller:
		ret, keep := boxMullerPair(unif)
		e.keep, e.hasKeep = keep, true
		return ret, nil
	case AhrensDieter:
		return ahrensDieter(unif), nil
	case KindermanRamage:
		return kindermanRamage(unif, false), nil
	case BuggyKindermanRamage:
		return kindermanRamage(unif, true), nil
	default:
		return 0, fmt.Errorf("%w: normal method %d", ErrConfiguration, e.method)
	}
}

// NormalN fills dst with consecutive standard-normal draws.
func (e *Engine) NormalN(dst []float64) error {
	for i := range dst {
		v, err := e.Normal()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// mustUniform is the draw path handed to the normal transforms; readiness is
// checked before the transform starts.
func (e *Engine) mustUniform() float64 {
	if e.state != nil {
		return e.state.next()
	}
	return e.external.NextUniform()
}

// Reseed re-derives the engine's internal state from seed, exactly as
// construction would, and drops any cached normal variate so nothing leaks
// across the reseed boundary. On user-supplied variants only the cache is
// cleared; the external source owns its own state.
func (e *Engine) Reseed(seed uint32) {
	if e.state != nil {
		e.state.reseed(seed)
	}
	e.hasKeep = false
	if e.logger != nil {
		e.logger.Debug("engine reseeded", "algorithm", e.alg, "seed", seed)
	}
}

// SetAlgorithm switches the uniform algorithm, rebuilding internal state from
// seed. The old word array is meaningless to the new algorithm, so a fresh
// seed is mandatory. Any bound external source is kept for the user-supplied
// variants.
func (e *Engine) SetAlgorithm(alg Algorithm, seed uint32) error {
	if !alg.valid() {
		return fmt.Errorf("%w: uniform algorithm %d", ErrConfiguration, alg)
	}
	e.alg = alg
	if alg.builtin() {
		e.state = newUniformState(alg, seed)
	} else {
		e.state = nil
	}
	e.hasKeep = false
	if e.logger != nil {
		e.logger.Debug("algorithm switched", "algorithm", alg, "ready", e.ready())
	}
	return nil
}

// SetNormalMethod switches the normal method, dropping any cached variate
// from the previous one.
func (e *Engine) SetNormalMethod(method NormalMethod) error {
	if !method.valid() {
		return fmt.Errorf("%w: normal method %d", ErrConfiguration, method)
	}
	e.method = method
	e.hasKeep = false
	return nil
}
