package rng

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// returned errors wrap these with call-specific context.
var (
	// ErrConfiguration reports an invalid algorithm/method selection or a
	// binding call that the current configuration does not allow. The call
	// will keep failing until the configuration is fixed.
	ErrConfiguration = errors.New("rng: invalid configuration")

	// ErrNotReady reports a draw attempted before a required external
	// uniform source or normal callback was bound. Binding and retrying
	// recovers.
	ErrNotReady = errors.New("rng: external source not bound")

	// ErrCorruptState reports a snapshot that cannot be restored. The engine
	// state is left unchanged; it never falls back to a default seed.
	ErrCorruptState = errors.New("rng: corrupt snapshot")
)
