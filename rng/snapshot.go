package rng

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// snapshotVersion guards against decoding snapshots from a different layout.
const snapshotVersion = 1

// snapshot is the serialized form of an engine: selector tags, the full word
// array, and the normal-method cache. Enough to resume an identical draw
// sequence.
type snapshot struct {
	Version   int      `cbor:"1,keyasint"`
	Algorithm int32    `cbor:"2,keyasint"`
	Normal    int32    `cbor:"3,keyasint"`
	Words     []uint32 `cbor:"4,keyasint"`
	HasKeep   bool     `cbor:"5,keyasint"`
	Keep      float64  `cbor:"6,keyasint"`
}

var snapshotEncMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Snapshot serializes the engine state to opaque bytes. Engines on
// user-supplied variants own no state to serialize and fail with
// ErrConfiguration.
func (e *Engine) Snapshot() ([]byte, error) {
	if e.state == nil {
		return nil, fmt.Errorf("%w: %s state is externally owned", ErrConfiguration, e.alg)
	}
	snap := snapshot{
		Version:   snapshotVersion,
		Algorithm: int32(e.alg),
		Normal:    int32(e.method),
		Words:     e.state.words(),
		HasKeep:   e.hasKeep,
		Keep:      e.keep,
	}
	return snapshotEncMode.Marshal(&snap)
}

// Restore replaces the engine state with the one captured by Snapshot.
// Undecodable bytes, unknown tags, and word arrays of the wrong shape or with
// out-of-range words all fail with ErrCorruptState and leave the engine
// untouched; it never falls back to a default seed.
func (e *Engine) Restore(data []byte) error {
	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("%w: unsupported snapshot version %d", ErrCorruptState, snap.Version)
	}

	alg := Algorithm(snap.Algorithm)
	method := NormalMethod(snap.Normal)
	if !alg.builtin() {
		return fmt.Errorf("%w: algorithm tag %d", ErrCorruptState, snap.Algorithm)
	}
	if !method.valid() {
		return fmt.Errorf("%w: normal method tag %d", ErrCorruptState, snap.Normal)
	}

	// Build the state aside first so a bad word array cannot leave the
	// engine half-restored.
	state := newUniformState(alg, 0)
	if !state.setWords(snap.Words) {
		return fmt.Errorf("%w: %d state words do not fit %s", ErrCorruptState, len(snap.Words), alg)
	}

	e.alg = alg
	e.method = method
	e.state = state
	e.external = nil
	e.hasKeep = snap.HasKeep
	e.keep = snap.Keep
	if e.logger != nil {
		e.logger.Debug("engine restored", "algorithm", alg, "normal", method)
	}
	return nil
}
