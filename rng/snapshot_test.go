package rng

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	for _, alg := range builtinAlgorithms {
		t.Run(alg.String(), func(t *testing.T) {
			eng, err := New(alg, BoxMuller, 7)
			require.NoError(t, err)

			// Advance mid-stream, with a variate waiting in the cache.
			for i := 0; i < 137; i++ {
				_, err := eng.Uniform()
				require.NoError(t, err)
			}
			_, err = eng.Normal()
			require.NoError(t, err)

			snap, err := eng.Snapshot()
			require.NoError(t, err)

			want := make([]float64, 64)
			require.NoError(t, eng.NormalN(want))

			require.NoError(t, eng.Restore(snap))
			got := make([]float64, 64)
			require.NoError(t, eng.NormalN(got))

			assert.Equal(t, want, got, "restored stream must continue identically")
		})
	}
}

func TestRestoreIntoFreshEngine(t *testing.T) {
	a, err := New(KnuthTAOCP2, Inversion, 9)
	require.NoError(t, err)
	for i := 0; i < 250; i++ {
		a.Uniform()
	}
	snap, err := a.Snapshot()
	require.NoError(t, err)

	// The receiving engine's own configuration is irrelevant; the snapshot
	// carries its selectors with it.
	b, err := New(WichmannHill, BoxMuller, 1)
	require.NoError(t, err)
	require.NoError(t, b.Restore(snap))

	assert.Equal(t, KnuthTAOCP2, b.Algorithm())
	assert.Equal(t, Inversion, b.NormalMethod())

	for i := 0; i < 100; i++ {
		va, _ := a.Uniform()
		vb, _ := b.Uniform()
		require.Equal(t, va, vb, "draw %d", i)
	}
}

func TestSnapshotOfUserVariantFails(t *testing.T) {
	eng, err := New(UserPointer, Inversion, 0)
	require.NoError(t, err)
	require.NoError(t, eng.BindExternalUniform(UniformFunc(func() float64 { return 0.5 })))

	_, err = eng.Snapshot()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	eng, err := New(MersenneTwister, Inversion, 3)
	require.NoError(t, err)
	good, err := eng.Snapshot()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not a snapshot")},
		{"truncated", good[:len(good)/2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eng.Restore(tt.data)
			assert.ErrorIs(t, err, ErrCorruptState)
		})
	}

	// A failed restore leaves the engine drawing exactly as before.
	ref, _ := New(MersenneTwister, Inversion, 3)
	va, _ := eng.Uniform()
	vb, _ := ref.Uniform()
	assert.Equal(t, vb, va)
}

func TestRestoreRejectsMismatchedWords(t *testing.T) {
	a, _ := New(WichmannHill, Inversion, 1)
	snapWH, err := a.Snapshot()
	require.NoError(t, err)

	// Re-tag the snapshot for an algorithm with a different state shape by
	// decoding and re-encoding through a second engine's restore path.
	var snap snapshot
	require.NoError(t, cbor.Unmarshal(snapWH, &snap))
	snap.Algorithm = int32(MersenneTwister)
	data, err := snapshotEncMode.Marshal(&snap)
	require.NoError(t, err)

	b, _ := New(MersenneTwister, Inversion, 1)
	assert.ErrorIs(t, b.Restore(data), ErrCorruptState)

	// User and invalid tags are never valid in a snapshot.
	for _, tag := range []Algorithm{UserUniform, UserPointer, AlgorithmInvalid} {
		snap.Algorithm = int32(tag)
		data, err := snapshotEncMode.Marshal(&snap)
		require.NoError(t, err)
		assert.ErrorIs(t, b.Restore(data), ErrCorruptState, "tag %v", tag)
	}
}

func TestRestoreRejectsOutOfRangeStateWords(t *testing.T) {
	a, _ := New(WichmannHill, Inversion, 1)
	good, err := a.Snapshot()
	require.NoError(t, err)

	var snap snapshot
	require.NoError(t, cbor.Unmarshal(good, &snap))
	snap.Words[0] = 40000 // beyond the first modulus
	data, err := snapshotEncMode.Marshal(&snap)
	require.NoError(t, err)
	assert.ErrorIs(t, a.Restore(data), ErrCorruptState)
}
