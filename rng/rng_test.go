package rng

import (
	"errors"
	"testing"
)

func TestNewRejectsInvalidSelectors(t *testing.T) {
	tests := []struct {
		name   string
		alg    Algorithm
		method NormalMethod
	}{
		{"invalid algorithm", AlgorithmInvalid, Inversion},
		{"out of range algorithm", Algorithm(99), Inversion},
		{"invalid normal method", MersenneTwister, NormalMethodInvalid},
		{"out of range normal method", MersenneTwister, NormalMethod(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.alg, tt.method, 1); !errors.Is(err, ErrConfiguration) {
				t.Fatalf("New(%v, %v) error = %v, want ErrConfiguration", tt.alg, tt.method, err)
			}
		})
	}
}

func TestUserUniformTwoPhaseConstruction(t *testing.T) {
	eng, err := New(UserUniform, Inversion, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if eng.Ready() {
		t.Fatal("engine should start unready")
	}

	if _, err := eng.Uniform(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Uniform error = %v, want ErrNotReady", err)
	}
	if _, err := eng.Normal(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Normal error = %v, want ErrNotReady", err)
	}

	calls := 0
	err = eng.BindExternalUniform(UniformFunc(func() float64 {
		calls++
		return 0.25
	}))
	if err != nil {
		t.Fatalf("BindExternalUniform: %v", err)
	}
	if !eng.Ready() {
		t.Fatal("engine should be ready after binding")
	}

	v, err := eng.Uniform()
	if err != nil {
		t.Fatalf("Uniform after binding: %v", err)
	}
	if v != 0.25 || calls != 1 {
		t.Fatalf("Uniform = %v with %d callback calls", v, calls)
	}
}

// stubSource stands in for an externally owned generator.
type stubSource struct {
	draws int
}

func (s *stubSource) NextUniform() float64 {
	s.draws++
	return 0.5
}

func TestUserPointerDelegatesEntirely(t *testing.T) {
	eng, err := New(UserPointer, Inversion, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	src := &stubSource{}
	if err := eng.BindExternalUniform(src); err != nil {
		t.Fatalf("BindExternalUniform: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := eng.Uniform(); err != nil {
			t.Fatalf("Uniform: %v", err)
		}
	}
	if src.draws != 5 {
		t.Fatalf("external source saw %d draws, want 5", src.draws)
	}

	// Reseeding owns no local state for this variant.
	eng.Reseed(123)
	if _, err := eng.Uniform(); err != nil {
		t.Fatalf("Uniform after reseed: %v", err)
	}
	if src.draws != 6 {
		t.Fatalf("external source saw %d draws, want 6", src.draws)
	}
}

func TestBindExternalUniformRejectsBuiltins(t *testing.T) {
	eng, _ := New(MersenneTwister, Inversion, 1)
	err := eng.BindExternalUniform(UniformFunc(func() float64 { return 0.5 }))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
}

func TestUserNormCallback(t *testing.T) {
	eng, err := New(MersenneTwister, UserNorm, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := eng.Normal(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Normal error = %v, want ErrNotReady", err)
	}

	if err := eng.BindNormal(func() float64 { return 1.5 }); err != nil {
		t.Fatalf("BindNormal: %v", err)
	}
	v, err := eng.Normal()
	if err != nil {
		t.Fatalf("Normal: %v", err)
	}
	if v != 1.5 {
		t.Fatalf("Normal = %v, want 1.5", v)
	}

	// Uniform draws still come from the builtin state.
	if _, err := eng.Uniform(); err != nil {
		t.Fatalf("Uniform: %v", err)
	}
}

func TestBindNormalRejectsOtherMethods(t *testing.T) {
	eng, _ := New(MersenneTwister, Inversion, 1)
	if err := eng.BindNormal(func() float64 { return 0 }); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
}

func TestSetAlgorithmReshapesState(t *testing.T) {
	eng, err := New(MersenneTwister, Inversion, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := eng.SetAlgorithm(WichmannHill, 5); err != nil {
		t.Fatalf("SetAlgorithm: %v", err)
	}
	if eng.Algorithm() != WichmannHill {
		t.Fatalf("Algorithm = %v", eng.Algorithm())
	}

	// The stream must match a fresh engine with the same configuration.
	fresh, _ := New(WichmannHill, Inversion, 5)
	for i := 0; i < 100; i++ {
		a, _ := eng.Uniform()
		b, _ := fresh.Uniform()
		if a != b {
			t.Fatalf("draw %d diverged from fresh engine: %v vs %v", i, a, b)
		}
	}

	if err := eng.SetAlgorithm(AlgorithmInvalid, 5); !errors.Is(err, ErrConfiguration) {
		t.Fatal("switching to the invalid sentinel must fail")
	}
}

func TestSetAlgorithmToUserVariantGoesUnready(t *testing.T) {
	eng, _ := New(MersenneTwister, Inversion, 5)
	if err := eng.SetAlgorithm(UserUniform, 0); err != nil {
		t.Fatalf("SetAlgorithm: %v", err)
	}
	if eng.Ready() {
		t.Fatal("engine should be unready until a source is bound")
	}
	if _, err := eng.Uniform(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Uniform error = %v, want ErrNotReady", err)
	}
}

func TestBatchDrawsMatchSingles(t *testing.T) {
	a, _ := New(LecuyerCMRG, Inversion, 17)
	b, _ := New(LecuyerCMRG, Inversion, 17)

	batch := make([]float64, 32)
	if err := a.UniformN(batch); err != nil {
		t.Fatalf("UniformN: %v", err)
	}
	for i, v := range batch {
		want, _ := b.Uniform()
		if v != want {
			t.Fatalf("batch draw %d = %v, want %v", i, v, want)
		}
	}

	if err := a.NormalN(batch); err != nil {
		t.Fatalf("NormalN: %v", err)
	}
	for i, v := range batch {
		want, _ := b.Normal()
		if v != want {
			t.Fatalf("batch normal %d = %v, want %v", i, v, want)
		}
	}
}

func TestAlgorithmNamesRoundTrip(t *testing.T) {
	for _, a := range append(builtinAlgorithms, UserUniform, UserPointer) {
		got, err := ParseAlgorithm(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAlgorithm("invalid"); err == nil {
		t.Error("the invalid sentinel must not parse")
	}

	methods := []NormalMethod{BuggyKindermanRamage, AhrensDieter, BoxMuller, UserNorm, Inversion, KindermanRamage}
	for _, m := range methods {
		got, err := ParseNormalMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseNormalMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
}

func TestSelectorTagValues(t *testing.T) {
	// Serialized tags must match the reference environment's ordering.
	algs := map[Algorithm]int32{
		WichmannHill: 0, MarsagliaMulticarry: 1, SuperDuper: 2,
		MersenneTwister: 3, KnuthTAOCP: 4, UserUniform: 5,
		KnuthTAOCP2: 6, LecuyerCMRG: 7, AlgorithmInvalid: 8, UserPointer: 9,
	}
	for a, want := range algs {
		if int32(a) != want {
			t.Errorf("tag for %v = %d, want %d", a, int32(a), want)
		}
	}
	methods := map[NormalMethod]int32{
		BuggyKindermanRamage: 0, AhrensDieter: 1, BoxMuller: 2,
		UserNorm: 3, Inversion: 4, KindermanRamage: 5, NormalMethodInvalid: 6,
	}
	for m, want := range methods {
		if int32(m) != want {
			t.Errorf("tag for %v = %d, want %d", m, int32(m), want)
		}
	}
}
