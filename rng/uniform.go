package rng

import "math"

// i2_32m1 is 1/(2^32 - 1), the fixed-point scale used by the 32-bit
// combination generators.
const i2_32m1 = 2.328306437080797e-10

// fixup keeps draws strictly inside (0,1). The recurrences can land exactly
// on an endpoint after scaling; the reference environment nudges those by
// half an ULP of the 32-bit scale.
func fixup(x float64) float64 {
	if x <= 0.0 {
		return 0.5 * i2_32m1
	}
	if 1.0-x <= 0.0 {
		return 1.0 - 0.5*i2_32m1
	}
	return x
}

// scramble50 runs the 50 initial rounds of the 69069 congruential scramble
// applied to every user-supplied seed before state expansion.
func scramble50(seed uint32) uint32 {
	for j := 0; j < 50; j++ {
		seed = 69069*seed + 1
	}
	return seed
}

// uniformState is the per-algorithm payload behind an engine: one concrete
// type per builtin variant, each owning its word array.
type uniformState interface {
	// next advances the recurrence and returns a draw in (0,1).
	next() float64

	// reseed expands a raw (unscrambled) seed into fresh internal state.
	reseed(seed uint32)

	// words flattens the internal state for snapshots.
	words() []uint32

	// setWords restores internal state from a snapshot, reporting whether
	// the words satisfy the algorithm's validity constraints.
	setWords(w []uint32) bool

	algorithm() Algorithm
}

func newUniformState(alg Algorithm, seed uint32) uniformState {
	var s uniformState
	switch alg {
	case WichmannHill:
		s = &wichmannHillState{}
	case MarsagliaMulticarry:
		s = &multicarryState{}
	case SuperDuper:
		s = &superDuperState{}
	case MersenneTwister:
		s = &mersenneState{}
	case KnuthTAOCP:
		s = &knuthState{revised: false}
	case KnuthTAOCP2:
		s = &knuthState{revised: true}
	case LecuyerCMRG:
		s = &cmrgState{}
	default:
		return nil
	}
	s.reseed(seed)
	return s
}

// wichmannHillState combines three small multiplicative congruential
// generators; period about 6.95e12.
type wichmannHillState struct {
	i1, i2, i3 uint32
}

func (s *wichmannHillState) next() float64 {
	s.i1 = s.i1 * 171 % 30269
	s.i2 = s.i2 * 172 % 30307
	s.i3 = s.i3 * 170 % 30323
	v := float64(s.i1)/30269.0 + float64(s.i2)/30307.0 + float64(s.i3)/30323.0
	return fixup(math.Mod(v, 1.0))
}

func (s *wichmannHillState) reseed(seed uint32) {
	seed = scramble50(seed)
	seed = 69069*seed + 1
	s.i1 = seed
	seed = 69069*seed + 1
	s.i2 = seed
	seed = 69069*seed + 1
	s.i3 = seed
	s.fixupSeeds()
}

// fixupSeeds reduces the words to their moduli and maps zeroes to one so all
// three component generators stay multiplicative.
func (s *wichmannHillState) fixupSeeds() {
	s.i1 %= 30269
	s.i2 %= 30307
	s.i3 %= 30323
	if s.i1 == 0 {
		s.i1 = 1
	}
	if s.i2 == 0 {
		s.i2 = 1
	}
	if s.i3 == 0 {
		s.i3 = 1
	}
}

func (s *wichmannHillState) words() []uint32 { return []uint32{s.i1, s.i2, s.i3} }

func (s *wichmannHillState) setWords(w []uint32) bool {
	if len(w) != 3 {
		return false
	}
	if w[0] == 0 || w[0] >= 30269 || w[1] == 0 || w[1] >= 30307 || w[2] == 0 || w[2] >= 30323 {
		return false
	}
	s.i1, s.i2, s.i3 = w[0], w[1], w[2]
	return true
}

func (s *wichmannHillState) algorithm() Algorithm { return WichmannHill }

// multicarryState is Marsaglia's multiply-with-carry pair; each word carries a
// 16-bit lag and a 16-bit carry.
type multicarryState struct {
	i1, i2 uint32
}

func (s *multicarryState) next() float64 {
	s.i1 = 36969*(s.i1&0177777) + (s.i1 >> 16)
	s.i2 = 18000*(s.i2&0177777) + (s.i2 >> 16)
	return fixup(float64((s.i1<<16)^(s.i2&0177777)) * i2_32m1)
}

func (s *multicarryState) reseed(seed uint32) {
	seed = scramble50(seed)
	seed = 69069*seed + 1
	s.i1 = seed
	seed = 69069*seed + 1
	s.i2 = seed
	if s.i1 == 0 {
		s.i1 = 1
	}
	if s.i2 == 0 {
		s.i2 = 1
	}
}

func (s *multicarryState) words() []uint32 { return []uint32{s.i1, s.i2} }

func (s *multicarryState) setWords(w []uint32) bool {
	if len(w) != 2 || w[0] == 0 || w[1] == 0 {
		return false
	}
	s.i1, s.i2 = w[0], w[1]
	return true
}

func (s *multicarryState) algorithm() Algorithm { return MarsagliaMulticarry }

// superDuperState is Reeds et al.'s Super-Duper: a Tausworthe shift generator
// xor-combined with a 69069 congruential generator with odd state.
type superDuperState struct {
	i1, i2 uint32
}

func (s *superDuperState) next() float64 {
	s.i1 ^= (s.i1 >> 15) & 0377777 // Tausworthe step; only 17 bits feed back
	s.i1 ^= s.i1 << 17
	s.i2 *= 69069 // congruential: cannot be zero once odd
	return fixup(float64(s.i1^s.i2) * i2_32m1)
}

func (s *superDuperState) reseed(seed uint32) {
	seed = scramble50(seed)
	seed = 69069*seed + 1
	s.i1 = seed
	seed = 69069*seed + 1
	s.i2 = seed
	if s.i1 == 0 {
		s.i1 = 1
	}
	s.i2 |= 1
}

func (s *superDuperState) words() []uint32 { return []uint32{s.i1, s.i2} }

func (s *superDuperState) setWords(w []uint32) bool {
	if len(w) != 2 || w[0] == 0 || w[1]&1 == 0 {
		return false
	}
	s.i1, s.i2 = w[0], w[1]
	return true
}

func (s *superDuperState) algorithm() Algorithm { return SuperDuper }

// L'Ecuyer CMRG constants: two component recurrences of order three, combined
// modulo m1.
const (
	cmrgM1    = 4294967087.0
	cmrgM2    = 4294944443.0
	cmrgA12   = 1403580.0
	cmrgA13n  = 810728.0
	cmrgA21   = 527612.0
	cmrgA23n  = 1370589.0
	cmrgNormC = 2.328306549295727688e-10
)

// cmrgState is L'Ecuyer's combined multiple-recursive generator, the one used
// for multi-stream work in the reference environment.
type cmrgState struct {
	s [6]uint32
}

func (s *cmrgState) next() float64 {
	p1 := cmrgA12*float64(s.s[1]) - cmrgA13n*float64(s.s[0])
	k := math.Trunc(p1 / cmrgM1)
	p1 -= k * cmrgM1
	if p1 < 0.0 {
		p1 += cmrgM1
	}
	s.s[0], s.s[1], s.s[2] = s.s[1], s.s[2], uint32(p1)

	p2 := cmrgA21*float64(s.s[5]) - cmrgA23n*float64(s.s[3])
	k = math.Trunc(p2 / cmrgM2)
	p2 -= k * cmrgM2
	if p2 < 0.0 {
		p2 += cmrgM2
	}
	s.s[3], s.s[4], s.s[5] = s.s[4], s.s[5], uint32(p2)

	if p1 > p2 {
		return (p1 - p2) * cmrgNormC
	}
	return (p1 - p2 + cmrgM1) * cmrgNormC
}

func (s *cmrgState) reseed(seed uint32) {
	seed = scramble50(seed)
	for j := 0; j < 6; j++ {
		seed = 69069*seed + 1
		for float64(seed) >= cmrgM2 {
			seed = 69069*seed + 1
		}
		s.s[j] = seed
	}
	s.fixupSeeds()
}

// fixupSeeds perturbs a degenerate component triple, which would be a fixed
// point of its recurrence. A single zero word is legitimate and occurs
// mid-stream, so only the all-zero triple is touched.
func (s *cmrgState) fixupSeeds() {
	if s.s[0] == 0 && s.s[1] == 0 && s.s[2] == 0 {
		s.s[0] = 1
	}
	if s.s[3] == 0 && s.s[4] == 0 && s.s[5] == 0 {
		s.s[3] = 1
	}
}

func (s *cmrgState) words() []uint32 { return s.s[:] }

func (s *cmrgState) setWords(w []uint32) bool {
	if len(w) != 6 {
		return false
	}
	anyFirst, anySecond := false, false
	for j := 0; j < 3; j++ {
		if float64(w[j]) >= cmrgM1 || float64(w[j+3]) >= cmrgM2 {
			return false
		}
		anyFirst = anyFirst || w[j] != 0
		anySecond = anySecond || w[j+3] != 0
	}
	if !anyFirst || !anySecond {
		return false
	}
	copy(s.s[:], w)
	return true
}

func (s *cmrgState) algorithm() Algorithm { return LecuyerCMRG }
