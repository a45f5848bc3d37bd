package rng

const (
	mtN          = 624
	mtM          = 397
	mtMatrixA    = 0x9908b0df
	mtUpperMask  = 0x80000000
	mtLowerMask  = 0x7fffffff
	mtTemperingB = 0x9d2c5680
	mtTemperingC = 0xefc60000

	// mtScale is 1/2^32; the twister maps a full 32-bit word to [0,1).
	mtScale = 2.3283064365386963e-10
)

// mersenneState is MT19937 with the reference environment's state layout: the
// cursor is carried as the first serialized word ahead of the 624-word table,
// and seeding fills the table from the 69069 scramble rather than the
// canonical Knuth initializer, for historical consistency.
type mersenneState struct {
	mt  [mtN]uint32
	mti int
}

func (s *mersenneState) next() float64 {
	if s.mti >= mtN {
		var y uint32
		var kk int
		for ; kk < mtN-mtM; kk++ {
			y = (s.mt[kk] & mtUpperMask) | (s.mt[kk+1] & mtLowerMask)
			s.mt[kk] = s.mt[kk+mtM] ^ (y >> 1) ^ ((y & 1) * mtMatrixA)
		}
		for ; kk < mtN-1; kk++ {
			y = (s.mt[kk] & mtUpperMask) | (s.mt[kk+1] & mtLowerMask)
			s.mt[kk] = s.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ ((y & 1) * mtMatrixA)
		}
		y = (s.mt[mtN-1] & mtUpperMask) | (s.mt[0] & mtLowerMask)
		s.mt[mtN-1] = s.mt[mtM-1] ^ (y >> 1) ^ ((y & 1) * mtMatrixA)
		s.mti = 0
	}

	y := s.mt[s.mti]
	s.mti++
	y ^= y >> 11
	y ^= (y << 7) & mtTemperingB
	y ^= (y << 15) & mtTemperingC
	y ^= y >> 18

	return fixup(float64(y) * mtScale)
}

func (s *mersenneState) reseed(seed uint32) {
	seed = scramble50(seed)
	// The first scramble output lands on the cursor slot and is discarded.
	seed = 69069*seed + 1
	notAllZero := false
	for j := 0; j < mtN; j++ {
		seed = 69069*seed + 1
		s.mt[j] = seed
		notAllZero = notAllZero || seed != 0
	}
	if !notAllZero {
		// A degenerate all-zero table never recovers; perturb it
		// deterministically rather than fail.
		s.mt[0] = 1
	}
	s.mti = mtN
}

func (s *mersenneState) words() []uint32 {
	w := make([]uint32, 1+mtN)
	w[0] = uint32(s.mti)
	copy(w[1:], s.mt[:])
	return w
}

func (s *mersenneState) setWords(w []uint32) bool {
	if len(w) != 1+mtN || w[0] > mtN {
		return false
	}
	notAllZero := false
	for _, v := range w[1:] {
		if v != 0 {
			notAllZero = true
			break
		}
	}
	if !notAllZero {
		return false
	}
	s.mti = int(w[0])
	copy(s.mt[:], w[1:])
	return true
}

func (s *mersenneState) algorithm() Algorithm { return MersenneTwister }
