package rng

// Knuth's lagged-Fibonacci generator (TAOCP vol. 2), in both the original
// 1997 form and the revised 2002 form. The two differ only in seeding: the
// 2002 ran_start tracks parity directly and finishes with ten warm-up rounds
// of ran_array. The draw path is shared.
const (
	ktKK = 100 // long lag
	ktLL = 37  // short lag
	ktMM = 1 << 30
	ktTT = 70 // guaranteed separation between streams

	ktQuality = 1009 // minimum generation batch recommended by Knuth

	// ktScale is 2^-30; state words hold 30 bits.
	ktScale = 9.31322574615479e-10

	// ktSeedMod keeps seeds inside the range ran_start accepts.
	ktSeedMod = 1073741821
)

func ktModDiff(x, y uint32) uint32 {
	return (x - y) & (ktMM - 1)
}

type knuthState struct {
	x       [ktKK]uint32
	pos     int
	revised bool
}

// ranArray runs n steps of the recurrence into aa, leaving the next block of
// lagged values in s.x.
func (s *knuthState) ranArray(aa []uint32, n int) {
	var i, j int
	for j = 0; j < ktKK; j++ {
		aa[j] = s.x[j]
	}
	for ; j < n; j++ {
		aa[j] = ktModDiff(aa[j-ktKK], aa[j-ktLL])
	}
	for i = 0; i < ktLL; i++ {
		s.x[i] = ktModDiff(aa[j-ktKK], aa[j-ktLL])
		j++
	}
	for ; i < ktKK; i++ {
		s.x[i] = ktModDiff(aa[j-ktKK], s.x[i-ktLL])
		j++
	}
}

func (s *knuthState) cycle() {
	buf := make([]uint32, ktQuality)
	s.ranArray(buf, ktQuality)
}

func (s *knuthState) next() float64 {
	if s.pos >= ktKK {
		s.cycle()
		s.pos = 0
	}
	v := s.x[s.pos]
	s.pos++
	return fixup(float64(v) * ktScale)
}

func (s *knuthState) reseed(seed uint32) {
	seed = scramble50(seed) % ktSeedMod
	if s.revised {
		s.start2002(seed)
	} else {
		s.start1997(seed)
	}
	s.pos = ktKK // force a cycle before the first draw
}

// start1997 is ran_start as published in the third edition of TAOCP vol. 2.
func (s *knuthState) start1997(seed uint32) {
	var x [ktKK + ktKK - 1]uint32
	ss := (seed + 2) & (ktMM - 2)
	for j := 0; j < ktKK; j++ {
		x[j] = ss
		ss <<= 1
		if ss >= ktMM {
			ss -= ktMM - 2
		}
	}
	for j := ktKK; j < ktKK+ktKK-1; j++ {
		x[j] = 0
	}
	x[1]++ // make x[1] (and only x[1]) odd
	ss = seed & (ktMM - 1)
	t := ktTT - 1
	for t > 0 {
		for j := ktKK - 1; j > 0; j-- { // "square"
			x[j+j] = x[j]
		}
		for j := ktKK + ktKK - 2; j > ktKK-ktLL; j -= 2 {
			x[ktKK+ktKK-1-j] = x[j] &^ 1
		}
		for j := ktKK + ktKK - 2; j >= ktKK; j-- {
			if x[j]&1 == 1 {
				x[j-(ktKK-ktLL)] = ktModDiff(x[j-(ktKK-ktLL)], x[j])
				x[j-ktKK] = ktModDiff(x[j-ktKK], x[j])
			}
		}
		if ss&1 == 1 { // "multiply by z"
			for j := ktKK; j > 0; j-- {
				x[j] = x[j-1]
			}
			x[0] = x[ktKK] // shift the buffer cyclically
			if x[ktKK]&1 == 1 {
				x[ktLL] = ktModDiff(x[ktLL], x[ktKK])
			}
		}
		if ss != 0 {
			ss >>= 1
		} else {
			t--
		}
	}
	for j := 0; j < ktLL; j++ {
		s.x[j+ktKK-ktLL] = x[j]
	}
	for j := ktLL; j < ktKK; j++ {
		s.x[j-ktLL] = x[j]
	}
}

// start2002 is ran_start from Knuth's 2002 revision, which fixed the
// correlation between streams with nearby seeds.
func (s *knuthState) start2002(seed uint32) {
	var x [ktKK + ktKK - 1]uint32
	ss := (seed + 2) & (ktMM - 2)
	for j := 0; j < ktKK; j++ {
		x[j] = ss
		ss <<= 1
		if ss >= ktMM {
			ss -= ktMM - 2
		}
	}
	x[1]++
	ss = seed & (ktMM - 1)
	t := ktTT - 1
	for t > 0 {
		for j := ktKK - 1; j > 0; j-- { // "square"
			x[j+j] = x[j]
			x[j+j-1] = 0
		}
		for j := ktKK + ktKK - 2; j >= ktKK; j-- {
			x[j-(ktKK-ktLL)] = ktModDiff(x[j-(ktKK-ktLL)], x[j])
			x[j-ktKK] = ktModDiff(x[j-ktKK], x[j])
		}
		if ss&1 == 1 { // "multiply by z"
			for j := ktKK; j > 0; j-- {
				x[j] = x[j-1]
			}
			x[0] = x[ktKK]
			x[ktLL] = ktModDiff(x[ktLL], x[ktKK])
		}
		if ss != 0 {
			ss >>= 1
		} else {
			t--
		}
	}
	for j := 0; j < ktLL; j++ {
		s.x[j+ktKK-ktLL] = x[j]
	}
	for j := ktLL; j < ktKK; j++ {
		s.x[j-ktLL] = x[j]
	}
	scratch := make([]uint32, ktKK+ktKK-1)
	for j := 0; j < 10; j++ { // warm things up
		s.ranArray(scratch, ktKK+ktKK-1)
	}
}

func (s *knuthState) words() []uint32 {
	w := make([]uint32, 1+ktKK)
	w[0] = uint32(s.pos)
	copy(w[1:], s.x[:])
	return w
}

func (s *knuthState) setWords(w []uint32) bool {
	if len(w) != 1+ktKK || w[0] > ktKK {
		return false
	}
	for _, v := range w[1:] {
		if v >= ktMM {
			return false
		}
	}
	s.pos = int(w[0])
	copy(s.x[:], w[1:])
	return true
}

func (s *knuthState) algorithm() Algorithm {
	if s.revised {
		return KnuthTAOCP2
	}
	return KnuthTAOCP
}
