package vmath

// Rand is the single seedable generator shared by every random draw of a run
// Placement sampling, weighted selection and gap sizing all pull from one stream,
// so a fixed seed reproduces a whole run
type Rand struct {
	seed  uint64
	state uint64
	draws uint64
}

// NewRand creates a generator from seed
func NewRand(seed uint64) *Rand {
	r := &Rand{}
	r.Seed(seed)
	return r
}

// Seed resets the stream to the start of seed
func (r *Rand) Seed(seed uint64) {
	r.seed = seed
	r.state = splitMix64(seed)
	if r.state == 0 {
		r.state = 1
	}
	r.draws = 0
}

// Reset rewinds the stream to the start of the current seed
func (r *Rand) Reset() {
	r.Seed(r.seed)
}

// SeedValue returns the seed the stream was last reset to
func (r *Rand) SeedValue() uint64 {
	return r.seed
}

// Draws returns the number of raw values consumed since the last reset
func (r *Rand) Draws() uint64 {
	return r.draws
}

// Next returns the next raw xorshift64 value
func (r *Rand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	r.draws++
	return x
}

// Float64 returns a uniform value in [0, 1)
func (r *Rand) Float64() float64 {
	return float64(r.Next()>>11) * (1.0 / (1 << 53))
}

// Range returns a uniform value in [min, max)
// Degenerate or inverted ranges return min without consuming a draw
func (r *Rand) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Intn returns a value in [0, n), 0 when n <= 0
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IntRange returns a value in [min, max] inclusive
func (r *Rand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// splitMix64 spreads low-entropy seeds (0, 1, 2...) across the state space
func splitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
