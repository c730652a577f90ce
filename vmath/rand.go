package vmath

// FastRand is a xorshift64 generator
// State is a plain uint64 so simulation state can carry it by value
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// State returns the current seed for persisting into value-typed state
func (r *FastRand) State() uint64 {
	return r.state
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [-spread, spread)
func (r *FastRand) Range(spread float64) float64 {
	return (r.Float64()*2 - 1) * spread
}
