package exclusion

// scriptedRand replays fixed values and falls back to zero once exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

// direction indices into Directions
const (
	dirRight = 0
	dirDown  = 1
	dirLeft  = 2
	dirUp    = 3
)
