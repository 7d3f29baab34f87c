package exclusion

// cellSet tracks how many particles occupy each cell, indexed by Grid.Key.
// A cell counts as occupied while any particle is on it, so one particle
// leaving a shared cell does not free it for the others.
type cellSet struct {
	occupants []int
}

func newCellSet(size int) *cellSet {
	return &cellSet{occupants: make([]int, size)}
}

func (s *cellSet) has(key int) bool {
	return s.occupants[key] > 0
}

func (s *cellSet) add(key int) {
	s.occupants[key]++
}

func (s *cellSet) remove(key int) {
	if s.occupants[key] > 0 {
		s.occupants[key]--
	}
}

// reset empties the set so it can serve the next step.
func (s *cellSet) reset() {
	clear(s.occupants)
}
