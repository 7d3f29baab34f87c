// Package exclusion implements a discrete-time simple exclusion process on a
// 2D torus. Particles wait an exponentially distributed time, then try to hop
// to a random orthogonal neighbour; the hop is rejected when the target cell
// is occupied at the start of the step or was already claimed during it.
package exclusion

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every error New returns.
var ErrInvalidOptions = errors.New("invalid options")

// Layout selects where particles are placed at construction.
type Layout string

const (
	// LayoutCenter stacks every particle on the grid centre.
	LayoutCenter Layout = "center"
	// LayoutScatter places particles on distinct random cells.
	LayoutScatter Layout = "scatter"
)

// Options are fixed for the lifetime of an Engine.
type Options struct {
	Res           int
	Count         int
	DeltaT        float64
	StepsPerFrame int
	Layout        Layout
}

// DefaultOptions returns the stock 25x25 grid with 100 particles.
func DefaultOptions() Options {
	return Options{
		Res:           25,
		Count:         100,
		DeltaT:        0.01,
		StepsPerFrame: 1,
		Layout:        LayoutCenter,
	}
}

func (o Options) validate() error {
	switch {
	case o.Res <= 0:
		return fmt.Errorf("%w: res must be positive, got %d", ErrInvalidOptions, o.Res)
	case o.Count < 0:
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidOptions, o.Count)
	case o.DeltaT <= 0:
		return fmt.Errorf("%w: delta t must be positive, got %g", ErrInvalidOptions, o.DeltaT)
	case o.StepsPerFrame < 1:
		return fmt.Errorf("%w: steps per frame must be at least 1, got %d", ErrInvalidOptions, o.StepsPerFrame)
	}
	switch o.Layout {
	case LayoutCenter, "":
	case LayoutScatter:
		if o.Count > o.Res*o.Res {
			return fmt.Errorf("%w: %d particles do not fit on %d cells", ErrInvalidOptions, o.Count, o.Res*o.Res)
		}
	default:
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidOptions, o.Layout)
	}
	return nil
}

// StepStats counts what happened during one or more steps.
type StepStats struct {
	// Eligible particles attempted a move.
	Eligible int
	Accepted int
	// Rejected attempts hit a cell that was occupied or already claimed.
	Rejected int
}

func (s *StepStats) add(o StepStats) {
	s.Eligible += o.Eligible
	s.Accepted += o.Accepted
	s.Rejected += o.Rejected
}

// Engine owns the particles and advances them one step at a time.
// It is not safe for concurrent use.
type Engine struct {
	opts      Options
	grid      Grid
	rng       Rand
	particles []*Particle
	steps     int

	// Step-scoped occupancy. Both are emptied at the start of every step
	// and carry no meaning between steps.
	before *cellSet
	after  *cellSet
}

// New places opts.Count particles according to opts.Layout and samples
// their initial wait thresholds from rng.
func New(opts Options, rng Rand) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Layout == "" {
		opts.Layout = LayoutCenter
	}

	grid := Grid{Res: opts.Res}
	e := &Engine{
		opts:      opts,
		grid:      grid,
		rng:       rng,
		particles: make([]*Particle, opts.Count),
		before:    newCellSet(grid.Cells()),
		after:     newCellSet(grid.Cells()),
	}

	positions := e.initialPositions()
	for i := range e.particles {
		e.particles[i] = newParticle(i, positions[i], rng, opts.Res)
	}
	return e, nil
}

func (e *Engine) initialPositions() []Point {
	positions := make([]Point, e.opts.Count)
	if e.opts.Layout == LayoutCenter {
		for i := range positions {
			positions[i] = e.grid.Center()
		}
		return positions
	}

	// Partial Fisher-Yates over cell keys.
	keys := make([]int, e.grid.Cells())
	for i := range keys {
		keys[i] = i
	}
	for i := range positions {
		j := i + e.rng.Intn(len(keys)-i)
		keys[i], keys[j] = keys[j], keys[i]
		positions[i] = Point{keys[i] % e.opts.Res, keys[i] / e.opts.Res}
	}
	return positions
}

// Step advances the simulation by one tick of DeltaT.
//
// Particles are visited in index order, so when two of them target the same
// vacant cell the earlier one wins. A particle that moves frees its old cell
// for particles visited after it.
func (e *Engine) Step() StepStats {
	var stats StepStats

	e.before.reset()
	e.after.reset()
	for _, p := range e.particles {
		e.before.add(e.grid.Key(p.position))
	}

	for _, p := range e.particles {
		if !p.Eligible() {
			continue
		}
		stats.Eligible++

		dir := Directions[e.rng.Intn(len(Directions))]
		next := e.grid.Wrap(p.position.Add(dir))
		nextKey := e.grid.Key(next)

		if e.before.has(nextKey) || e.after.has(nextKey) {
			stats.Rejected++
			continue
		}

		e.after.add(nextKey)
		e.before.remove(e.grid.Key(p.position))
		p.MoveTo(next)
		p.ResampleWait(e.rng, e.opts.Res)
		stats.Accepted++
	}

	for _, p := range e.particles {
		p.AdvanceTimer(e.opts.DeltaT)
	}

	e.steps++
	return stats
}

// Frame runs StepsPerFrame steps back to back and sums their stats.
func (e *Engine) Frame() StepStats {
	var stats StepStats
	for i := 0; i < e.opts.StepsPerFrame; i++ {
		stats.add(e.Step())
	}
	return stats
}

// Particles is the ordered particle collection. Callers must treat it as
// read-only; it is shared with the engine.
func (e *Engine) Particles() []*Particle {
	return e.particles
}

func (e *Engine) Grid() Grid       { return e.grid }
func (e *Engine) Options() Options { return e.opts }
func (e *Engine) StepCount() int   { return e.steps }

// Collisions counts particles sharing a cell with a lower-indexed particle.
// It is zero whenever the exclusion invariant holds.
func (e *Engine) Collisions() int {
	seen := make(map[int]struct{}, len(e.particles))
	n := 0
	for _, p := range e.particles {
		k := e.grid.Key(p.position)
		if _, ok := seen[k]; ok {
			n++
			continue
		}
		seen[k] = struct{}{}
	}
	return n
}
