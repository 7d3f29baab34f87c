package exclusion

import "math"

// Rand is the random source the simulation draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// ExponentialDistribution is the CDF of an exponential distribution with
// rate lambda, evaluated at x. For x in [0, 1) and lambda > 0 the result lies
// in [0, 1-e^-lambda) and increases strictly with x.
func ExponentialDistribution(lambda, x float64) float64 {
	return 1 - math.Exp(-lambda*x)
}

// Particle is a single walker. Only the engine mutates it.
type Particle struct {
	id       int
	position Point
	// time accumulated since the last accepted eligibility check
	timer float64
	// how long to wait before the next move attempt
	waitThreshold float64
}

func newParticle(id int, position Point, rng Rand, res int) *Particle {
	p := &Particle{id: id, position: position}
	p.ResampleWait(rng, res)
	return p
}

func (p *Particle) ID() int                { return p.id }
func (p *Particle) Position() Point        { return p.position }
func (p *Particle) Timer() float64         { return p.timer }
func (p *Particle) WaitThreshold() float64 { return p.waitThreshold }

// Eligible reports whether the particle has waited long enough to attempt a
// move. A true result consumes the wait: the timer is reset to zero whether
// or not the following move is accepted, so call it at most once per step.
func (p *Particle) Eligible() bool {
	if p.timer < p.waitThreshold {
		return false
	}
	p.timer = 0
	return true
}

// ResampleWait draws a fresh wait threshold with rate 1/res.
func (p *Particle) ResampleWait(rng Rand, res int) {
	p.waitThreshold = ExponentialDistribution(1/float64(res), rng.Float64())
}

// AdvanceTimer adds dt to the timer.
func (p *Particle) AdvanceTimer(dt float64) {
	p.timer += dt
}

// MoveTo overwrites the position without validation.
func (p *Particle) MoveTo(position Point) {
	p.position = position
}
