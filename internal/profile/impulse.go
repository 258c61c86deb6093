package profile

// Impulse emits a fixed velocity/position command for the first Steps ticks
// and zero afterwards. Useful for exciting the control loop when checking a
// tuning against a disturbance rather than a full move.
//
// Unlike Trapezoid this profile is stateful: it counts calls, not elapsed
// time. Reset rewinds the counter for a fresh run.
type Impulse struct {
	vel   float64
	pos   float64
	steps int

	count int
}

func NewImpulse(vel, pos float64, steps int) *Impulse {
	return &Impulse{vel: vel, pos: pos, steps: steps}
}

func (p *Impulse) Command(t float64) (vel, pos float64) {
	if p.count < p.steps {
		p.count++
		return p.vel, p.pos
	}
	return 0, 0
}

func (p *Impulse) Reset() {
	p.count = 0
}
