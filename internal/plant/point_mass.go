package plant

import "github.com/san-kum/motionsim/internal/motion"

// PointMass is a single rigid body on one axis. Force integrates into motion
// by semi-implicit Euler: the velocity update is applied before the position
// update, which keeps the closed loop stable at larger time steps than plain
// forward Euler.
type PointMass struct {
	mass float64

	acc float64
	vel float64
	pos float64
}

func NewPointMass(mass float64) (*PointMass, error) {
	if mass <= 0 {
		return nil, motion.NewParamError(motion.ErrNonPositiveMass, "mass", mass)
	}
	return &PointMass{mass: mass}, nil
}

func (p *PointMass) Mass() float64 { return p.mass }
func (p *PointMass) Acc() float64  { return p.acc }
func (p *PointMass) Vel() float64  { return p.vel }
func (p *PointMass) Pos() float64  { return p.pos }

// Reset zeros the kinematic state. Mass is a construction-time invariant and
// stays as is.
func (p *PointMass) Reset() {
	p.acc = 0
	p.vel = 0
	p.pos = 0
}

// SetState places the object at a given kinematic state, e.g. to start a run
// away from the origin.
func (p *PointMass) SetState(acc, vel, pos float64) {
	p.acc = acc
	p.vel = vel
	p.pos = pos
}

// ApplyForce advances the state by one step of dt under the given force and
// returns the updated (acc, vel, pos).
func (p *PointMass) ApplyForce(force, dt float64) (acc, vel, pos float64) {
	p.acc = force / p.mass
	p.vel += p.acc * dt
	p.pos += p.vel * dt
	return p.acc, p.vel, p.pos
}
