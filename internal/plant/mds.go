package plant

import (
	"math"

	"github.com/san-kum/motionsim/internal/motion"
)

const gravity = 9.80665

// MassDamperSpring extends the point mass with a viscous damper, a linear
// spring anchored at BalancePos and Coulomb friction against the ground.
// The net force on the mass is
//
//	F - damper*vel - spring*(pos - balance) - friction
//
// where friction opposes motion with magnitude mu_d*m*g while moving, and
// cancels the applied force up to mu_s*m*g while at rest.
type MassDamperSpring struct {
	PointMass

	Damper          float64
	Spring          float64
	BalancePos      float64
	StaticFriction  float64
	KineticFriction float64
}

type MDSParams struct {
	Mass            float64
	Damper          float64
	Spring          float64
	BalancePos      float64
	StaticFriction  float64
	KineticFriction float64
}

func NewMassDamperSpring(p MDSParams) (*MassDamperSpring, error) {
	if p.Mass <= 0 {
		return nil, motion.NewParamError(motion.ErrNonPositiveMass, "mass", p.Mass)
	}
	return &MassDamperSpring{
		PointMass:       PointMass{mass: p.Mass},
		Damper:          p.Damper,
		Spring:          p.Spring,
		BalancePos:      p.BalancePos,
		StaticFriction:  p.StaticFriction,
		KineticFriction: p.KineticFriction,
	}, nil
}

func (m *MassDamperSpring) ApplyForce(force, dt float64) (acc, vel, pos float64) {
	net := force
	net -= m.Damper * m.vel
	net -= m.Spring * (m.pos - m.BalancePos)

	if m.vel == 0 {
		// Static friction holds the mass until the net force breaks away.
		hold := m.StaticFriction * m.mass * gravity
		if math.Abs(net) <= hold {
			net = 0
		}
	} else {
		kinetic := m.KineticFriction * m.mass * gravity
		if m.vel > 0 {
			net -= kinetic
		} else {
			net += kinetic
		}
	}

	return m.PointMass.ApplyForce(net, dt)
}
