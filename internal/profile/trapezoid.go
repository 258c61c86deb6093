package profile

import (
	"math"

	"github.com/san-kum/motionsim/internal/motion"
)

// Trapezoid generates a velocity trajectory with symmetric acceleration and
// deceleration ramps around a constant cruise phase. When the move is too
// short to reach cruise velocity the profile degrades to a triangle whose
// peak velocity sqrt(A*L) stays below V.
//
// The profile is a pure function of elapsed time, so it can be queried at
// arbitrary, non-monotonic instants.
type Trapezoid struct {
	v   float64 // cruise velocity, positive
	a   float64 // accel/decel magnitude, positive
	l   float64 // move length magnitude
	dir float64 // move direction, +1 or -1

	ta float64 // accel (and decel) phase duration
	tc float64 // cruise phase duration, zero for triangular moves
	tt float64 // total move time
}

// NewTrapezoid validates the parameters once; a constructed profile never
// fails afterwards. length may be negative for a move in the negative
// direction.
func NewTrapezoid(velocity, accel, length float64) (*Trapezoid, error) {
	if velocity <= 0 {
		return nil, motion.NewParamError(motion.ErrNonPositiveVelocity, "max_velocity", velocity)
	}
	if accel <= 0 {
		return nil, motion.NewParamError(motion.ErrNonPositiveAcceleration, "acceleration", accel)
	}
	if length == 0 {
		return nil, motion.NewParamError(motion.ErrZeroDistance, "distance", length)
	}

	p := &Trapezoid{
		v:   velocity,
		a:   accel,
		l:   math.Abs(length),
		dir: 1,
	}
	if length < 0 {
		p.dir = -1
	}

	p.ta = p.v / p.a
	p.tt = p.l/p.v + p.ta
	p.tc = p.tt - 2*p.ta
	if p.tc < 0 {
		// Triangular move: the ramps meet before cruise velocity is reached.
		p.ta = math.Sqrt(p.l / p.a)
		p.tc = 0
		p.tt = 2 * p.ta
	}

	return p, nil
}

// TotalTime returns the time at which the move completes and the profile
// enters its hold phase.
func (p *Trapezoid) TotalTime() float64 { return p.tt }

// AccelTime returns the duration of the acceleration ramp.
func (p *Trapezoid) AccelTime() float64 { return p.ta }

// CruiseTime returns the duration of the constant-velocity phase.
func (p *Trapezoid) CruiseTime() float64 { return p.tc }

// PeakVelocity returns the highest command velocity the move reaches. For a
// full trapezoid this is the configured cruise velocity; for a triangular
// move it is a*ta.
func (p *Trapezoid) PeakVelocity() float64 { return p.a * p.ta }

// Command returns the command velocity and position at elapsed time t.
// For t >= TotalTime it holds at (0, signed length) indefinitely.
func (p *Trapezoid) Command(t float64) (vel, pos float64) {
	switch {
	case t < p.ta: // accelerating
		return p.dir * p.a * t, p.dir * 0.5 * p.a * t * t
	case t < p.ta+p.tc: // cruising
		d1 := 0.5 * p.a * p.ta * p.ta
		return p.dir * p.a * p.ta, p.dir * (d1 + p.v*(t-p.ta))
	case t <= p.tt: // decelerating
		rem := p.tt - t
		return p.dir * p.a * rem, p.dir * (p.l - 0.5*p.a*rem*rem)
	default: // holding at target
		return 0, p.dir * p.l
	}
}
