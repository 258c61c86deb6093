package control

import "github.com/san-kum/motionsim/internal/motion"

// Gains holds the six PID gains: a velocity loop (Kvp, Kvi, Kvd) and a
// position loop (Kpp, Kpi, Kpd). Negative values are a tuning choice, not a
// configuration error, so no validation is applied.
type Gains struct {
	Kvp float64
	Kvi float64
	Kvd float64
	Kpp float64
	Kpi float64
	Kpd float64
}

// PID is a dual-loop servo controller: both the velocity and the position
// error feed proportional, integral and derivative terms into one force.
// No output clamping or integral anti-windup is applied; the raw sum is the
// reference behavior every scenario's numbers depend on.
type PID struct {
	gains Gains

	velIntegral float64
	posIntegral float64
	prevVelErr  float64
	prevPosErr  float64
}

func NewPID(gains Gains) *PID {
	return &PID{gains: gains}
}

func (p *PID) Gains() Gains { return p.gains }

// Reset zeros the integral accumulators and previous errors. A reset
// controller produces the same outputs as a freshly constructed one.
func (p *PID) Reset() {
	p.velIntegral = 0
	p.posIntegral = 0
	p.prevVelErr = 0
	p.prevPosErr = 0
}

// CalculateForce advances the controller by one tick. The integral terms use
// rectangular accumulation, the derivative terms a backward difference
// against the previous tick's error. dt must be positive; a non-positive dt
// means the sequencer is broken and yields ErrInvalidStep.
func (p *PID) CalculateForce(t, cmdVel, cmdPos, measVel, measPos, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, motion.NewParamError(motion.ErrInvalidStep, "dt", dt)
	}

	velErr := cmdVel - measVel
	posErr := cmdPos - measPos

	p.velIntegral += velErr * dt
	p.posIntegral += posErr * dt

	velDiff := (velErr - p.prevVelErr) / dt
	posDiff := (posErr - p.prevPosErr) / dt

	p.prevVelErr = velErr
	p.prevPosErr = posErr

	force := p.gains.Kvp*velErr +
		p.gains.Kvi*p.velIntegral +
		p.gains.Kvd*velDiff +
		p.gains.Kpp*posErr +
		p.gains.Kpi*p.posIntegral +
		p.gains.Kpd*posDiff

	return force, nil
}
