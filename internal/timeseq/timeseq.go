package timeseq

import (
	"iter"
	"math"

	"github.com/san-kum/motionsim/internal/motion"
)

// DiscreteTime produces the ordered sequence of simulation instants for one
// run: indices 0..floor(duration/dt) with elapsed time index*dt. The final
// partial step is included when duration is not an exact multiple of dt.
type DiscreteTime struct {
	dt       float64
	duration float64
}

func New(dt, duration float64) (*DiscreteTime, error) {
	if dt <= 0 {
		return nil, motion.NewParamError(motion.ErrInvalidInterval, "dt", dt)
	}
	if duration < dt {
		return nil, motion.NewParamError(motion.ErrInvalidDuration, "duration", duration)
	}
	return &DiscreteTime{dt: dt, duration: duration}, nil
}

func (d *DiscreteTime) Dt() float64       { return d.dt }
func (d *DiscreteTime) Duration() float64 { return d.duration }

// Count returns the number of steps one full iteration yields.
func (d *DiscreteTime) Count() int {
	return int(math.Floor(d.duration/d.dt)) + 1
}

// Steps returns a restartable sequence of time steps. Elapsed times are
// computed from the index rather than accumulated, so they are exact
// multiples of dt and strictly increasing.
func (d *DiscreteTime) Steps() iter.Seq[motion.TimeStep] {
	n := d.Count()
	return func(yield func(motion.TimeStep) bool) {
		for i := 0; i < n; i++ {
			if !yield(motion.TimeStep{Index: i, Elapsed: float64(i) * d.dt}) {
				return
			}
		}
	}
}
