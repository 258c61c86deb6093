package metrics

import (
	"math"

	"github.com/san-kum/motionsim/internal/motion"
)

// Overshoot reports the peak object position beyond the move target as a
// percentage of the target. Zero if the object never passes it.
type Overshoot struct {
	name   string
	target float64
	peak   float64
}

func NewOvershoot(target float64) *Overshoot {
	return &Overshoot{name: "overshoot_pct", target: target}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(r motion.Record) {
	if o.target == 0 {
		return
	}
	// Work in the move direction so negative moves overshoot downward.
	excess := (r.ObjPos - o.target) * math.Copysign(1, o.target)
	if excess > o.peak {
		o.peak = excess
	}
}

func (o *Overshoot) Value() float64 {
	if o.target == 0 {
		return 0
	}
	return 100 * o.peak / math.Abs(o.target)
}

func (o *Overshoot) Reset() {
	o.peak = 0
}

// SettlingTime reports the last time the position error left the tolerance
// band around the command, i.e. when the loop settled for good.
type SettlingTime struct {
	name      string
	tolerance float64
	last      float64
}

func NewSettlingTime(tolerance float64) *SettlingTime {
	return &SettlingTime{name: "settling_time_s", tolerance: tolerance}
}

func (s *SettlingTime) Name() string { return s.name }

func (s *SettlingTime) Observe(r motion.Record) {
	if math.Abs(r.CmdPos-r.ObjPos) > s.tolerance {
		s.last = r.Time
	}
}

func (s *SettlingTime) Value() float64 { return s.last }

func (s *SettlingTime) Reset() { s.last = 0 }
