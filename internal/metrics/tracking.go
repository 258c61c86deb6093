package metrics

import (
	"math"

	"github.com/san-kum/motionsim/internal/motion"
)

// TrackingError accumulates the RMS error between command and object state
// over a run. Which signal it compares depends on the mode.
type TrackingError struct {
	name     string
	position bool
	sumSq    float64
	samples  int
}

func NewVelocityTracking() *TrackingError {
	return &TrackingError{name: "vel_tracking_rms"}
}

func NewPositionTracking() *TrackingError {
	return &TrackingError{name: "pos_tracking_rms", position: true}
}

func (t *TrackingError) Name() string { return t.name }

func (t *TrackingError) Observe(r motion.Record) {
	var e float64
	if t.position {
		e = r.CmdPos - r.ObjPos
	} else {
		e = r.CmdVel - r.ObjVel
	}
	t.sumSq += e * e
	t.samples++
}

func (t *TrackingError) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return math.Sqrt(t.sumSq / float64(t.samples))
}

func (t *TrackingError) Reset() {
	t.sumSq = 0
	t.samples = 0
}
