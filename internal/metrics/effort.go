package metrics

import (
	"math"

	"github.com/san-kum/motionsim/internal/motion"
)

// ControlEffort is the mean absolute force over a run, a proxy for how hard
// the tuning drives the actuator.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(r motion.Record) {
	c.sum += math.Abs(r.Force)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
