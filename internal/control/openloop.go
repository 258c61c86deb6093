package control

// Step applies a constant force once the delay has passed, ignoring the
// command and the feedback entirely. Used to measure the plant's open-loop
// response.
type Step struct {
	force float64
	delay float64
}

func NewStep(force, delay float64) *Step {
	return &Step{force: force, delay: delay}
}

func (s *Step) CalculateForce(t, cmdVel, cmdPos, measVel, measPos, dt float64) (float64, error) {
	if t < s.delay {
		return 0, nil
	}
	return s.force, nil
}

func (s *Step) Reset() {}

// Impulse applies a force pulse lasting a fixed number of ticks, starting
// after the delay. The tick counter persists across calls until Reset.
type Impulse struct {
	force float64
	delay float64
	ticks int

	count int
}

func NewImpulse(force, delay float64, ticks int) *Impulse {
	return &Impulse{force: force, delay: delay, ticks: ticks}
}

func (i *Impulse) CalculateForce(t, cmdVel, cmdPos, measVel, measPos, dt float64) (float64, error) {
	if t < i.delay {
		return 0, nil
	}
	if i.count < i.ticks {
		i.count++
		return i.force, nil
	}
	return 0, nil
}

func (i *Impulse) Reset() {
	i.count = 0
}

// None outputs zero force; the plant coasts.
type None struct{}

func NewNone() *None { return &None{} }

func (n *None) CalculateForce(t, cmdVel, cmdPos, measVel, measPos, dt float64) (float64, error) {
	return 0, nil
}

func (n *None) Reset() {}
