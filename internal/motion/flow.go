package motion

import (
	"context"
	"iter"
)

// Clock produces the ordered sequence of simulation instants. Implemented by
// [timeseq.DiscreteTime].
type Clock interface {
	Dt() float64
	Count() int
	Steps() iter.Seq[TimeStep]
}

// Flow drives one closed-loop simulation run: on every tick the profile is
// queried at the elapsed time, the controller turns the command and the
// plant's pre-update state into a force, and the plant integrates that force.
//
// The ordering is the loop's contract: the controller always sees the plant
// state left by the previous tick, giving the one-sample measurement delay of
// a real sampled control system. The record for the tick holds the
// post-update plant state. Swapping these steps changes every number the
// simulation produces without raising any error, so Execute must not be
// reordered.
type Flow struct {
	clock      Clock
	profile    Profile
	controller Controller
	plant      Plant
	metrics    []Metric
	observers  []Observer
}

func NewFlow(clock Clock, profile Profile, controller Controller, plant Plant) *Flow {
	return &Flow{
		clock:      clock,
		profile:    profile,
		controller: controller,
		plant:      plant,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (f *Flow) AddMetric(m Metric)     { f.metrics = append(f.metrics, m) }
func (f *Flow) AddObserver(o Observer) { f.observers = append(f.observers, o) }

// Execute runs the loop to completion and returns the ordered record
// sequence. The controller, metrics and any stateful profile are reset
// first, so the same flow can be executed repeatedly; the plant is the
// caller's to reset, so a run can start from a non-zero state on purpose.
//
// On cancellation the partial result is returned together with the context
// error; its records are consistent up to the last completed tick.
func (f *Flow) Execute(ctx context.Context) (*Result, error) {
	f.controller.Reset()
	if r, ok := f.profile.(interface{ Reset() }); ok {
		r.Reset()
	}
	for _, m := range f.metrics {
		m.Reset()
	}

	dt := f.clock.Dt()
	result := &Result{
		Records: make([]Record, 0, f.clock.Count()),
		Metrics: make(map[string]float64),
	}

	for step := range f.clock.Steps() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		cmdVel, cmdPos := f.profile.Command(step.Elapsed)

		force, err := f.controller.CalculateForce(
			step.Elapsed, cmdVel, cmdPos, f.plant.Vel(), f.plant.Pos(), dt)
		if err != nil {
			return result, err
		}

		acc, vel, pos := f.plant.ApplyForce(force, dt)

		rec := Record{
			Time:   step.Elapsed,
			CmdVel: cmdVel,
			CmdPos: cmdPos,
			Force:  force,
			ObjAcc: acc,
			ObjVel: vel,
			ObjPos: pos,
		}
		result.Records = append(result.Records, rec)
		result.StepsTaken++

		for _, m := range f.metrics {
			m.Observe(rec)
		}
		for _, obs := range f.observers {
			obs.OnStep(rec)
		}
	}

	for _, m := range f.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
