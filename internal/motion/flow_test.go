package motion_test

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/motionsim/internal/control"
	"github.com/san-kum/motionsim/internal/motion"
	"github.com/san-kum/motionsim/internal/plant"
	"github.com/san-kum/motionsim/internal/profile"
	"github.com/san-kum/motionsim/internal/timeseq"
)

// rampProfile commands a unit velocity and a linearly growing position.
type rampProfile struct{}

func (rampProfile) Command(t float64) (float64, float64) { return 1, t }

// spyController records the measured state it is handed each tick.
type spyController struct {
	measVel []float64
	measPos []float64
}

func (s *spyController) CalculateForce(t, cmdVel, cmdPos, measVel, measPos, dt float64) (float64, error) {
	s.measVel = append(s.measVel, measVel)
	s.measPos = append(s.measPos, measPos)
	return 1, nil
}

func (s *spyController) Reset() {
	s.measVel = nil
	s.measPos = nil
}

func TestFlow_OneTickFeedbackDelay(t *testing.T) {
	clock, err := timeseq.New(0.5, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	pm, err := plant.NewPointMass(1)
	if err != nil {
		t.Fatal(err)
	}

	spy := &spyController{}
	flow := motion.NewFlow(clock, rampProfile{}, spy, pm)

	result, err := flow.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// The controller must see the plant state from before this tick's update:
	// zeros on the first tick, then exactly the previous record's state.
	if spy.measVel[0] != 0 || spy.measPos[0] != 0 {
		t.Fatalf("first tick saw (%g, %g), want pre-update zeros", spy.measVel[0], spy.measPos[0])
	}
	for i := 1; i < len(result.Records); i++ {
		prev := result.Records[i-1]
		if spy.measVel[i] != prev.ObjVel || spy.measPos[i] != prev.ObjPos {
			t.Fatalf("tick %d saw (%g, %g), want previous post-update state (%g, %g)",
				i, spy.measVel[i], spy.measPos[i], prev.ObjVel, prev.ObjPos)
		}
	}

	// Records carry the post-update state: unit force on unit mass for
	// dt=0.5 gives vel=0.5 after the first tick, not 0.
	if result.Records[0].ObjVel != 0.5 {
		t.Errorf("first record vel = %g, want post-update 0.5", result.Records[0].ObjVel)
	}
}

func TestFlow_RecordCountAndTimes(t *testing.T) {
	clock, err := timeseq.New(0.1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	pm, _ := plant.NewPointMass(1)
	flow := motion.NewFlow(clock, rampProfile{}, control.NewNone(), pm)

	result, err := flow.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Records) != clock.Count() {
		t.Fatalf("got %d records, want %d", len(result.Records), clock.Count())
	}
	for i, rec := range result.Records {
		want := float64(i) * 0.1
		if math.Abs(rec.Time-want) > 1e-12 {
			t.Fatalf("record %d time = %g, want %g", i, rec.Time, want)
		}
	}
}

func TestFlow_Cancellation(t *testing.T) {
	clock, err := timeseq.New(0.01, 10)
	if err != nil {
		t.Fatal(err)
	}
	pm, _ := plant.NewPointMass(1)
	flow := motion.NewFlow(clock, rampProfile{}, control.NewNone(), pm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := flow.Execute(ctx)
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result == nil || len(result.Records) != 0 {
		t.Error("canceled run should still return the consistent partial result")
	}
}

func TestFlow_ReExecute(t *testing.T) {
	clock, err := timeseq.New(0.1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	prof := profile.NewImpulse(1.0, 0.5, 3)
	pm, _ := plant.NewPointMass(1)
	flow := motion.NewFlow(clock, prof, control.NewNone(), pm)

	// The impulse profile counts ticks; a second run of the same flow must
	// start from a rewound profile, not a consumed one.
	for run := 0; run < 2; run++ {
		pm.Reset()
		result, err := flow.Execute(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		for i, rec := range result.Records {
			want := 0.0
			if i < 3 {
				want = 1.0
			}
			if rec.CmdVel != want {
				t.Fatalf("run %d record %d cmd_vel = %g, want %g", run, i, rec.CmdVel, want)
			}
		}
	}
}

func TestFlow_EndToEndTracking(t *testing.T) {
	g := NewWithT(t)

	// Trapezoidal move of 5m at v=1, a=2 under a pure velocity P loop.
	// kvp*dt/m = 1.5 makes the discrete loop overshoot each tick and converge.
	clock, err := timeseq.New(0.1, 6.0)
	g.Expect(err).NotTo(HaveOccurred())
	prof, err := profile.NewTrapezoid(1, 2, 5)
	g.Expect(err).NotTo(HaveOccurred())
	pm, err := plant.NewPointMass(1)
	g.Expect(err).NotTo(HaveOccurred())

	flow := motion.NewFlow(clock, prof, control.NewPID(control.Gains{Kvp: 15}), pm)
	result, err := flow.Execute(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	maxVel := 0.0
	for _, rec := range result.Records {
		if rec.ObjVel > maxVel {
			maxVel = rec.ObjVel
		}
	}
	final := result.Records[len(result.Records)-1]

	g.Expect(maxVel).To(BeNumerically(">", 1.0), "velocity should transiently exceed the command")
	g.Expect(final.ObjPos).To(BeNumerically("~", 5.0, 0.01), "object should settle at the move target")
	g.Expect(math.Abs(final.ObjVel)).To(BeNumerically("<", 0.01), "object should be at rest after the move")
}

func TestFlow_EndToEndFineStep(t *testing.T) {
	g := NewWithT(t)

	// Same move with a stiff gain and a fine step: kvp*dt/m = 0.5, smooth
	// first-order tracking; the residual position error is tiny.
	clock, err := timeseq.New(0.01, 6.0)
	g.Expect(err).NotTo(HaveOccurred())
	prof, err := profile.NewTrapezoid(1, 2, 5)
	g.Expect(err).NotTo(HaveOccurred())
	pm, err := plant.NewPointMass(1)
	g.Expect(err).NotTo(HaveOccurred())

	flow := motion.NewFlow(clock, prof, control.NewPID(control.Gains{Kvp: 50}), pm)
	result, err := flow.Execute(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	final := result.Records[len(result.Records)-1]
	g.Expect(final.ObjPos).To(BeNumerically("~", 5.0, 1e-6))
}
