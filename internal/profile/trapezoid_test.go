package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/motionsim/internal/motion"
)

func TestNewTrapezoid_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		v, a, l float64
		want    error
	}{
		{"zero velocity", 0, 2, 5, motion.ErrNonPositiveVelocity},
		{"negative velocity", -1, 2, 5, motion.ErrNonPositiveVelocity},
		{"zero acceleration", 1, 0, 5, motion.ErrNonPositiveAcceleration},
		{"negative acceleration", 1, -2, 5, motion.ErrNonPositiveAcceleration},
		{"zero distance", 1, 2, 0, motion.ErrZeroDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrapezoid(tt.v, tt.a, tt.l)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewTrapezoid(%g, %g, %g) = %v, want %v", tt.v, tt.a, tt.l, err, tt.want)
			}
		})
	}
}

func TestTrapezoid_PhaseBoundaries(t *testing.T) {
	// a=2, v=1, d=5: ta=0.5, d1=0.25, cruise=4.5m over 4.5s, T=5.5s.
	p, err := NewTrapezoid(1, 2, 5)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(p.AccelTime()-0.5) > 1e-12 {
		t.Errorf("AccelTime = %g, want 0.5", p.AccelTime())
	}
	if math.Abs(p.TotalTime()-5.5) > 1e-12 {
		t.Errorf("TotalTime = %g, want 5.5", p.TotalTime())
	}

	tests := []struct {
		name    string
		t       float64
		vel     float64
		pos     float64
	}{
		{"start", 0, 0, 0},
		{"mid accel", 0.25, 0.5, 0.0625},
		{"accel end", 0.5, 1, 0.25},
		{"cruise", 2.75, 1, 2.5},
		{"decel start", 5.0, 1, 4.75},
		{"mid decel", 5.25, 0.5, 4.9375},
		{"move end", 5.5, 0, 5},
		{"hold", 6.0, 0, 5},
		{"hold far", 100, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vel, pos := p.Command(tt.t)
			if math.Abs(vel-tt.vel) > 1e-10 {
				t.Errorf("vel(%g) = %g, want %g", tt.t, vel, tt.vel)
			}
			if math.Abs(pos-tt.pos) > 1e-10 {
				t.Errorf("pos(%g) = %g, want %g", tt.t, pos, tt.pos)
			}
		})
	}
}

func TestTrapezoid_TriangularFallback(t *testing.T) {
	// a=2, v=1, d=0.2: ramps would need 2*d1=0.5m, so the move is triangular.
	p, err := NewTrapezoid(1, 2, 0.2)
	if err != nil {
		t.Fatal(err)
	}

	if p.CruiseTime() != 0 {
		t.Errorf("CruiseTime = %g, want 0", p.CruiseTime())
	}

	wantPeak := math.Sqrt(2 * 0.2)
	if math.Abs(p.PeakVelocity()-wantPeak) > 1e-12 {
		t.Errorf("PeakVelocity = %g, want %g", p.PeakVelocity(), wantPeak)
	}
	if p.PeakVelocity() > 1 {
		t.Error("triangular peak velocity must stay below cruise velocity")
	}

	vel, pos := p.Command(p.TotalTime())
	if math.Abs(vel) > 1e-10 || math.Abs(pos-0.2) > 1e-10 {
		t.Errorf("end of move = (%g, %g), want (0, 0.2)", vel, pos)
	}
}

func TestTrapezoid_PositionMonotonic(t *testing.T) {
	cases := []struct{ v, a, l float64 }{
		{1, 2, 5},
		{1, 2, 0.2},
		{3, 0.5, 10},
		{0.1, 100, 1},
	}

	for _, c := range cases {
		p, err := NewTrapezoid(c.v, c.a, c.l)
		if err != nil {
			t.Fatal(err)
		}

		prev := math.Inf(-1)
		for i := 0; i <= 1000; i++ {
			tt := p.TotalTime() * float64(i) / 1000
			_, pos := p.Command(tt)
			if pos < prev-1e-12 {
				t.Fatalf("(v=%g a=%g l=%g): pos %g decreased below %g at t=%g", c.v, c.a, c.l, pos, prev, tt)
			}
			prev = pos
		}
	}
}

func TestTrapezoid_NegativeDirection(t *testing.T) {
	p, err := NewTrapezoid(1, 2, -5)
	if err != nil {
		t.Fatal(err)
	}

	vel, _ := p.Command(0.25)
	if vel >= 0 {
		t.Errorf("vel = %g, want negative", vel)
	}

	_, pos := p.Command(p.TotalTime() + 1)
	if math.Abs(pos-(-5)) > 1e-10 {
		t.Errorf("hold pos = %g, want -5", pos)
	}
}

func TestImpulse(t *testing.T) {
	p := NewImpulse(0.5, 0.1, 3)

	for i := 0; i < 3; i++ {
		vel, pos := p.Command(float64(i) * 0.1)
		if vel != 0.5 || pos != 0.1 {
			t.Fatalf("tick %d = (%g, %g), want (0.5, 0.1)", i, vel, pos)
		}
	}
	vel, pos := p.Command(0.3)
	if vel != 0 || pos != 0 {
		t.Errorf("after impulse = (%g, %g), want zeros", vel, pos)
	}

	p.Reset()
	vel, _ = p.Command(0)
	if vel != 0.5 {
		t.Errorf("after Reset vel = %g, want 0.5", vel)
	}
}
