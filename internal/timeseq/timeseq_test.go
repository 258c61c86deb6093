package timeseq

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/motionsim/internal/motion"
)

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		duration float64
		want     error
	}{
		{"zero dt", 0, 1.0, motion.ErrInvalidInterval},
		{"negative dt", -0.01, 1.0, motion.ErrInvalidInterval},
		{"duration below dt", 0.1, 0.05, motion.ErrInvalidDuration},
		{"zero duration", 0.1, 0, motion.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dt, tt.duration)
			if !errors.Is(err, tt.want) {
				t.Errorf("New(%g, %g) = %v, want %v", tt.dt, tt.duration, err, tt.want)
			}
			var pe *motion.ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParamError, got %T", err)
			}
		})
	}
}

func TestSteps_Count(t *testing.T) {
	tests := []struct {
		dt       float64
		duration float64
		want     int
	}{
		{0.1, 1.0, 11},
		{0.1, 6.0, 61},
		{0.5, 0.5, 2},
		{0.1, 0.55, 6}, // partial final interval dropped, floor semantics
		{0.01, 10.0, 1001},
	}

	for _, tt := range tests {
		d, err := New(tt.dt, tt.duration)
		if err != nil {
			t.Fatalf("New(%g, %g): %v", tt.dt, tt.duration, err)
		}
		if got := d.Count(); got != tt.want {
			t.Errorf("Count(dt=%g, dur=%g) = %d, want %d", tt.dt, tt.duration, got, tt.want)
		}

		n := 0
		for range d.Steps() {
			n++
		}
		if n != tt.want {
			t.Errorf("Steps yielded %d values, want %d", n, tt.want)
		}
	}
}

func TestSteps_Spacing(t *testing.T) {
	d, err := New(0.1, 2.0)
	if err != nil {
		t.Fatal(err)
	}

	prev := -1.0
	i := 0
	for step := range d.Steps() {
		if step.Index != i {
			t.Fatalf("index %d out of order, want %d", step.Index, i)
		}
		if step.Elapsed <= prev {
			t.Fatalf("elapsed %g not strictly increasing after %g", step.Elapsed, prev)
		}
		want := float64(i) * 0.1
		if math.Abs(step.Elapsed-want) > 1e-12 {
			t.Fatalf("elapsed = %g, want %g", step.Elapsed, want)
		}
		prev = step.Elapsed
		i++
	}
}

func TestSteps_Restartable(t *testing.T) {
	d, err := New(0.25, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	seq := d.Steps()
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != second {
		t.Errorf("second iteration yielded %d steps, first %d", second, first)
	}
}
