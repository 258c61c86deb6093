package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/motionsim/internal/motion"
)

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// signal's discrete Fourier transform. Bin k corresponds to frequency
// k/(n*dt) for a signal sampled at dt.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// component, or 0 when the signal has no oscillatory content.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	// Round-off leaves tiny nonzero bins in an otherwise flat spectrum.
	if maxIdx == 0 || maxPower <= 1e-9*float64(len(data)) {
		return 0
	}
	return float64(maxIdx) / (float64(len(data)) * dt)
}

// VelocityError extracts the per-tick command/object velocity error from a
// record series. Oscillation in this signal is the usual sign of an
// over-tightened velocity loop.
func VelocityError(records []motion.Record) []float64 {
	errs := make([]float64, len(records))
	for i, rec := range records {
		errs[i] = rec.CmdVel - rec.ObjVel
	}
	return errs
}

// PositionError extracts the per-tick command/object position error.
func PositionError(records []motion.Record) []float64 {
	errs := make([]float64, len(records))
	for i, rec := range records {
		errs[i] = rec.CmdPos - rec.ObjPos
	}
	return errs
}
