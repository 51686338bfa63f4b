package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// Bin is one frequency of a spectrum.
type Bin struct {
	FreqHz    float64
	Magnitude float64
}

// Energy below this is rounding error from the detrend.
const noiseFloor = 1e-18

type Spectrum struct {
	FrameRate int
	Bins      []Bin
}

// JudderSpectrum returns the magnitude spectrum of the detrended per-frame
// displacement of positions sampled at frameRate.
func JudderSpectrum(positions []float64, frameRate int) (*Spectrum, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", frameRate)
	}
	if len(positions) < 4 {
		return nil, fmt.Errorf("need at least 4 frames, got %d", len(positions))
	}

	n := len(positions) - 1
	disp := make([]float64, n)
	idx := make([]float64, n)
	for i := 0; i < n; i++ {
		disp[i] = positions[i+1] - positions[i]
		idx[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(idx, disp, nil, false)
	for i := range disp {
		disp[i] -= alpha + beta*idx[i]
	}

	coeffs := fft.FFTReal(disp)
	bins := make([]Bin, n/2+1)
	for k := range bins {
		bins[k] = Bin{
			FreqHz:    float64(k) * float64(frameRate) / float64(n),
			Magnitude: cmplx.Abs(coeffs[k]) / float64(n),
		}
	}

	return &Spectrum{FrameRate: frameRate, Bins: bins}, nil
}

// Dominant returns the strongest bin above DC.
func (s *Spectrum) Dominant() Bin {
	var best Bin
	for _, b := range s.Bins[1:] {
		if b.Magnitude > best.Magnitude {
			best = b
		}
	}
	return best
}

// HighBandRatio is the share of spectral energy above a quarter of the frame
// rate. Zero for a perfectly smooth trajectory.
func (s *Spectrum) HighBandRatio() float64 {
	cutoff := float64(s.FrameRate) / 4
	total, high := 0.0, 0.0
	for _, b := range s.Bins[1:] {
		e := b.Magnitude * b.Magnitude
		total += e
		if b.FreqHz > cutoff {
			high += e
		}
	}
	if total < noiseFloor {
		return 0
	}
	return high / total
}

func (s *Spectrum) Magnitudes() []float64 {
	out := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = b.Magnitude
	}
	return out
}
