/*
NAME
  spectrum.go

DESCRIPTION
  spectrum.go provides a diagnostic frequency-domain view of a window
  of samples. It is not on the send/receive path, and no CLI
  subcommand calls it.

LICENSE
  MIT License. See LICENSE for details.
*/

package modulation

import (
	"math"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// Bin is one frequency/magnitude pair from a Spectrum analysis.
type Bin struct {
	Frequency float64
	Magnitude float64
}

// Spectrum computes the magnitude spectrum of samples via a real FFT,
// returning one Bin per positive-frequency bin up to the Nyquist rate.
func Spectrum(samples []float32, sampleRate int) []Bin {
	if len(samples) == 0 {
		return nil
	}

	reals := make([]float64, len(samples))
	for i, s := range samples {
		reals[i] = float64(s)
	}

	coeffs := fft.FFTReal(reals)
	n := len(coeffs)

	bins := make([]Bin, 0, n/2)
	for i := 0; i < n/2; i++ {
		c := coeffs[i]
		mag := math.Hypot(real(c), imag(c)) / float64(n)
		bins = append(bins, Bin{
			Frequency: float64(i) * float64(sampleRate) / float64(n),
			Magnitude: mag,
		})
	}
	return bins
}

// DominantFrequencies returns the n frequencies with the largest
// magnitude in spectrum, sorted loudest first.
func DominantFrequencies(spectrum []Bin, n int) []Bin {
	sorted := make([]Bin, len(spectrum))
	copy(sorted, spectrum)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Magnitude > sorted[j].Magnitude })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
