/*
NAME
  tone.go

DESCRIPTION
  tone.go generates the raised-edge sine tones that carry both the
  wake-up marker and the MFSK symbols.

LICENSE
  MIT License. See LICENSE for details.
*/

// Package tone generates raised-edge sine tones for a given sample
// rate, used by the modulation package to build wake-up and symbol
// waveforms.
package tone

import "math"

// fadeSeconds is the linear ramp applied at both edges of a tone to
// suppress the spectral splatter a hard edge would cause.
const fadeSeconds = 0.005

// Generate returns durationMS of a sine tone at frequency Hz, sampled
// at sampleRate Hz, scaled by volume and shaped with a 5ms linear fade
// at both ends.
func Generate(frequency float64, durationMS, sampleRate int, volume float64) []float32 {
	n := round(float64(sampleRate) * float64(durationMS) / 1000.0)
	samples := make([]float32, n)
	fadeSamples := round(float64(sampleRate) * fadeSeconds)

	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		s := math.Sin(2*math.Pi*frequency*t) * volume
		samples[i] = float32(s * fade(i, n, fadeSamples))
	}
	return samples
}

// fade returns the linear ramp multiplier for sample index i of n
// total samples, with a fadeSamples-wide ramp at each edge.
func fade(i, n, fadeSamples int) float64 {
	switch {
	case i < fadeSamples:
		return float64(i) / float64(fadeSamples)
	case i > n-fadeSamples:
		return float64(n-i) / float64(fadeSamples)
	default:
		return 1.0
	}
}

// Silence returns n zero samples for durationMS at sampleRate Hz, used
// for the guard interval between the wake-up tone and the first
// symbol.
func Silence(durationMS, sampleRate int) []float32 {
	n := round(float64(sampleRate) * float64(durationMS) / 1000.0)
	return make([]float32, n)
}

func round(x float64) int {
	return int(x + 0.5)
}
