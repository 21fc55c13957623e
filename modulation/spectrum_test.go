/*
NAME
  spectrum_test.go

LICENSE
  MIT License. See LICENSE for details.
*/

package modulation

import (
	"math"
	"testing"

	"github.com/sonicpipe/sonic-pipe/config"
)

func TestSpectrumFindsDominantFrequency(t *testing.T) {
	const freq = 2000.0
	samples := make([]float32, 2048)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / config.SampleRate))
	}

	spectrum := Spectrum(samples, config.SampleRate)
	top := DominantFrequencies(spectrum, 1)
	if len(top) != 1 {
		t.Fatalf("DominantFrequencies() returned %d bins, want 1", len(top))
	}
	if math.Abs(top[0].Frequency-freq) > float64(config.SampleRate)/float64(len(samples)) {
		t.Errorf("dominant frequency = %v, want close to %v", top[0].Frequency, freq)
	}
}

func TestSpectrumEmpty(t *testing.T) {
	if got := Spectrum(nil, config.SampleRate); got != nil {
		t.Errorf("Spectrum(nil) = %v, want nil", got)
	}
}
