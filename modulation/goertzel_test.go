/*
NAME
  goertzel_test.go

LICENSE
  MIT License. See LICENSE for details.
*/

package modulation

import (
	"math"
	"testing"

	"github.com/sonicpipe/sonic-pipe/config"
)

// TestGoertzelSelectivity is property 7: for a synthetic 4800-sample
// pure sine at 1000Hz and the default sample rate, the 1000Hz bin
// dominates the 2000Hz bin by more than 5x and exceeds 0.1.
func TestGoertzelSelectivity(t *testing.T) {
	const freq = 1000.0
	samples := make([]float32, 4800)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / config.SampleRate))
	}

	mag1000 := Goertzel(samples, 1000, config.SampleRate)
	mag2000 := Goertzel(samples, 2000, config.SampleRate)

	if mag1000 <= 0.1 {
		t.Errorf("Goertzel(1000Hz) = %v, want > 0.1", mag1000)
	}
	if mag1000 <= 5*mag2000 {
		t.Errorf("Goertzel(1000Hz) = %v, Goertzel(2000Hz) = %v, want former > 5x latter", mag1000, mag2000)
	}
}

func TestGoertzelEmptyWindow(t *testing.T) {
	if got := Goertzel(nil, 1000, config.SampleRate); got != 0 {
		t.Errorf("Goertzel(nil) = %v, want 0", got)
	}
}
