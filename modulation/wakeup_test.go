/*
NAME
  wakeup_test.go

LICENSE
  MIT License. See LICENSE for details.
*/

package modulation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sonicpipe/sonic-pipe/config"
	"github.com/sonicpipe/sonic-pipe/tone"
)

// TestDetectWakeUpFindsTone generates a wake-up tone followed by
// silence and confirms DetectWakeUp triggers within the tone.
func TestDetectWakeUpFindsTone(t *testing.T) {
	c := config.New(config.Audible)
	wake := tone.Generate(config.WakeUpFrequency, config.WakeUpDurationMS, c.SampleRate, 1.0)
	trailing := tone.Silence(50, c.SampleRate)
	samples := append(append([]float32{}, wake...), trailing...)

	offset, ok := DetectWakeUp(samples, c)
	if !ok {
		t.Fatal("DetectWakeUp() = false, want true")
	}
	if offset <= 0 || offset > len(samples) {
		t.Errorf("DetectWakeUp() offset = %d, want within [1, %d]", offset, len(samples))
	}
}

// TestDetectWakeUpRejectsNoise is property 9: one second of low
// amplitude Gaussian noise never triggers a false positive.
func TestDetectWakeUpRejectsNoise(t *testing.T) {
	c := config.New(config.Audible)
	rng := rand.New(rand.NewSource(1))
	samples := make([]float32, c.SampleRate)
	for i := range samples {
		samples[i] = float32(rng.NormFloat64() * 0.005)
	}

	if _, ok := DetectWakeUp(samples, c); ok {
		t.Error("DetectWakeUp() = true on low-amplitude noise, want false")
	}
}

// TestDetectWakeUpRejectsDataTone confirms a pure data tone (not the
// wake-up frequency) never triggers.
func TestDetectWakeUpRejectsDataTone(t *testing.T) {
	c := config.New(config.Audible)
	freqs := c.Frequencies()
	samples := make([]float32, c.SampleRate/2)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freqs[3] * float64(i) / float64(c.SampleRate)))
	}

	if _, ok := DetectWakeUp(samples, c); ok {
		t.Error("DetectWakeUp() = true on a pure data tone, want false")
	}
}

func TestDetectWakeUpTooShort(t *testing.T) {
	c := config.New(config.Audible)
	if _, ok := DetectWakeUp(make([]float32, 4), c); ok {
		t.Error("DetectWakeUp() = true on a too-short window, want false")
	}
}
