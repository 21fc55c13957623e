/*
NAME
  wakeup.go

DESCRIPTION
  wakeup.go implements the sliding-window search for the wake-up tone
  that frames both the start and end of a transmission.

LICENSE
  MIT License. See LICENSE for details.
*/

package modulation

import "github.com/sonicpipe/sonic-pipe/config"

// wakeMagnitudeThreshold rejects near-silence: a wake-up magnitude
// below this is never a real wake-up tone regardless of how it
// compares to the data tones.
const wakeMagnitudeThreshold = 0.01

// wakeMagnitudeRatio is how far the wake-up tone's magnitude must
// exceed the strongest data tone's magnitude to trigger. It rejects
// windows dominated by a data tone mid-payload.
const wakeMagnitudeRatio = 1.5

// DetectWakeUp slides a half-wake-up-duration window across samples,
// looking for a window whose wake-up-frequency Goertzel magnitude
// exceeds both an absolute floor and 1.5x the strongest data-tone
// magnitude in the same window. On the first such window it returns
// the sample index just past a full wake-up duration from the
// trigger offset, and true. If no window triggers, it returns false.
func DetectWakeUp(samples []float32, c config.Config) (int, bool) {
	windowSize := round(float64(c.SampleRate) * config.WakeUpDurationMS / 1000.0 / 2.0)
	if windowSize <= 0 || len(samples) < windowSize {
		return 0, false
	}
	step := windowSize / 4
	if step == 0 {
		step = 1
	}

	freqs := frequencySlice(c)
	wakeSamples := c.WakeUpSamples()

	for i := 0; i+windowSize <= len(samples); i += step {
		window := samples[i : i+windowSize]
		wakeMag := Goertzel(window, config.WakeUpFrequency, c.SampleRate)
		dataMag := maxGoertzel(window, freqs, c.SampleRate)

		if wakeMag > wakeMagnitudeThreshold && wakeMag > wakeMagnitudeRatio*dataMag {
			return i + wakeSamples, true
		}
	}
	return 0, false
}

// isEndMarker reports whether window's dominant tone is the wake-up
// frequency by the same margin DetectWakeUp uses, meaning the
// demodulator has reached the trailing wake-up tone rather than a data
// symbol.
func isEndMarker(window []float32, freqs []float64, c config.Config) bool {
	wakeMag := Goertzel(window, config.WakeUpFrequency, c.SampleRate)
	dataMag := maxGoertzel(window, freqs, c.SampleRate)
	return wakeMag > wakeMagnitudeRatio*dataMag && wakeMag > wakeMagnitudeThreshold
}

func frequencySlice(c config.Config) []float64 {
	table := c.Frequencies()
	return table[:]
}

func round(x float64) int {
	return int(x + 0.5)
}
