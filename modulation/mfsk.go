/*
NAME
  mfsk.go

DESCRIPTION
  mfsk.go implements the 16-FSK modulator and demodulator: one tone
  per nibble, two nibbles per byte, framed by the wake-up tone at both
  ends of the transmission.

LICENSE
  MIT License. See LICENSE for details.
*/

package modulation

import (
	"github.com/sonicpipe/sonic-pipe/config"
	"github.com/sonicpipe/sonic-pipe/sonicerr"
	"github.com/sonicpipe/sonic-pipe/tone"
)

// Modulate renders data as PCM samples: a leading wake-up tone, a
// short guard silence, two tones per byte (high nibble then low
// nibble), and a trailing guard silence plus wake-up tone marking the
// end of the transmission.
func Modulate(data []byte, c config.Config) []float32 {
	freqs := c.Frequencies()
	guard := tone.Silence(msFromSamples(c.GuardSilenceSamples(), c.SampleRate), c.SampleRate)
	wake := tone.Generate(config.WakeUpFrequency, config.WakeUpDurationMS, c.SampleRate, c.Volume)

	var out []float32
	out = append(out, wake...)
	out = append(out, guard...)

	for _, b := range data {
		hi, lo := b>>4, b&0x0F
		out = append(out, tone.Generate(freqs[hi], c.SymbolDurationMS, c.SampleRate, c.Volume)...)
		out = append(out, tone.Generate(freqs[lo], c.SymbolDurationMS, c.SampleRate, c.Volume)...)
	}

	out = append(out, guard...)
	out = append(out, wake...)
	return out
}

// Demodulate reverses Modulate: it locates the leading wake-up tone,
// classifies one nibble per symbol window by its dominant frequency,
// and pairs nibbles back into bytes until it reaches the trailing
// wake-up tone or runs out of samples. A trailing unpaired nibble, if
// any, is discarded rather than treated as an error. It arises from
// truncated audio, or from an all-silent window (such as the trailing
// guard silence when a symbol is no longer than it), which classifies
// as tone 0.
// If no complete byte is recovered, Demodulate returns an
// EmptyDemodulationError rather than an empty, successful result.
func Demodulate(samples []float32, c config.Config) ([]byte, error) {
	offset, ok := DetectWakeUp(samples, c)
	if !ok {
		return nil, &sonicerr.NoWakeUpToneError{}
	}

	freqs := c.Frequencies()
	symbolSamples := c.SymbolSamples()
	pos := offset + c.GuardSilenceSamples()

	var nibbles []byte
	for pos+symbolSamples <= len(samples) {
		window := samples[pos : pos+symbolSamples]
		if isEndMarker(window, freqs[:], c) {
			break
		}
		nibbles = append(nibbles, classifySymbol(window, freqs, c.SampleRate))
		pos += symbolSamples
	}

	out := make([]byte, 0, len(nibbles)/2)
	for i := 0; i+1 < len(nibbles); i += 2 {
		out = append(out, nibbles[i]<<4|nibbles[i+1])
	}
	if len(out) == 0 {
		return nil, &sonicerr.EmptyDemodulationError{}
	}
	return out, nil
}

// classifySymbol returns the index of the tone table entry whose
// Goertzel magnitude is largest within window, the same selection the
// wake-up detector's end-marker check uses as its data-tone baseline.
func classifySymbol(window []float32, freqs [config.NumTones]float64, sampleRate int) byte {
	var best byte
	var bestMag float64
	for i, f := range freqs {
		if m := Goertzel(window, f, sampleRate); m > bestMag {
			bestMag = m
			best = byte(i)
		}
	}
	return best
}

func msFromSamples(samples, sampleRate int) int {
	return samples * 1000 / sampleRate
}
