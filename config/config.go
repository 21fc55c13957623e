/*
NAME
  config.go

DESCRIPTION
  config.go defines the immutable configuration bundle for a single
  sonic-pipe transmission: the transmission mode, symbol timing, and
  volume, plus the frequency table that mode derives.

LICENSE
  MIT License. See LICENSE for details.
*/

// Package config defines the configuration for a sonic-pipe
// transmission and the frequency tables derived from it.
package config

import (
	"fmt"

	"github.com/sonicpipe/sonic-pipe/sonicerr"
)

// Mode selects the physical frequency band used for a transmission.
type Mode int

const (
	// Audible uses a 1000-2500 Hz tone table, audible to humans.
	Audible Mode = iota
	// Ultrasonic uses a 17000-19250 Hz tone table, semi-silent.
	Ultrasonic
)

func (m Mode) String() string {
	switch m {
	case Audible:
		return "Audible"
	case Ultrasonic:
		return "Ultrasonic"
	default:
		return "Unknown"
	}
}

// Process-wide constants. These have no reconfiguration path; they are
// the physical parameters the wire format is defined against.
const (
	SampleRate        = 48000
	WakeUpFrequency   = 18500.0
	WakeUpDurationMS  = 100
	NumTones          = 16
	MaxPayloadSize    = 1024
	HeaderSize        = 4
	DefaultSymbolMS   = 50
	minSymbolMS       = 20
	maxSymbolMS       = 200
	guardSilenceRatio = 0.02 // 20ms at 48kHz sample rate fraction.
)

// Config is an immutable bundle of parameters for one transmission.
type Config struct {
	Mode             Mode
	SampleRate       int
	SymbolDurationMS int
	Volume           float64
}

// Option configures a Config during construction.
type Option func(*Config)

// WithSymbolDuration overrides the default 50ms symbol duration.
// Accepted range is 20-200ms per the modem's timing budget.
func WithSymbolDuration(ms int) Option {
	return func(c *Config) { c.SymbolDurationMS = ms }
}

// WithVolume overrides the default linear amplitude scale.
func WithVolume(v float64) Option {
	return func(c *Config) { c.Volume = v }
}

// WithSampleRate overrides the sample rate. The wire format and
// Goertzel bin alignment are only characterised at 48000 Hz; this
// option exists so a future revision has a documented path rather than
// requiring a new Config field (see spec's Open Question on bin
// alignment).
func WithSampleRate(rate int) Option {
	return func(c *Config) { c.SampleRate = rate }
}

// New builds a Config for the given mode with defaults, applying opts
// in order.
func New(mode Mode, opts ...Option) Config {
	c := Config{
		Mode:             mode,
		SampleRate:       SampleRate,
		SymbolDurationMS: DefaultSymbolMS,
		Volume:           0.5,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate checks that a Config's tunable fields are within the bounds
// spec.md documents, returning a MultiError describing every violation
// found rather than stopping at the first.
func (c Config) Validate() error {
	var errs sonicerr.MultiError
	if c.SymbolDurationMS < minSymbolMS || c.SymbolDurationMS > maxSymbolMS {
		errs = append(errs, fmt.Errorf("symbol duration %dms out of range [%d, %d]", c.SymbolDurationMS, minSymbolMS, maxSymbolMS))
	}
	if c.Volume < 0.0 || c.Volume > 1.0 {
		errs = append(errs, fmt.Errorf("volume %v out of range [0.0, 1.0]", c.Volume))
	}
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// GuardSilenceSamples returns the number of zero samples inserted
// between the wake-up tone and the first symbol.
func (c Config) GuardSilenceSamples() int {
	return round(float64(c.SampleRate) * guardSilenceRatio)
}

// SymbolSamples returns the number of samples in one symbol tone.
func (c Config) SymbolSamples() int {
	return round(float64(c.SampleRate) * float64(c.SymbolDurationMS) / 1000.0)
}

// WakeUpSamples returns the number of samples in the wake-up tone.
func (c Config) WakeUpSamples() int {
	return round(float64(c.SampleRate) * WakeUpDurationMS / 1000.0)
}

// Frequencies returns the 16-entry tone table F[0..16) for c.Mode.
func (c Config) Frequencies() [NumTones]float64 {
	var f [NumTones]float64
	base, step := c.Mode.baseAndStep()
	for i := range f {
		f[i] = base + float64(i)*step
	}
	return f
}

func (m Mode) baseAndStep() (base, step float64) {
	switch m {
	case Ultrasonic:
		return 17000.0, 150.0
	default:
		return 1000.0, 100.0
	}
}

func round(x float64) int {
	if x < 0 {
		return int(x - 0.5)
	}
	return int(x + 0.5)
}

