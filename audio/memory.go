/*
NAME
  memory.go

DESCRIPTION
  memory.go implements an in-memory Device: Play appends to an
  internal buffer and RecordUntil reads back samples seeded with Prime,
  with no sound card involved. Only the audio package's own tests use
  it; the CLI's "test" subcommand calls the pipe package directly.

LICENSE
  MIT License. See LICENSE for details.
*/

package audio

import (
	"context"
	"time"

	"github.com/sonicpipe/sonic-pipe/sonicerr"
)

// recordChunkSamples is how many samples MemoryDevice hands to check
// at a time, chosen to be small relative to one symbol so RecordUntil
// callers see incremental progress rather than everything at once.
const recordChunkSamples = 256

// MemoryDevice is a Device backed by an in-process buffer rather than
// a sound card. Writing (Play) and reading (RecordUntil) are
// independent: a MemoryDevice used to simulate a channel should be
// primed via Prime before RecordUntil is called.
type MemoryDevice struct {
	played  []float32
	primed  []float32
	readPos int
}

// NewMemoryDevice returns a MemoryDevice with an empty played buffer
// and nothing primed for RecordUntil to read back.
func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{}
}

// Played returns every sample written via Play so far.
func (d *MemoryDevice) Played() []float32 {
	return d.played
}

// Prime seeds the samples RecordUntil will read back, simulating a
// capture of samples arriving over the acoustic channel.
func (d *MemoryDevice) Prime(samples []float32) {
	d.primed = samples
	d.readPos = 0
}

// Play appends samples to the device's played buffer.
func (d *MemoryDevice) Play(ctx context.Context, samples []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.played = append(d.played, samples...)
	return nil
}

// RecordUntil reads back previously primed samples in chunks, calling
// check after each chunk, until check reports true, the primed buffer
// is exhausted, timeout elapses, or ctx is cancelled.
func (d *MemoryDevice) RecordUntil(ctx context.Context, check func([]float32) bool, timeout time.Duration) ([]float32, error) {
	deadline := time.Now().Add(timeout)
	var captured []float32

	for d.readPos < len(d.primed) {
		if err := ctx.Err(); err != nil {
			return captured, err
		}
		if timeout > 0 && time.Now().After(deadline) {
			return captured, &sonicerr.TimeoutError{Elapsed: timeout}
		}

		end := d.readPos + recordChunkSamples
		if end > len(d.primed) {
			end = len(d.primed)
		}
		captured = append(captured, d.primed[d.readPos:end]...)
		d.readPos = end

		if check(captured) {
			return captured, nil
		}
	}
	return captured, nil
}

// ListDevices returns a single synthetic device name.
func (d *MemoryDevice) ListDevices() ([]string, error) {
	return []string{"memory"}, nil
}

// Close is a no-op for MemoryDevice.
func (d *MemoryDevice) Close() error {
	return nil
}
