/*
NAME
  wav.go

DESCRIPTION
  wav.go implements a Device backed by a WAV file: Play encodes PCM
  samples to a 16-bit mono WAV, RecordUntil decodes one back. It is
  what the CLI's --wav-out and --wav-in flags use in place of a sound
  card.

LICENSE
  MIT License. See LICENSE for details.
*/

package audio

import (
	"context"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/sonicpipe/sonic-pipe/sonicerr"
)

const (
	wavBitDepth    = 16
	wavNumChannels = 1
	wavFormat      = 1 // PCM
	wavFullScale   = 32767
)

// WAVDevice plays samples to, and records samples from, a WAV file on
// disk rather than a sound card.
type WAVDevice struct {
	path       string
	sampleRate int
}

// NewWAVDevice returns a WAVDevice that reads and writes path at
// sampleRate.
func NewWAVDevice(path string, sampleRate int) *WAVDevice {
	return &WAVDevice{path: path, sampleRate: sampleRate}
}

// Play writes samples to d.path as a 16-bit mono WAV file, overwriting
// any existing file at that path.
func (d *WAVDevice) Play(ctx context.Context, samples []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(d.path)
	if err != nil {
		return &sonicerr.AudioDeviceError{Err: errors.Wrapf(err, "create %s", d.path)}
	}
	defer f.Close()

	enc := wav.NewEncoder(f, d.sampleRate, wavBitDepth, wavNumChannels, wavFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavNumChannels, SampleRate: d.sampleRate},
		SourceBitDepth: wavBitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s * wavFullScale)
	}

	if err := enc.Write(buf); err != nil {
		return &sonicerr.AudioDeviceError{Err: errors.Wrapf(err, "write %s", d.path)}
	}
	if err := enc.Close(); err != nil {
		return &sonicerr.AudioDeviceError{Err: errors.Wrapf(err, "close %s", d.path)}
	}
	return nil
}

// RecordUntil decodes d.path in full and replays it through check in
// chunks, so a --wav-in fixture behaves the same as a live capture
// would to the pipe package's demodulation loop.
func (d *WAVDevice) RecordUntil(ctx context.Context, check func([]float32) bool, timeout time.Duration) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(d.path)
	if err != nil {
		return nil, &sonicerr.AudioDeviceError{Err: errors.Wrapf(err, "open %s", d.path)}
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, &sonicerr.AudioDeviceError{Err: errors.Wrapf(err, "decode %s", d.path)}
	}

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / wavFullScale
	}

	deadline := time.Now().Add(timeout)
	for end := recordChunkSamples; end < len(samples); end += recordChunkSamples {
		if timeout > 0 && time.Now().After(deadline) {
			return samples[:end], &sonicerr.TimeoutError{Elapsed: timeout}
		}
		if check(samples[:end]) {
			return samples[:end], nil
		}
	}
	check(samples)
	return samples, nil
}

// ListDevices returns the single file path this WAVDevice reads from
// and writes to.
func (d *WAVDevice) ListDevices() ([]string, error) {
	return []string{d.path}, nil
}

// Close is a no-op: Play and RecordUntil each open and close their own
// file handle.
func (d *WAVDevice) Close() error {
	return nil
}
