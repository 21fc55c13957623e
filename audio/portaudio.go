/*
NAME
  portaudio.go

DESCRIPTION
  portaudio.go implements a Device backed by the host's real sound
  card, via PortAudio's default input and output streams.

LICENSE
  MIT License. See LICENSE for details.
*/

package audio

import (
	"context"
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/sonicpipe/sonic-pipe/sonicerr"
)

// PortAudioDevice plays and records mono float32 PCM through the
// host's default sound devices. Initialize must be called once before
// the first PortAudioDevice is created, and Terminate once after the
// last is closed; cmd/sonicpipe does this around each subcommand's use
// of the sound card.
type PortAudioDevice struct {
	sampleRate     int
	framesPerChunk int
}

// NewPortAudioDevice returns a PortAudioDevice at sampleRate, reading
// and writing framesPerChunk samples per underlying stream callback.
func NewPortAudioDevice(sampleRate, framesPerChunk int) *PortAudioDevice {
	return &PortAudioDevice{sampleRate: sampleRate, framesPerChunk: framesPerChunk}
}

// Initialize readies the PortAudio library. It must be called before
// any PortAudioDevice is used.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return &sonicerr.AudioDeviceError{Err: err}
	}
	return nil
}

// Terminate releases the PortAudio library's global resources.
func Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return &sonicerr.AudioDeviceError{Err: err}
	}
	return nil
}

// Play streams samples to the default output device and blocks until
// playback completes or ctx is cancelled.
func (d *PortAudioDevice) Play(ctx context.Context, samples []float32) error {
	buf := make([]float32, d.framesPerChunk)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(d.sampleRate), len(buf), &buf)
	if err != nil {
		return &sonicerr.AudioDeviceError{Err: fmt.Errorf("open output stream: %w", err)}
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return &sonicerr.AudioDeviceError{Err: fmt.Errorf("start output stream: %w", err)}
	}
	defer stream.Stop()

	for pos := 0; pos < len(samples); pos += len(buf) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copy(buf, samples[pos:])
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		if err := stream.Write(); err != nil {
			return &sonicerr.AudioDeviceError{Err: fmt.Errorf("write output stream: %w", err)}
		}
	}
	// Give the driver a short tail to flush before the stream stops.
	time.Sleep(100 * time.Millisecond)
	return nil
}

// RecordUntil streams samples from the default input device, calling
// check after every framesPerChunk samples captured.
func (d *PortAudioDevice) RecordUntil(ctx context.Context, check func([]float32) bool, timeout time.Duration) ([]float32, error) {
	buf := make([]float32, d.framesPerChunk)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(d.sampleRate), len(buf), &buf)
	if err != nil {
		return nil, &sonicerr.AudioDeviceError{Err: fmt.Errorf("open input stream: %w", err)}
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, &sonicerr.AudioDeviceError{Err: fmt.Errorf("start input stream: %w", err)}
	}
	defer stream.Stop()

	deadline := time.Now().Add(timeout)
	var captured []float32
	for {
		if err := ctx.Err(); err != nil {
			return captured, err
		}
		if timeout > 0 && time.Now().After(deadline) {
			return captured, &sonicerr.TimeoutError{Elapsed: timeout}
		}
		if err := stream.Read(); err != nil {
			return captured, &sonicerr.AudioDeviceError{Err: fmt.Errorf("read input stream: %w", err)}
		}
		captured = append(captured, buf...)
		if check(captured) {
			return captured, nil
		}
	}
}

// ListDevices returns the name of every audio device PortAudio can
// see, input or output.
func (d *PortAudioDevice) ListDevices() ([]string, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, &sonicerr.AudioDeviceError{Err: err}
	}
	names := make([]string, len(devices))
	for i, dev := range devices {
		names[i] = dev.Name
	}
	return names, nil
}

// Close is a no-op: Play and RecordUntil each open and close their own
// stream.
func (d *PortAudioDevice) Close() error {
	return nil
}
