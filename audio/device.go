/*
NAME
  device.go

DESCRIPTION
  device.go defines the Device interface sonic-pipe's send/receive
  pipeline plays PCM samples through and records them from. It is
  sonic-pipe's external collaborator boundary: everything upstream of
  it deals only in []float32 PCM, never in a specific sound API.

LICENSE
  MIT License. See LICENSE for details.
*/

// Package audio provides the PCM playback and capture collaborators
// sonic-pipe's pipe package drives: a real sound-card device, a WAV
// file device, and an in-memory device used by tests.
package audio

import (
	"context"
	"time"
)

// Device plays and records mono float32 PCM at a fixed sample rate.
// Implementations are not required to be safe for concurrent use by
// more than one goroutine at a time.
type Device interface {
	// Play blocks until samples has been written to the device in
	// full, or ctx is cancelled.
	Play(ctx context.Context, samples []float32) error

	// RecordUntil accumulates recorded samples, calling check after
	// every buffer with the samples captured so far. It returns once
	// check reports true, ctx is cancelled, or timeout elapses since
	// this call to RecordUntil began.
	RecordUntil(ctx context.Context, check func([]float32) bool, timeout time.Duration) ([]float32, error)

	// ListDevices returns the names of available audio devices.
	ListDevices() ([]string, error)

	// Close releases any resources held by the device.
	Close() error
}
