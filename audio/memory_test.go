/*
NAME
  memory_test.go

LICENSE
  MIT License. See LICENSE for details.
*/

package audio

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryDevicePlayAccumulates(t *testing.T) {
	d := NewMemoryDevice()
	ctx := context.Background()

	if err := d.Play(ctx, []float32{1, 2, 3}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := d.Play(ctx, []float32{4, 5}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	want := []float32{1, 2, 3, 4, 5}
	if diff := cmp.Diff(want, d.Played()); diff != "" {
		t.Errorf("Played() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryDeviceRecordUntilCondition(t *testing.T) {
	d := NewMemoryDevice()
	d.Prime([]float32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1})

	captured, err := d.RecordUntil(context.Background(), func(s []float32) bool {
		return len(s) >= 5
	}, time.Second)
	if err != nil {
		t.Fatalf("RecordUntil() error = %v", err)
	}
	if len(captured) < 5 {
		t.Errorf("RecordUntil() captured %d samples, want at least 5", len(captured))
	}
}

func TestMemoryDeviceRecordUntilExhausted(t *testing.T) {
	d := NewMemoryDevice()
	d.Prime([]float32{1, 2, 3})

	captured, err := d.RecordUntil(context.Background(), func(s []float32) bool { return false }, time.Second)
	if err != nil {
		t.Fatalf("RecordUntil() error = %v", err)
	}
	if diff := cmp.Diff([]float32{1, 2, 3}, captured); diff != "" {
		t.Errorf("RecordUntil() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryDeviceRecordUntilTimeout(t *testing.T) {
	d := NewMemoryDevice()
	samples := make([]float32, 10_000_000)
	d.Prime(samples)

	_, err := d.RecordUntil(context.Background(), func(s []float32) bool { return false }, time.Nanosecond)
	if err == nil {
		t.Fatal("RecordUntil() succeeded, want timeout error")
	}
}

func TestMemoryDeviceListDevices(t *testing.T) {
	d := NewMemoryDevice()
	devices, err := d.ListDevices()
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("ListDevices() = %v, want 1 entry", devices)
	}
}
