/*
NAME
  commands_test.go

LICENSE
  MIT License. See LICENSE for details.
*/

package main

import (
	"bytes"
	"testing"
)

func TestTestCommandRoundTrip(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"test", "--data", "round trip me"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestSendRejectsInvalidSymbolDuration(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"send", "--data", "x", "--symbol-duration", "1", "--wav-out", t.TempDir() + "/out.wav"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() succeeded with an out-of-range symbol duration, want error")
	}
}
