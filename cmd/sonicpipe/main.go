/*
NAME
  main.go

DESCRIPTION
  sonicpipe is the command-line front end for the sonic-pipe acoustic
  modem: send encodes a file or literal payload to an audio device or
  WAV file, receive reverses it, devices lists available sound cards,
  and test runs a loopback send/receive through an in-memory channel.

LICENSE
  MIT License. See LICENSE for details.
*/

// Package main is the sonicpipe command-line tool.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/sonicpipe/sonic-pipe/audio"
)

// Logging configuration, matching the rotation policy sonic-pipe's
// reference CLI daemons use for their own log files.
const (
	logPath      = "sonicpipe.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logSuppress  = false
	pkg          = "sonicpipe: "
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds a logging.Logger that writes to logPath via
// lumberjack and, when verbose is set, also to stderr.
func newLogger(verbose bool) logging.Logger {
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxAge:     logMaxAge,
		MaxBackups: logMaxBackup,
	}

	level := logging.Info
	var w io.Writer = fileLog
	if verbose {
		level = logging.Debug
		w = io.MultiWriter(fileLog, os.Stderr)
	}
	return logging.New(level, w, logSuppress)
}

// newDevice selects the Device implementation a subcommand should use
// based on its --wav-out/--wav-in flags: a WAVDevice when a file path
// is given, otherwise the host's default sound card.
func newDevice(wavPath string, sampleRate int) (audio.Device, func(), error) {
	if wavPath != "" {
		return audio.NewWAVDevice(wavPath, sampleRate), func() {}, nil
	}

	if err := audio.Initialize(); err != nil {
		return nil, func() {}, err
	}
	dev := audio.NewPortAudioDevice(sampleRate, 1024)
	return dev, func() { audio.Terminate() }, nil
}
