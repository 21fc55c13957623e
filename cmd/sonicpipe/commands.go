/*
NAME
  commands.go

DESCRIPTION
  commands.go defines sonicpipe's cobra command tree: send, receive,
  devices, and test.

LICENSE
  MIT License. See LICENSE for details.
*/

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sonicpipe/sonic-pipe/config"
	"github.com/sonicpipe/sonic-pipe/pipe"
)

// flags holds the command-line flags shared across subcommands.
type flags struct {
	ultrasonic     bool
	symbolDuration int
	volume         float64
	data           string
	timeout        time.Duration
	wavOut         string
	wavIn          string
	verbose        bool
}

func (f *flags) config() config.Config {
	mode := config.Audible
	if f.ultrasonic {
		mode = config.Ultrasonic
	}
	return config.New(mode,
		config.WithSymbolDuration(f.symbolDuration),
		config.WithVolume(f.volume),
	)
}

func rootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "sonicpipe",
		Short: "Transmit and receive data as acoustic modem audio",
	}
	root.PersistentFlags().BoolVar(&f.ultrasonic, "ultrasonic", false, "use the ultrasonic (17-19.25kHz) tone table instead of the audible one")
	root.PersistentFlags().IntVar(&f.symbolDuration, "symbol-duration", config.DefaultSymbolMS, "symbol duration in milliseconds (20-200)")
	root.PersistentFlags().Float64Var(&f.volume, "volume", 0.5, "linear output amplitude (0.0-1.0)")
	root.PersistentFlags().BoolVar(&f.verbose, "verbose", false, "log at debug level, also to stderr")

	root.AddCommand(sendCmd(f), receiveCmd(f), devicesCmd(f), testCmd(f))
	return root
}

func sendCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [file]",
		Short: "Encode a payload and play it through an audio device",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.config()
			if err := c.Validate(); err != nil {
				return err
			}

			data, err := payload(f.data, args)
			if err != nil {
				return err
			}

			log := newLogger(f.verbose)
			samples, err := pipe.Encode(data, c, log)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			dev, cleanup, err := newDevice(f.wavOut, c.SampleRate)
			if err != nil {
				return err
			}
			defer cleanup()
			defer dev.Close()

			if err := dev.Play(context.Background(), samples); err != nil {
				return fmt.Errorf("play: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.data, "data", "", "literal payload to send, instead of a file argument")
	cmd.Flags().StringVar(&f.wavOut, "wav-out", "", "write to this WAV file instead of the default sound card")
	return cmd
}

func receiveCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Capture audio and decode it back to the original payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.config()
			if err := c.Validate(); err != nil {
				return err
			}
			if f.timeout <= 0 {
				f.timeout = 10 * time.Second
			}

			log := newLogger(f.verbose)
			dev, cleanup, err := newDevice(f.wavIn, c.SampleRate)
			if err != nil {
				return err
			}
			defer cleanup()
			defer dev.Close()

			var decoded []byte
			samples, err := dev.RecordUntil(context.Background(), func(captured []float32) bool {
				d, err := pipe.Decode(captured, c, nil)
				if err != nil {
					return false
				}
				decoded = d
				return true
			}, f.timeout)
			if err != nil && decoded == nil {
				return fmt.Errorf("record: %w", err)
			}
			if decoded == nil {
				decoded, err = pipe.Decode(samples, c, log)
				if err != nil {
					return fmt.Errorf("decode: %w", err)
				}
			}

			_, err = os.Stdout.Write(decoded)
			return err
		},
	}
	cmd.Flags().DurationVar(&f.timeout, "timeout", 10*time.Second, "how long to listen before giving up")
	cmd.Flags().StringVar(&f.wavIn, "wav-in", "", "read from this WAV file instead of the default sound card")
	return cmd
}

func devicesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List available audio devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, cleanup, err := newDevice("", config.SampleRate)
			if err != nil {
				return err
			}
			defer cleanup()
			defer dev.Close()

			names, err := dev.ListDevices()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

func testCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Round-trip a payload through an in-memory channel, no sound card required",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.config()
			if err := c.Validate(); err != nil {
				return err
			}

			data, err := payload(f.data, args)
			if err != nil {
				return err
			}

			log := newLogger(f.verbose)
			samples, err := pipe.Encode(data, c, log)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			decoded, err := pipe.Decode(samples, c, log)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if string(decoded) != string(data) {
				return fmt.Errorf("loopback mismatch: sent %d bytes, received %d bytes", len(data), len(decoded))
			}
			fmt.Printf("OK: %d bytes round-tripped (%d PCM samples)\n", len(data), len(samples))
			return nil
		},
	}
	cmd.Flags().StringVar(&f.data, "data", "", "literal payload to round-trip, instead of a file argument")
	return cmd
}

// payload resolves a subcommand's input: the literal --data flag, a
// file argument, or stdin if neither is given.
func payload(literal string, args []string) ([]byte, error) {
	if literal != "" {
		return []byte(literal), nil
	}
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
