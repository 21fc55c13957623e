/*
NAME
  pipe.go

DESCRIPTION
  pipe.go ties the codec, protocol, and modulation packages together
  into the two operations sonic-pipe actually offers a caller: Encode
  turns arbitrary bytes into PCM samples ready to play, and Decode
  turns captured PCM samples back into the original bytes.

LICENSE
  MIT License. See LICENSE for details.
*/

// Package pipe implements sonic-pipe's end-to-end pipeline:
// compress -> error-correct -> packetize -> modulate on the sending
// side, and its exact reverse on the receiving side.
package pipe

import (
	"github.com/ausocean/utils/logging"

	"github.com/sonicpipe/sonic-pipe/codec"
	"github.com/sonicpipe/sonic-pipe/config"
	"github.com/sonicpipe/sonic-pipe/modulation"
	"github.com/sonicpipe/sonic-pipe/protocol"
)

const pkg = "pipe: "

// Encode runs data through the send-side pipeline: LZ4 compression,
// Reed-Solomon encoding, packet framing, and 16-FSK modulation, and
// returns the resulting PCM samples.
func Encode(data []byte, c config.Config, log logging.Logger) ([]float32, error) {
	if log == nil {
		log = noopLogger{}
	}
	log.Debug(pkg+"encoding", "bytes", len(data))

	compressed := codec.Compress(data)
	log.Debug(pkg+"compressed", "bytes", len(compressed))

	ecc, err := codec.NewECC()
	if err != nil {
		return nil, err
	}
	protected, err := ecc.Encode(compressed)
	if err != nil {
		return nil, err
	}
	log.Debug(pkg+"error-corrected", "bytes", len(protected))

	packet, err := protocol.New(protected)
	if err != nil {
		return nil, err
	}
	framed := packet.Serialize()
	log.Debug(pkg+"packetized", "bytes", len(framed))

	samples := modulation.Modulate(framed, c)
	log.Info(pkg+"modulated", "samples", len(samples))
	return samples, nil
}

// Decode runs samples through the receive-side pipeline in reverse:
// MFSK demodulation, packet parsing, Reed-Solomon decoding (with no
// shards marked as erased), and LZ4 decompression, returning the
// original bytes.
func Decode(samples []float32, c config.Config, log logging.Logger) ([]byte, error) {
	if log == nil {
		log = noopLogger{}
	}

	framed, err := modulation.Demodulate(samples, c)
	if err != nil {
		return nil, err
	}
	log.Debug(pkg+"demodulated", "bytes", len(framed))

	packet, err := protocol.Deserialize(framed)
	if err != nil {
		return nil, err
	}
	log.Debug(pkg+"depacketized", "bytes", len(packet.Payload))

	ecc, err := codec.NewECC()
	if err != nil {
		return nil, err
	}
	decompressedInput, err := ecc.Decode(packet.Payload)
	if err != nil {
		return nil, err
	}
	log.Debug(pkg+"error-corrected", "bytes", len(decompressedInput))

	data, err := codec.Decompress(decompressedInput)
	if err != nil {
		return nil, err
	}
	log.Info(pkg+"decoded", "bytes", len(data))
	return data, nil
}

// noopLogger discards every call, so Encode and Decode can be used
// without a caller having to construct a logging.Logger first.
type noopLogger struct{}

func (noopLogger) Log(l int8, m string, a ...interface{})  {}
func (noopLogger) SetLevel(l int8)                         {}
func (noopLogger) Debug(m string, a ...interface{})        {}
func (noopLogger) Info(m string, a ...interface{})         {}
func (noopLogger) Warning(m string, a ...interface{})      {}
func (noopLogger) Error(m string, a ...interface{})        {}
func (noopLogger) Fatal(m string, a ...interface{})        {}
