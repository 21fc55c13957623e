/*
NAME
  reedsolomon.go

DESCRIPTION
  reedsolomon.go implements the fixed-parameter Reed-Solomon erasure
  codec sonic-pipe applies to compressed payloads before packetizing
  them: 8 data shards, 4 parity shards, tolerant of up to 4 shards
  marked missing on decode. Shards that are present but corrupt are not
  detected or corrected.

LICENSE
  MIT License. See LICENSE for details.
*/

package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/reedsolomon"
	"github.com/sonicpipe/sonic-pipe/sonicerr"
)

// DataShards and ParityShards are sonic-pipe's fixed Reed-Solomon
// parameters. They have no reconfiguration path: a variable ECC rate
// would complicate frame synchronisation, which this modem has no
// mechanism to recover from mid-frame.
const (
	DataShards   = 8
	ParityShards = 4
	totalShards  = DataShards + ParityShards
	eccHeaderLen = 8 // original_len:u32 + shard_size:u32, both big-endian.
)

// ECC wraps a reusable Reed-Solomon encoder for sonic-pipe's fixed
// 8-data/4-parity codeword shape.
type ECC struct {
	enc reedsolomon.Encoder
}

// NewECC constructs an ECC codec. Construction only fails if the
// underlying library rejects the (8, 4) shard configuration, which it
// never does for this fixed shape, but the error is still surfaced as
// an ErrorCorrectionError rather than panicking.
func NewECC() (*ECC, error) {
	enc, err := reedsolomon.New(DataShards, ParityShards)
	if err != nil {
		return nil, &sonicerr.ErrorCorrectionError{Err: err}
	}
	return &ECC{enc: enc}, nil
}

// Encode splits data into DataShards contiguous shards (zero-padding
// the last), computes ParityShards parity shards, and returns the
// header-prefixed concatenation of all shards.
func (e *ECC) Encode(data []byte) ([]byte, error) {
	shardSize := ceilDiv(len(data), DataShards)
	shards := make([][]byte, totalShards)

	for i := 0; i < DataShards; i++ {
		shards[i] = make([]byte, shardSize)
		start := i * shardSize
		if start < len(data) {
			end := start + shardSize
			if end > len(data) {
				end = len(data)
			}
			copy(shards[i], data[start:end])
		}
	}
	for i := DataShards; i < totalShards; i++ {
		shards[i] = make([]byte, shardSize)
	}

	if err := e.enc.Encode(shards); err != nil {
		return nil, &sonicerr.ErrorCorrectionError{Err: err}
	}

	out := make([]byte, eccHeaderLen+totalShards*shardSize)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(data)))
	binary.BigEndian.PutUint32(out[4:8], uint32(shardSize))
	for i, shard := range shards {
		copy(out[eccHeaderLen+i*shardSize:], shard)
	}
	return out, nil
}

// Decode reads the header-prefixed shard set produced by Encode and
// reassembles the data shards, truncated to the original length. Every
// shard is taken as present, so the reconstruct step changes nothing:
// a corrupt shard is neither detected nor repaired. Recovery of up to
// ParityShards shards happens only when they are named as missing
// through DecodeWithErasures.
func (e *ECC) Decode(encoded []byte) ([]byte, error) {
	return e.decode(encoded, nil)
}

// DecodeWithErasures behaves like Decode but first marks the shards at
// the given indices as missing, exercising the codec's erasure
// recovery path explicitly (used by tests and by callers that know
// which shards a noisy channel dropped).
func (e *ECC) DecodeWithErasures(encoded []byte, erased []int) ([]byte, error) {
	return e.decode(encoded, erased)
}

func (e *ECC) decode(encoded []byte, erased []int) ([]byte, error) {
	if len(encoded) < eccHeaderLen {
		return nil, &sonicerr.ErrorCorrectionError{Err: fmt.Errorf("data too short: %d bytes", len(encoded))}
	}

	originalLen := binary.BigEndian.Uint32(encoded[0:4])
	shardSize := binary.BigEndian.Uint32(encoded[4:8])

	expectedLen := eccHeaderLen + totalShards*int(shardSize)
	if len(encoded) < expectedLen {
		return nil, &sonicerr.ErrorCorrectionError{Err: fmt.Errorf("incomplete data: have %d bytes, want %d", len(encoded), expectedLen)}
	}

	erasedSet := make(map[int]bool, len(erased))
	for _, idx := range erased {
		erasedSet[idx] = true
	}

	shards := make([][]byte, totalShards)
	for i := 0; i < totalShards; i++ {
		if erasedSet[i] {
			continue
		}
		start := eccHeaderLen + i*int(shardSize)
		shards[i] = append([]byte(nil), encoded[start:start+int(shardSize)]...)
	}

	if err := e.enc.Reconstruct(shards); err != nil {
		return nil, &sonicerr.ErrorCorrectionError{Err: err}
	}

	result := make([]byte, 0, originalLen)
	for i := 0; i < DataShards; i++ {
		result = append(result, shards[i]...)
	}
	if uint32(len(result)) < originalLen {
		return nil, &sonicerr.ErrorCorrectionError{Err: fmt.Errorf("reconstructed %d bytes, want at least %d", len(result), originalLen)}
	}
	return result[:originalLen], nil
}

func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}
