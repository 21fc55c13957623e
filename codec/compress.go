/*
NAME
  compress.go

DESCRIPTION
  compress.go wraps an LZ4 block codec with the length-prefixed framing
  a decoder needs to know the uncompressed size up front.

LICENSE
  MIT License. See LICENSE for details.
*/

// Package codec implements sonic-pipe's resilience layer: LZ4
// compression and Reed-Solomon erasure coding, applied to the user's
// bytes before they are packetized and modulated.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
	"github.com/sonicpipe/sonic-pipe/sonicerr"
)

// sizePrefixLen is the byte length of the little-endian original-size
// prefix written ahead of the LZ4 block.
const sizePrefixLen = 4

// Compress returns data compressed as an LZ4 block, prefixed with its
// little-endian uncompressed length so a decoder can size its output
// buffer before decompressing.
func Compress(data []byte) []byte {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	var c lz4.Compressor
	n, err := c.CompressBlock(data, buf)
	if err != nil {
		// CompressBlock only errors on a destination buffer that's too
		// small, which CompressBlockBound rules out.
		panic(fmt.Sprintf("codec: unexpected lz4 compress error: %v", err))
	}

	out := make([]byte, sizePrefixLen+n)
	binary.LittleEndian.PutUint32(out[:sizePrefixLen], uint32(len(data)))
	if n == 0 || n == len(data) {
		// lz4 reports n==0 when the block is incompressible; fall back
		// to storing the raw bytes so Decompress still round-trips. A
		// block exactly as long as the input is stored raw too, since
		// Decompress reads an equal length as the raw fallback.
		return append(out[:sizePrefixLen], data...)
	}
	copy(out[sizePrefixLen:], buf[:n])
	return out
}

// Decompress reverses Compress, returning a CompressionError on a
// malformed header or a corrupt LZ4 block.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < sizePrefixLen {
		return nil, &sonicerr.CompressionError{Err: fmt.Errorf("header too short: %d bytes", len(data))}
	}

	originalLen := binary.LittleEndian.Uint32(data[:sizePrefixLen])
	block := data[sizePrefixLen:]

	if uint32(len(block)) == originalLen {
		// Compress fell back to storing the raw bytes because the
		// block was incompressible.
		out := make([]byte, originalLen)
		copy(out, block)
		return out, nil
	}

	out := make([]byte, originalLen)
	n, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, &sonicerr.CompressionError{Err: err}
	}
	if uint32(n) != originalLen {
		return nil, &sonicerr.CompressionError{Err: fmt.Errorf("decompressed %d bytes, header declared %d", n, originalLen)}
	}
	return out, nil
}
