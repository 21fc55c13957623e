/*
NAME
  packet.go

DESCRIPTION
  packet.go implements the self-describing packet framing sonic-pipe
  wraps every transmission in: a small header, a payload, and a
  trailing CRC-32 integrity check.

LICENSE
  MIT License. See LICENSE for details.
*/

// Package protocol implements sonic-pipe's packet framing: a header,
// payload, and CRC-32 trailer, serialized to and parsed from the
// modem's wire format.
package protocol

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/sonicpipe/sonic-pipe/sonicerr"
)

// ProtocolVersion is the current packet version written by New.
const ProtocolVersion uint8 = 1

// MaxPayloadSize is the largest payload a Packet may carry.
const MaxPayloadSize = 1024

// HeaderSize is the byte length of version+payload_len+flags.
const HeaderSize = 4

// crcSize is the byte length of the trailing CRC-32.
const crcSize = 4

// Packet is sonic-pipe's on-air frame: version, payload length, flags,
// payload, and a CRC-32 of the payload.
type Packet struct {
	Version    uint8
	PayloadLen uint16
	Flags      uint8
	Payload    []byte
	Checksum   uint32
}

// New builds a Packet around payload, computing its CRC-32 checksum.
// It returns an InvalidPacketError if payload exceeds MaxPayloadSize.
func New(payload []byte) (Packet, error) {
	if len(payload) > MaxPayloadSize {
		return Packet{}, &sonicerr.InvalidPacketError{
			Reason: "payload too large",
		}
	}
	return Packet{
		Version:    ProtocolVersion,
		PayloadLen: uint16(len(payload)),
		Flags:      0,
		Payload:    payload,
		Checksum:   crc32.ChecksumIEEE(payload),
	}, nil
}

// Serialize returns the wire-format bytes for p: version, payload_len,
// flags, payload, then the big-endian CRC-32 trailer.
func (p Packet) Serialize() []byte {
	out := make([]byte, HeaderSize+len(p.Payload)+crcSize)
	out[0] = p.Version
	binary.BigEndian.PutUint16(out[1:3], p.PayloadLen)
	out[3] = p.Flags
	copy(out[HeaderSize:], p.Payload)
	binary.BigEndian.PutUint32(out[HeaderSize+len(p.Payload):], p.Checksum)
	return out
}

// Deserialize parses data as a Packet, returning an InvalidPacketError
// if it is too short or the header is inconsistent with its length, or
// a ChecksumMismatchError if the CRC-32 trailer doesn't match the
// payload. Unknown flag bits are ignored; any version is accepted and
// recorded for the caller to inspect.
func Deserialize(data []byte) (Packet, error) {
	if len(data) < HeaderSize+crcSize {
		return Packet{}, &sonicerr.InvalidPacketError{Reason: "data too short"}
	}

	version := data[0]
	payloadLen := binary.BigEndian.Uint16(data[1:3])
	flags := data[3]

	payloadEnd := HeaderSize + int(payloadLen)
	if len(data) < payloadEnd+crcSize {
		return Packet{}, &sonicerr.InvalidPacketError{Reason: "incomplete packet"}
	}

	payload := data[HeaderSize:payloadEnd]
	checksum := binary.BigEndian.Uint32(data[payloadEnd : payloadEnd+crcSize])

	if got := crc32.ChecksumIEEE(payload); got != checksum {
		return Packet{}, &sonicerr.ChecksumMismatchError{}
	}

	return Packet{
		Version:    version,
		PayloadLen: payloadLen,
		Flags:      flags,
		Payload:    payload,
		Checksum:   checksum,
	}, nil
}
