/*
NAME
  pipe_test.go

LICENSE
  MIT License. See LICENSE for details.
*/

package pipe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonicpipe/sonic-pipe/config"
	"github.com/sonicpipe/sonic-pipe/tone"
)

// TestS2FullPipelineText is scenario S2: a short human-readable string
// survives the full compress/RS/packet/modulate round trip.
func TestS2FullPipelineText(t *testing.T) {
	c := config.New(config.Audible, config.WithVolume(1.0))
	data := []byte("Hello, Sonic-Pipe!")

	samples, err := Encode(data, c, nil)
	assert.NoError(t, err)

	decoded, err := Decode(samples, c, nil)
	assert.NoError(t, err)
	assert.Equal(t, data, decoded)
}

// TestS3FullPipelineMaxPayload is scenario S3: a payload of exactly
// the maximum 1024 bytes survives the full round trip.
func TestS3FullPipelineMaxPayload(t *testing.T) {
	c := config.New(config.Audible, config.WithVolume(1.0))
	data := make([]byte, config.MaxPayloadSize)
	rand.New(rand.NewSource(2)).Read(data)

	samples, err := Encode(data, c, nil)
	assert.NoError(t, err)

	decoded, err := Decode(samples, c, nil)
	assert.NoError(t, err)
	assert.Equal(t, data, decoded)
}

// TestS4OversizePayloadRejected is scenario S4: a 1025-byte payload
// fails before a single sample is ever modulated.
func TestS4OversizePayloadRejected(t *testing.T) {
	c := config.New(config.Audible)
	data := make([]byte, config.MaxPayloadSize+1)

	_, err := Encode(data, c, nil)
	assert.Error(t, err)
}

// TestS6LeadingSilenceTolerated is scenario S6: half a second of
// silence ahead of a valid frame does not prevent Decode from finding
// the wake-up tone and recovering the original bytes.
func TestS6LeadingSilenceTolerated(t *testing.T) {
	c := config.New(config.Audible, config.WithVolume(1.0))
	data := []byte("leading silence")

	samples, err := Encode(data, c, nil)
	assert.NoError(t, err)

	withSilence := append(tone.Silence(500, c.SampleRate), samples...)
	decoded, err := Decode(withSilence, c, nil)
	assert.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestEncodeDecodeUltrasonic(t *testing.T) {
	c := config.New(config.Ultrasonic, config.WithVolume(1.0))
	data := []byte{0x01, 0x02, 0x03}

	samples, err := Encode(data, c, nil)
	assert.NoError(t, err)

	decoded, err := Decode(samples, c, nil)
	assert.NoError(t, err)
	assert.Equal(t, data, decoded)
}
