/*
NAME
  compress_test.go

LICENSE
  MIT License. See LICENSE for details.
*/

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestCompressRoundTrip is property 4: decompress(compress(x)) == x
// for arbitrary byte inputs.
func TestCompressRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 4096).Draw(t, "data")

		compressed := Compress(data)
		decompressed, err := Decompress(compressed)

		assert.NoError(t, err)
		assert.Equal(t, data, decompressed)
	})
}

func TestCompressRepeatedDataShrinks(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = 'a'
	}
	compressed := Compress(data)
	if len(compressed) >= len(data) {
		t.Errorf("compressed %d bytes, want smaller than original %d bytes for highly repetitive input", len(compressed), len(data))
	}
}

func TestDecompressRejectsShortHeader(t *testing.T) {
	_, err := Decompress([]byte{0x01, 0x02})
	if err == nil {
		t.Fatal("Decompress() succeeded on a too-short header, want error")
	}
}
