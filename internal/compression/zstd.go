// Package compression wraps zstd for cache files stored with a ".zst" suffix.
package compression

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Suffix marks cache files that are stored compressed.
const Suffix = ".zst"

// minSize is the smallest payload worth compressing.
const minSize = 128

var magic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type Compressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCompressor creates a compressor. Level 1 is fastest, 3 compresses best;
// anything else falls back to the zstd default.
func NewCompressor(level int) (*Compressor, error) {
	var encoderLevel zstd.EncoderLevel
	switch level {
	case 1:
		encoderLevel = zstd.SpeedFastest
	case 2:
		encoderLevel = zstd.SpeedDefault
	case 3:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		encoderLevel = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(encoderLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		encoder.Close()
		return nil, err
	}

	return &Compressor{
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Compress returns data unchanged when it is small or does not shrink.
// Decompress tells the two apart by the zstd frame magic.
func (c *Compressor) Compress(data []byte) []byte {
	if len(data) < minSize {
		return data
	}

	compressed := c.encoder.EncodeAll(data, make([]byte, 0, len(data)))
	if len(compressed) >= len(data) {
		return data
	}

	return compressed
}

func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}

	decompressed, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return decompressed, nil
}

// IsCompressed reports whether data starts with a zstd frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

func (c *Compressor) Close() error {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	return nil
}
