// ABOUTME: Sample format converter for wire PCM chunks
// ABOUTME: Converts interleaved mono int16 LE to float32 in [-1, 1]
package pcm

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/audio"
)

// fullScale16 is the int16 full-scale divisor; -32768 maps to exactly -1.0.
const fullScale16 = 32768.0

// Converter converts wire-format chunks into playable float32 buffers.
// It is stateless after construction and safe for concurrent use.
type Converter struct {
	from Descriptor
	to   Descriptor
}

// NewConverter validates the conversion pair. The pipeline supports a
// single pair (wire int16 to playable float32 at the same rate and
// channel count); anything else is a construction failure.
func NewConverter(from, to Descriptor) (*Converter, error) {
	if from.Sample != SampleInt16 || to.Sample != SampleFloat32 {
		return nil, fmt.Errorf("sample types int16->float32 required: %w", ErrIncompatibleFormat)
	}
	if from.SampleRate != to.SampleRate {
		return nil, fmt.Errorf("sample rates %d and %d differ: %w",
			from.SampleRate, to.SampleRate, ErrIncompatibleFormat)
	}
	if from.Channels != to.Channels || from.Channels != 1 {
		return nil, fmt.Errorf("mono required on both sides: %w", ErrIncompatibleFormat)
	}
	if !from.Interleaved || !to.Interleaved {
		return nil, fmt.Errorf("interleaved layout required: %w", ErrIncompatibleFormat)
	}
	return &Converter{from: from, to: to}, nil
}

// Convert produces a float32 buffer from a wire chunk. It has no side
// effects: on any error, nothing is allocated for playback and the
// chunk is simply dropped by the caller.
func (c *Converter) Convert(chunk Chunk) (*audio.Float32Buffer, error) {
	if chunk.Desc != c.from {
		return nil, fmt.Errorf("chunk declares a different format: %w", ErrIncompatibleFormat)
	}
	if len(chunk.Data) == 0 {
		return nil, ErrEmptyChunk
	}
	width := c.from.BytesPerSample()
	if len(chunk.Data)%width != 0 {
		return nil, fmt.Errorf("%d bytes with %d-byte samples: %w",
			len(chunk.Data), width, ErrTruncatedFrame)
	}

	frames := len(chunk.Data) / width

	// Capacity is doubled so a rate-converting stage can expand the
	// buffer in place without reallocating.
	out := make([]float32, frames, 2*frames)
	for i := 0; i < frames; i++ {
		s := int16(binary.LittleEndian.Uint16(chunk.Data[i*width:]))
		out[i] = float32(s) / fullScale16
	}

	return &audio.Float32Buffer{
		Format: c.to.Format(),
		Data:   out,
	}, nil
}
