// ABOUTME: Wire-format PCM chunk type
// ABOUTME: Wraps raw decoded bytes with their declared format
package pcm

// Chunk is one wire-format PCM chunk as received from the stream,
// typically the decoded payload of a base64 audio frame. The bytes are
// owned by the chunk until conversion and discarded afterwards.
type Chunk struct {
	Data []byte
	Desc Descriptor
}

// NewChunk wraps raw bytes in the fixed wire format.
func NewChunk(data []byte) Chunk {
	return Chunk{Data: data, Desc: Wire()}
}

// Frames returns the number of complete frames in the chunk.
func (c Chunk) Frames() int {
	width := c.Desc.BytesPerSample() * c.Desc.Channels
	if width == 0 {
		return 0
	}
	return len(c.Data) / width
}
