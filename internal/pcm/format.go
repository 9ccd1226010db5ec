// ABOUTME: Audio format descriptors for the playback pipeline
// ABOUTME: Defines the fixed wire and playable PCM formats
package pcm

import "github.com/go-audio/audio"

const (
	// SampleRate is the fixed pipeline sample rate in Hz.
	SampleRate = 24000

	// Channels is the fixed channel count (mono).
	Channels = 1
)

// SampleType identifies the in-memory sample encoding.
type SampleType int

const (
	SampleInt16 SampleType = iota
	SampleFloat32
)

// Descriptor describes a PCM stream format. Values are immutable; the two
// formats the pipeline uses are returned by Wire and Playable.
type Descriptor struct {
	SampleRate  int
	Channels    int
	Sample      SampleType
	Interleaved bool
}

// Wire returns the format chunks arrive in: signed 16-bit little-endian
// at 24 kHz mono.
func Wire() Descriptor {
	return Descriptor{
		SampleRate:  SampleRate,
		Channels:    Channels,
		Sample:      SampleInt16,
		Interleaved: true,
	}
}

// Playable returns the device-facing format: 32-bit float at 24 kHz mono.
func Playable() Descriptor {
	return Descriptor{
		SampleRate:  SampleRate,
		Channels:    Channels,
		Sample:      SampleFloat32,
		Interleaved: true,
	}
}

// BytesPerSample returns the byte width of a single sample.
func (d Descriptor) BytesPerSample() int {
	switch d.Sample {
	case SampleInt16:
		return 2
	case SampleFloat32:
		return 4
	default:
		return 0
	}
}

// Format returns the go-audio representation used to tag buffers.
func (d Descriptor) Format() *audio.Format {
	return &audio.Format{
		NumChannels: d.Channels,
		SampleRate:  d.SampleRate,
	}
}
