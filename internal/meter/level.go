// ABOUTME: RMS loudness metering for played buffers
// ABOUTME: Pure functions, safe to call from any goroutine
package meter

import (
	"math"

	"github.com/go-audio/audio"
)

const (
	// Floor is the minimum normalized level. A UI meter driven by this
	// package never renders fully empty, even during near-silence.
	Floor = 0.08

	// epsilon guards the log against -Inf on silent buffers.
	epsilon = 1e-7

	// minDB is the bottom of the visible dynamic range.
	minDB = -50.0

	// fullScale16 normalizes int16 samples into [-1, 1].
	fullScale16 = 32768.0
)

// RMS returns sqrt(mean(sample^2)) over a mono float32 buffer.
// Empty or all-zero input returns exactly 0.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// RMSInt16 computes RMS over a raw int16 buffer, normalizing each
// sample into [-1, 1] first. Useful for metering wire chunks before
// conversion.
func RMSInt16(buf *audio.IntBuffer) float64 {
	if buf == nil || len(buf.Data) == 0 {
		return 0
	}
	var sum float64
	for _, s := range buf.Data {
		v := float64(s) / fullScale16
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(buf.Data)))
}

// RMSDecibels converts an RMS value to dBFS, clamped away from -Inf.
func RMSDecibels(rms float64) float64 {
	return 20 * math.Log10(math.Max(rms, epsilon))
}

// NormalizedLevel maps an RMS value onto [Floor, 1]: the dB value is
// clamped to [-50, 0], rescaled linearly to [0, 1], then floored.
func NormalizedLevel(rms float64) float64 {
	db := RMSDecibels(rms)
	if db < minDB {
		db = minDB
	}
	if db > 0 {
		db = 0
	}
	level := (db - minDB) / -minDB
	if level < Floor {
		level = Floor
	}
	return level
}

// BufferLevel returns the normalized level of a played buffer.
func BufferLevel(buf *audio.Float32Buffer) float64 {
	if buf == nil {
		return Floor
	}
	return NormalizedLevel(RMS(buf.Data))
}
