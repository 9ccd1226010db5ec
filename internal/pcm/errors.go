// ABOUTME: Sentinel errors for PCM chunk conversion
// ABOUTME: All are per-chunk and recoverable; callers log and drop
package pcm

import "errors"

var (
	// ErrEmptyChunk reports a zero-length chunk.
	ErrEmptyChunk = errors.New("empty chunk")

	// ErrTruncatedFrame reports a chunk whose byte length is not a
	// multiple of the source sample width.
	ErrTruncatedFrame = errors.New("chunk length is not a multiple of the sample width")

	// ErrIncompatibleFormat reports a source/destination descriptor pair
	// the converter does not support.
	ErrIncompatibleFormat = errors.New("incompatible source and destination formats")
)
