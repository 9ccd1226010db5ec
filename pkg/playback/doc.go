// ABOUTME: Package documentation for the playback facade
// ABOUTME: Notes integration constraints for embedders
//
// Package playback plays streamed base64-encoded PCM audio chunks
// (mono, 16-bit little-endian, 24 kHz) through an output audio path
// and reports a normalized loudness level per played buffer.
//
// The controller expects an already-constructed output path; with the
// oto implementation that means the embedder creates the oto context
// and hands it to player.NewOtoPath before the first chunk arrives.
//
// Integration note: construct the playback path before initializing
// any microphone-capture component. Some platforms attenuate output
// volume when capture opens the shared device first; ordering playback
// initialization first avoids it. This is an environmental constraint,
// not something the controller enforces.
package playback
