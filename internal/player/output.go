// ABOUTME: Output audio path using the oto library
// ABOUTME: Renders float32 PCM buffers to the playback device
package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/voicewire/voicewire-go/internal/pcm"
)

var (
	// ErrRenderHalted reports a render aborted by Halt before the
	// device finished the buffer.
	ErrRenderHalted = errors.New("render halted")

	// ErrPathNotRunning reports a render attempted on a closed path.
	ErrPathNotRunning = errors.New("output path is not running")
)

// Path is the output audio capability the scheduler plays through.
// Render blocks until the device has consumed the frames; Halt aborts
// an in-flight render and may be called from any goroutine.
type Path interface {
	Running() bool
	Render(samples []float32) error
	Halt()
	Close() error
}

// renderPollInterval paces the wait for the device to drain a buffer.
const renderPollInterval = 2 * time.Millisecond

// OtoPath plays float32 PCM through an oto device context. The context
// is created and owned by the embedder; it must exist before the first
// chunk arrives and outlive the path.
type OtoPath struct {
	mu      sync.Mutex
	ctx     *oto.Context
	current *oto.Player
	halted  bool
	running bool
}

// NewOtoPath wraps an already-created oto context. The context must
// match the playable descriptor; a mismatch is a fatal construction
// error, not a retryable one.
func NewOtoPath(ctx *oto.Context, desc pcm.Descriptor) (*OtoPath, error) {
	if desc.Sample != pcm.SampleFloat32 || desc.SampleRate != pcm.SampleRate ||
		desc.Channels != pcm.Channels || !desc.Interleaved {
		return nil, fmt.Errorf("descriptor %+v is not the playable format", desc)
	}
	if ctx == nil {
		return nil, errors.New("oto context is required")
	}
	return &OtoPath{ctx: ctx, running: true}, nil
}

// Running reports whether the path accepts buffers.
func (p *OtoPath) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Render writes one buffer to the device and blocks until the device
// has consumed it. Returns ErrRenderHalted if Halt fired mid-buffer.
func (p *OtoPath) Render(samples []float32) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrPathNotRunning
	}
	p.halted = false
	player := p.ctx.NewPlayer(bytes.NewReader(encodeFloat32LE(samples)))
	p.current = player
	p.mu.Unlock()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(renderPollInterval)
	}

	p.mu.Lock()
	halted := p.halted
	p.halted = false
	cur := p.current
	p.current = nil
	p.mu.Unlock()

	if halted {
		return ErrRenderHalted
	}
	if cur != nil {
		if err := cur.Close(); err != nil {
			return fmt.Errorf("failed to close device player: %w", err)
		}
	}
	return nil
}

// Halt aborts the in-flight render, if any. Queued device-side frames
// are discarded immediately.
func (p *OtoPath) Halt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haltLocked()
}

func (p *OtoPath) haltLocked() {
	if p.current == nil {
		return
	}
	p.halted = true
	_ = p.current.Close()
	p.current = nil
}

// Close stops the path permanently and suspends the device context.
func (p *OtoPath) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return nil
	}
	p.haltLocked()
	p.running = false
	if err := p.ctx.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend audio context: %w", err)
	}
	return nil
}

// encodeFloat32LE packs samples into the little-endian byte layout oto
// expects for FormatFloat32LE.
func encodeFloat32LE(samples []float32) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return buf
}
