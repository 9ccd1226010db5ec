// ABOUTME: Fake output path for scheduler and controller tests
// ABOUTME: Implements the player.Path contract without a real device
package playertest

import (
	"sync"

	"github.com/voicewire/voicewire-go/internal/player"
)

// FakePath is an in-memory player.Path. Renders complete immediately
// unless Block is enabled, in which case Render waits until Release or
// Halt. All methods are safe for concurrent use.
type FakePath struct {
	mu       sync.Mutex
	running  bool
	rendered [][]float32
	halted   bool

	block   bool
	release chan struct{}
}

// NewFakePath returns a running fake path.
func NewFakePath() *FakePath {
	return &FakePath{running: true, release: make(chan struct{}, 1)}
}

// SetRunning toggles the simulated device state.
func (p *FakePath) SetRunning(running bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = running
}

// SetBlocking makes subsequent renders wait for Release or Halt.
func (p *FakePath) SetBlocking(block bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.block = block
}

// Release lets one blocked render finish.
func (p *FakePath) Release() {
	select {
	case p.release <- struct{}{}:
	default:
	}
}

// Rendered returns copies of the buffers rendered so far.
func (p *FakePath) Rendered() [][]float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]float32, len(p.rendered))
	copy(out, p.rendered)
	return out
}

func (p *FakePath) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *FakePath) Render(samples []float32) error {
	p.mu.Lock()
	p.halted = false
	block := p.block
	p.mu.Unlock()

	if block {
		<-p.release
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.halted {
		p.halted = false
		return player.ErrRenderHalted
	}
	buf := make([]float32, len(samples))
	copy(buf, samples)
	p.rendered = append(p.rendered, buf)
	return nil
}

func (p *FakePath) Halt() {
	p.mu.Lock()
	p.halted = true
	p.mu.Unlock()
	select {
	case p.release <- struct{}{}:
	default:
	}
}

func (p *FakePath) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	return nil
}
