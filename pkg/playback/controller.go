// ABOUTME: Public playback controller for streamed base64 PCM chunks
// ABOUTME: Decodes, converts, schedules playback and forwards loudness levels
package playback

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/go-audio/audio"
	"github.com/google/uuid"
	"github.com/voicewire/voicewire-go/internal/meter"
	"github.com/voicewire/voicewire-go/internal/pcm"
	"github.com/voicewire/voicewire-go/internal/player"
)

// levelQueueDepth bounds the loudness channel; excess samples are
// dropped rather than back-pressuring the completion dispatch.
const levelQueueDepth = 16

// Config holds controller configuration.
type Config struct {
	// Path is the output audio path. It must wrap an engine resource
	// that is already constructed and running; the controller never
	// creates or restarts the device.
	Path player.Path

	// OnLevel receives one normalized loudness value in [0.08, 1.0]
	// per played buffer, in playback order. Optional; replaceable
	// later via SetLevelObserver.
	OnLevel func(level float64)

	// SessionID tags log lines for this playback session. Generated
	// when empty.
	SessionID string
}

// Controller is the public entry point of the playback pipeline. Play
// and Interrupt may be called from any goroutine; internal state is
// serialized without ever blocking the device rendering path.
type Controller struct {
	sessionID string
	conv      *pcm.Converter
	sched     *player.Scheduler

	mu       sync.Mutex
	observer func(float64)
	closed   bool

	levels chan float64
	wg     sync.WaitGroup
}

// New creates a controller for one audio session. Converter or format
// construction failure is fatal; per-chunk failures later are not.
func New(cfg Config) (*Controller, error) {
	if cfg.Path == nil {
		return nil, errors.New("output path is required")
	}

	conv, err := pcm.NewConverter(pcm.Wire(), pcm.Playable())
	if err != nil {
		return nil, fmt.Errorf("failed to construct converter: %w", err)
	}

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	c := &Controller{
		sessionID: sessionID,
		conv:      conv,
		sched:     player.NewScheduler(cfg.Path),
		observer:  cfg.OnLevel,
		levels:    make(chan float64, levelQueueDepth),
	}

	c.wg.Add(1)
	go c.forwardLevels()

	return c, nil
}

// Play decodes one base64 PCM chunk and schedules it. Errors are
// logged, never returned; a bad chunk is dropped without disturbing
// buffers already scheduled.
func (c *Controller) Play(b64 string) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		log.Printf("[%s] dropping chunk: base64 decode failed: %v", c.sessionID, err)
		return
	}

	buf, err := c.conv.Convert(pcm.NewChunk(data))
	if err != nil {
		log.Printf("[%s] dropping chunk: %v", c.sessionID, err)
		return
	}

	c.sched.Enqueue(buf, c.onPlayed)
}

// Interrupt stops playback immediately and discards anything queued.
// Safe to call at any time, including on an idle controller.
func (c *Controller) Interrupt() {
	c.sched.Interrupt()
}

// SetLevelObserver registers or replaces the loudness observer. At most
// one observer is held; the last writer wins.
func (c *Controller) SetLevelObserver(fn func(level float64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// State reports whether the controller is currently driving playback.
func (c *Controller) State() player.State {
	return c.sched.State()
}

// Stats returns scheduler counters for this session.
func (c *Controller) Stats() player.Stats {
	return c.sched.Stats()
}

// SessionID returns the identifier tagging this session's log lines.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Close tears the session down: playback stops, queued buffers are
// discarded and the level dispatch goroutine exits. The output path is
// left to its owner.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.sched.Close()
	close(c.levels)
	c.wg.Wait()
}

// onPlayed runs on the scheduler's completion dispatch goroutine with
// the exact buffer that just finished rendering, preserving temporal
// correlation between audible output and the reported level.
func (c *Controller) onPlayed(buf *audio.Float32Buffer) {
	level := meter.BufferLevel(buf)
	select {
	case c.levels <- level:
	default:
		// Observer is behind; levels are transient, drop this one.
	}
}

func (c *Controller) forwardLevels() {
	defer c.wg.Done()

	for level := range c.levels {
		c.mu.Lock()
		observer := c.observer
		c.mu.Unlock()

		if observer != nil {
			observer(level)
		}
	}
}
