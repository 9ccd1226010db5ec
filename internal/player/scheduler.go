// ABOUTME: FIFO playback scheduler owning the output audio path
// ABOUTME: Serializes buffer playback and dispatches ordered completions
package player

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/go-audio/audio"
)

// State describes scheduler playback state.
type State int

const (
	StateIdle State = iota
	StatePlaying
)

// Stats tracks scheduler counters.
type Stats struct {
	Received int64
	Played   int64
	Dropped  int64
}

type entry struct {
	buf        *audio.Float32Buffer
	onComplete func(*audio.Float32Buffer)
}

// Scheduler accepts converted buffers and plays them back-to-back in
// enqueue order through its Path. Completion callbacks fire exactly
// once per fully played buffer, in FIFO order, on a dispatch goroutine
// separate from the render loop.
type Scheduler struct {
	path Path

	mu    sync.Mutex
	queue []entry
	state State
	stats Stats

	wake        chan struct{}
	completions chan entry
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewScheduler creates a scheduler driving the given output path.
func NewScheduler(path Path) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		path:        path,
		wake:        make(chan struct{}, 1),
		completions: make(chan entry, 16),
		ctx:         ctx,
		cancel:      cancel,
	}

	s.wg.Add(2)
	go s.run()
	go s.dispatch()

	return s
}

// Enqueue appends a buffer for playback. When the output path is not
// running the buffer is dropped without error; an inactive device is
// an expected transient state, not a failure.
func (s *Scheduler) Enqueue(buf *audio.Float32Buffer, onComplete func(*audio.Float32Buffer)) {
	if buf == nil || len(buf.Data) == 0 {
		return
	}
	if !s.path.Running() {
		s.mu.Lock()
		s.stats.Dropped++
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, entry{buf: buf, onComplete: onComplete})
	s.stats.Received++
	s.state = StatePlaying
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Interrupt stops output immediately, discarding queued buffers and the
// one being rendered. Completions already dispatched are not revoked.
// The scheduler stays usable; a later Enqueue resumes playback.
func (s *Scheduler) Interrupt() {
	s.mu.Lock()
	dropped := len(s.queue)
	s.queue = nil
	s.stats.Dropped += int64(dropped)
	s.state = StateIdle
	s.mu.Unlock()

	s.path.Halt()

	if dropped > 0 {
		log.Printf("playback interrupted, discarded %d queued buffers", dropped)
	}
}

// State returns the current playback state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stats returns a snapshot of scheduler counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Close stops the scheduler goroutines. The output path is left to its
// owner to close.
func (s *Scheduler) Close() {
	s.Interrupt()
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	defer close(s.completions)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			e := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()

			err := s.path.Render(e.buf.Data)
			switch {
			case err == nil:
				s.mu.Lock()
				s.stats.Played++
				s.mu.Unlock()

				select {
				case s.completions <- e:
				case <-s.ctx.Done():
					return
				}
			case errors.Is(err, ErrRenderHalted):
				s.mu.Lock()
				s.stats.Dropped++
				s.mu.Unlock()
			default:
				s.mu.Lock()
				s.stats.Dropped++
				s.mu.Unlock()
				log.Printf("render failed, dropping buffer: %v", err)
			}
		}
	}
}

func (s *Scheduler) dispatch() {
	defer s.wg.Done()

	for e := range s.completions {
		if e.onComplete != nil {
			e.onComplete(e.buf)
		}
	}
}
