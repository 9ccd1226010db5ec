// ABOUTME: Tests for the FIFO playback scheduler
// ABOUTME: Covers completion ordering, inactive-device drops and interrupt
package player_test

import (
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/voicewire/voicewire-go/internal/player"
	"github.com/voicewire/voicewire-go/internal/playertest"
)

func floatBuffer(value float32, frames int) *audio.Float32Buffer {
	data := make([]float32, frames)
	for i := range data {
		data[i] = value
	}
	return &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 24000},
		Data:   data,
	}
}

func collect(t *testing.T, ch <-chan float32, n int) []float32 {
	t.Helper()
	got := make([]float32, 0, n)
	for i := 0; i < n; i++ {
		select {
		case v := <-ch:
			got = append(got, v)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for completion %d of %d", i+1, n)
		}
	}
	return got
}

func TestEnqueueCompletesInOrder(t *testing.T) {
	path := playertest.NewFakePath()
	s := player.NewScheduler(path)
	defer s.Close()

	done := make(chan float32, 8)
	for i := 1; i <= 5; i++ {
		s.Enqueue(floatBuffer(float32(i)/10, 240), func(buf *audio.Float32Buffer) {
			done <- buf.Data[0]
		})
	}

	got := collect(t, done, 5)
	for i, v := range got {
		want := float32(i+1) / 10
		if v != want {
			t.Errorf("completion %d: expected buffer %f, got %f", i, want, v)
		}
	}

	stats := s.Stats()
	if stats.Received != 5 || stats.Played != 5 || stats.Dropped != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestEnqueueOnStoppedPathIsSilentDrop(t *testing.T) {
	path := playertest.NewFakePath()
	path.SetRunning(false)
	s := player.NewScheduler(path)
	defer s.Close()

	done := make(chan float32, 1)
	s.Enqueue(floatBuffer(0.5, 240), func(buf *audio.Float32Buffer) {
		done <- buf.Data[0]
	})

	select {
	case <-done:
		t.Fatal("completion fired for a buffer enqueued on a stopped path")
	case <-time.After(100 * time.Millisecond):
	}

	if len(path.Rendered()) != 0 {
		t.Error("buffer reached the device while stopped")
	}
	if s.State() != player.StateIdle {
		t.Error("expected scheduler to stay idle")
	}
}

func TestInterruptWithEmptyQueueIsNoOp(t *testing.T) {
	path := playertest.NewFakePath()
	s := player.NewScheduler(path)
	defer s.Close()

	s.Interrupt()
	s.Interrupt()

	if got := s.Stats(); got.Dropped != 0 {
		t.Errorf("expected no drops, got %+v", got)
	}
	if s.State() != player.StateIdle {
		t.Error("expected idle state after interrupt")
	}
}

func TestInterruptDiscardsQueuedBuffers(t *testing.T) {
	path := playertest.NewFakePath()
	path.SetBlocking(true)
	s := player.NewScheduler(path)
	defer s.Close()

	done := make(chan float32, 8)
	onComplete := func(buf *audio.Float32Buffer) { done <- buf.Data[0] }

	for i := 1; i <= 3; i++ {
		s.Enqueue(floatBuffer(float32(i)/10, 240), onComplete)
	}

	// Let the first buffer start rendering, then cut playback.
	time.Sleep(50 * time.Millisecond)
	s.Interrupt()

	select {
	case v := <-done:
		t.Fatalf("completion fired after interrupt: %f", v)
	case <-time.After(100 * time.Millisecond):
	}

	if s.State() != player.StateIdle {
		t.Error("expected idle state after interrupt")
	}

	// The scheduler must remain usable after an interrupt.
	path.SetBlocking(false)
	s.Enqueue(floatBuffer(0.9, 240), onComplete)

	got := collect(t, done, 1)
	if got[0] != 0.9 {
		t.Errorf("expected post-interrupt buffer 0.9, got %f", got[0])
	}
	if s.State() != player.StatePlaying {
		t.Error("expected playing state after re-enqueue")
	}
}

func TestEnqueueNilBufferIsIgnored(t *testing.T) {
	path := playertest.NewFakePath()
	s := player.NewScheduler(path)
	defer s.Close()

	s.Enqueue(nil, nil)
	s.Enqueue(&audio.Float32Buffer{}, nil)

	if got := s.Stats(); got.Received != 0 {
		t.Errorf("expected nothing received, got %+v", got)
	}
}
