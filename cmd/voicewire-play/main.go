// ABOUTME: Entry point for the VoiceWire playback demo
// ABOUTME: Plays base64 PCM chunks from stdin or a WebSocket stream
package main

import (
	"bufio"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ebitengine/oto/v3"
	"github.com/google/uuid"

	"github.com/voicewire/voicewire-go/internal/pcm"
	"github.com/voicewire/voicewire-go/internal/player"
	"github.com/voicewire/voicewire-go/internal/stream"
	"github.com/voicewire/voicewire-go/internal/ui"
	"github.com/voicewire/voicewire-go/internal/version"
	"github.com/voicewire/voicewire-go/pkg/playback"
)

var cli struct {
	Server  string `help:"WebSocket stream address (host:port). Reads base64 lines from stdin when empty."`
	NoTUI   bool   `help:"Disable the level meter TUI and stream logs to stdout." name:"no-tui"`
	LogFile string `help:"Log file path." default:"voicewire-play.log"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("voicewire-play"),
		kong.Description("Streamed PCM playback with live loudness metering."))

	f, err := os.OpenFile(cli.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if cli.NoTUI {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	} else {
		log.SetOutput(f)
	}

	log.Printf("%s %s starting", version.Product, version.Version)

	// The playback engine must exist before any capture component is
	// initialized; see the playback package docs for the ordering
	// constraint.
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   pcm.SampleRate,
		ChannelCount: pcm.Channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		log.Fatalf("failed to create audio context: %v", err)
	}
	<-ready

	path, err := player.NewOtoPath(otoCtx, pcm.Playable())
	if err != nil {
		log.Fatalf("failed to create output path: %v", err)
	}
	defer func() { _ = path.Close() }()

	sessionID := uuid.NewString()

	ctrl, err := playback.New(playback.Config{Path: path, SessionID: sessionID})
	if err != nil {
		log.Fatalf("failed to create playback controller: %v", err)
	}
	defer ctrl.Close()

	var prog *tea.Program
	if cli.NoTUI {
		ctrl.SetLevelObserver(func(level float64) {
			log.Printf("level %.2f", level)
		})
	} else {
		prog = ui.Run(sessionID)
		ctrl.SetLevelObserver(func(level float64) {
			prog.Send(ui.LevelMsg(level))
		})
		go pollStats(ctrl, prog)
	}

	go feed(ctrl)

	if prog != nil {
		if _, err := prog.Run(); err != nil {
			log.Fatalf("TUI error: %v", err)
		}
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Printf("shutting down")
}

// pollStats forwards scheduler counters to the TUI.
func pollStats(ctrl *playback.Controller, prog *tea.Program) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		stats := ctrl.Stats()
		prog.Send(ui.StatsMsg{
			Received: stats.Received,
			Played:   stats.Played,
			Dropped:  stats.Dropped,
		})
	}
}

// feed pushes chunks into the controller from the selected source.
func feed(ctrl *playback.Controller) {
	if cli.Server != "" {
		client := stream.NewClient(stream.Config{ServerAddr: cli.Server})
		if err := client.Connect(); err != nil {
			log.Printf("stream connection failed: %v", err)
			return
		}
		defer client.Close()

		for {
			select {
			case b64, ok := <-client.Chunks:
				if !ok {
					log.Printf("stream ended")
					return
				}
				ctrl.Play(b64)
			case <-client.Interrupts:
				ctrl.Interrupt()
			}
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ctrl.Play(line)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("stdin read failed: %v", err)
	}
}
