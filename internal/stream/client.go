// ABOUTME: WebSocket client for the voice stream collaborator
// ABOUTME: Yields base64 PCM chunks and interrupt signals in arrival order
package stream

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Config holds stream client configuration.
type Config struct {
	// ServerAddr is the stream server address (host:port).
	ServerAddr string

	// ClientID identifies this session in the handshake. Generated
	// when empty.
	ClientID string
}

// frame is the JSON wire frame exchanged with the stream server.
type frame struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id,omitempty"`
	Audio    string `json:"audio,omitempty"`
}

// Client receives base64 PCM chunks over a WebSocket connection. The
// chunks arrive in the order they must be played; the client does no
// reordering. It is a reference integration for feeding the playback
// controller and lives outside the pipeline itself.
type Client struct {
	config Config
	conn   *websocket.Conn

	// Chunks yields base64 audio payloads; closed when the stream ends.
	Chunks chan string

	// Interrupts signals server-initiated playback interrupts.
	Interrupts chan struct{}

	mu        sync.Mutex
	connected bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a stream client.
func NewClient(config Config) *Client {
	if config.ClientID == "" {
		config.ClientID = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		config:     config,
		Chunks:     make(chan string, 100),
		Interrupts: make(chan struct{}, 1),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Connect dials the server, performs the handshake and starts the read
// loop.
func (c *Client) Connect() error {
	u := url.URL{Scheme: "ws", Host: c.config.ServerAddr, Path: "/stream"}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", u.String(), err)
	}

	hello := frame{Type: "hello", ClientID: c.config.ClientID}
	if err := conn.WriteJSON(hello); err != nil {
		conn.Close()
		return fmt.Errorf("handshake failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	log.Printf("connected to stream server %s as %s", c.config.ServerAddr, c.config.ClientID)

	go c.readLoop()

	return nil
}

// Connected reports whether the client holds a live connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close tears down the connection and stops the read loop.
func (c *Client) Close() {
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.connected = false
	}
}

func (c *Client) readLoop() {
	defer close(c.Chunks)

	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			select {
			case <-c.ctx.Done():
			default:
				log.Printf("stream read failed: %v", err)
			}
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			return
		}

		switch f.Type {
		case "audio":
			select {
			case c.Chunks <- f.Audio:
			case <-c.ctx.Done():
				return
			}
		case "interrupt":
			select {
			case c.Interrupts <- struct{}{}:
			default:
			}
		default:
			log.Printf("ignoring unknown frame type %q", f.Type)
		}
	}
}
