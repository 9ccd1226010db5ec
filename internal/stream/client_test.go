// ABOUTME: Tests for the stream client
// ABOUTME: Covers handshake, chunk delivery and interrupt signaling
package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestNewClient(t *testing.T) {
	client := NewClient(Config{ServerAddr: "localhost:8927", ClientID: "test-client"})

	if client == nil {
		t.Fatal("expected client to be created")
	}
	if client.config.ClientID != "test-client" {
		t.Errorf("expected client id test-client, got %s", client.config.ClientID)
	}
	if client.Connected() {
		t.Error("expected client to start disconnected")
	}
}

func TestNewClientGeneratesID(t *testing.T) {
	client := NewClient(Config{ServerAddr: "localhost:8927"})

	if client.config.ClientID == "" {
		t.Error("expected generated client id")
	}
}

// testServer upgrades one connection, checks the hello frame and sends
// the given frames.
func testServer(t *testing.T, frames []frame) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var hello frame
		if err := conn.ReadJSON(&hello); err != nil {
			t.Errorf("failed to read hello: %v", err)
			return
		}
		if hello.Type != "hello" || hello.ClientID == "" {
			t.Errorf("unexpected hello frame: %+v", hello)
		}

		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				return
			}
		}

		// Keep the connection open until the client goes away.
		conn.ReadJSON(&frame{})
	}))
}

func connectTo(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	addr := strings.TrimPrefix(srv.URL, "http://")

	client := NewClient(Config{ServerAddr: addr, ClientID: "test-client"})
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestChunksDeliveredInOrder(t *testing.T) {
	srv := testServer(t, []frame{
		{Type: "audio", Audio: "AAAB"},
		{Type: "audio", Audio: "AAAC"},
		{Type: "audio", Audio: "AAAD"},
	})
	defer srv.Close()

	client := connectTo(t, srv)

	want := []string{"AAAB", "AAAC", "AAAD"}
	for i, w := range want {
		select {
		case got := <-client.Chunks:
			if got != w {
				t.Errorf("chunk %d: expected %s, got %s", i, w, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for chunk %d", i)
		}
	}
}

func TestInterruptSignaled(t *testing.T) {
	srv := testServer(t, []frame{
		{Type: "interrupt"},
	})
	defer srv.Close()

	client := connectTo(t, srv)

	select {
	case <-client.Interrupts:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for interrupt")
	}
}

func TestUnknownFramesIgnored(t *testing.T) {
	srv := testServer(t, []frame{
		{Type: "metadata"},
		{Type: "audio", Audio: "AAAB"},
	})
	defer srv.Close()

	client := connectTo(t, srv)

	select {
	case got := <-client.Chunks:
		if got != "AAAB" {
			t.Errorf("expected AAAB after unknown frame, got %s", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chunk")
	}
}

func TestConnectFailure(t *testing.T) {
	client := NewClient(Config{ServerAddr: "127.0.0.1:1", ClientID: "test-client"})

	if err := client.Connect(); err == nil {
		t.Error("expected connect to fail")
	}
}
