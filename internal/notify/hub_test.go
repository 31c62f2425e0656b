package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestClient connects one websocket client to a running hub and returns
// the operator-side connection.
func dialTestClient(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade error: %v", err)
			return
		}
		client := NewClient(hub, conn, zap.NewNop())
		hub.Register <- client
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.TotalClients() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("TotalClients() = %d, want %d", hub.TotalClients(), want)
}

// Requirement: a published notification reaches connected clients as JSON
// with an id, level, message and timestamp.
func TestHub_PublishReachesClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialTestClient(t, hub)
	waitForClients(t, hub, 1)

	hub.Success("Welcome back, Mary A!")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var n Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		t.Fatalf("notification decode error = %v", err)
	}
	if n.Level != LevelSuccess {
		t.Errorf("notification level = %q, want %q", n.Level, LevelSuccess)
	}
	if n.Message != "Welcome back, Mary A!" {
		t.Errorf("notification message = %q", n.Message)
	}
	if n.ID == "" {
		t.Error("notification should carry an id")
	}
	if n.Timestamp.IsZero() {
		t.Error("notification should carry a timestamp")
	}
}

// Requirement: publishing with no connected clients neither blocks nor
// panics; a full queue drops rather than stalling the caller.
func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(zap.NewNop())
	// Run loop intentionally not started: the queue can only fill.

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.Error("backend unreachable")
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish() blocked on a full queue")
	}
}

// Requirement: a disconnecting client is unregistered; shutdown closes the
// remaining clients.
func TestHub_ClientLifecycle(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := dialTestClient(t, hub)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	dialTestClient(t, hub)
	waitForClients(t, hub, 1)

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && hub.TotalClients() != 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.TotalClients() != 0 {
		t.Errorf("TotalClients() after shutdown = %d, want 0", hub.TotalClients())
	}
}
