package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestPublishWithoutClients(t *testing.T) {
	h := NewHub()
	// must be a no-op, not a panic
	h.Publish("reward_granted", map[string]any{"user_id": "u1"})
	if h.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", h.ClientCount())
	}
}

func TestEventDelivery(t *testing.T) {
	h := NewHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		h.Serve(conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// wait for registration
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.Publish("exchange", map[string]any{"user_id": "u1", "tokens": float64(5)})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("bad event json: %v", err)
	}
	if ev.Type != "exchange" {
		t.Fatalf("event type = %s; want exchange", ev.Type)
	}
	payload, ok := ev.Payload.(map[string]any)
	if !ok || payload["tokens"] != float64(5) {
		t.Fatalf("unexpected payload: %v", ev.Payload)
	}
}
