package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleWebSocket(w, r, r.URL.Query().Get("export_id"))
	}))
	t.Cleanup(server.Close)

	return hub, server
}

func dial(t *testing.T, server *httptest.Server, topic string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + server.URL[4:] + "?export_id=" + topic
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, "job-1")

	time.Sleep(100 * time.Millisecond)

	if n := hub.Subscribers("job-1"); n != 1 {
		t.Fatalf("Expected 1 connection, got %d", n)
	}

	conn.Close()
	time.Sleep(100 * time.Millisecond)

	hub.mu.RLock()
	_, exists := hub.connections["job-1"]
	hub.mu.RUnlock()

	if exists {
		t.Fatal("Connection should be unregistered")
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, "job-1")

	time.Sleep(100 * time.Millisecond)

	hub.Broadcast("job-1", &Message{
		Type:    "test",
		Channel: "test_channel",
		Data:    map[string]any{"test": "data"},
	})

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var received Message
	if err := conn.ReadJSON(&received); err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}

	if received.Type != "test" {
		t.Errorf("Expected type 'test', got '%s'", received.Type)
	}
	if received.Channel != "test_channel" {
		t.Errorf("Expected channel 'test_channel', got '%s'", received.Channel)
	}
	if received.Topic != "job-1" {
		t.Errorf("Expected topic 'job-1', got '%s'", received.Topic)
	}
}

func TestHub_MultipleConnections(t *testing.T) {
	hub, server := startHub(t)

	var conns []*websocket.Conn
	for i := 0; i < 3; i++ {
		conns = append(conns, dial(t, server, "job-1"))
	}

	time.Sleep(100 * time.Millisecond)

	if n := hub.Subscribers("job-1"); n != 3 {
		t.Fatalf("Expected 3 connections, got %d", n)
	}

	hub.Broadcast("job-1", &Message{Type: "broadcast", Data: map[string]any{"test": "data"}})

	var wg sync.WaitGroup
	for i, conn := range conns {
		wg.Add(1)
		go func(idx int, c *websocket.Conn) {
			defer wg.Done()
			c.SetReadDeadline(time.Now().Add(1 * time.Second))
			var received Message
			if err := c.ReadJSON(&received); err != nil {
				t.Errorf("Connection %d failed to read message: %v", idx, err)
				return
			}
			if received.Type != "broadcast" {
				t.Errorf("Connection %d: Expected type 'broadcast', got '%s'", idx, received.Type)
			}
		}(i, conn)
	}

	wg.Wait()
}

func TestHub_DifferentTopics(t *testing.T) {
	hub, server := startHub(t)
	conn1 := dial(t, server, "job-1")
	conn2 := dial(t, server, "job-2")

	time.Sleep(100 * time.Millisecond)

	hub.Broadcast("job-1", &Message{Type: "private", Data: map[string]any{"test": "data"}})

	conn1.SetReadDeadline(time.Now().Add(1 * time.Second))
	var received1 Message
	if err := conn1.ReadJSON(&received1); err != nil {
		t.Fatalf("job-1 subscriber failed to read message: %v", err)
	}
	if received1.Type != "private" {
		t.Errorf("Expected type 'private', got '%s'", received1.Type)
	}

	conn2.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var received2 Message
	if err := conn2.ReadJSON(&received2); err == nil {
		t.Error("job-2 subscriber should not receive messages for job-1")
	}
}

func TestHub_BroadcastChannelFull(t *testing.T) {
	hub := NewHub()
	hub.broadcast = make(chan *Message, 1)

	hub.Broadcast("job-1", &Message{Type: "fill"})
	hub.Broadcast("job-1", &Message{Type: "dropped"})

	if n := len(hub.broadcast); n != 1 {
		t.Fatalf("Expected 1 queued message, got %d", n)
	}
	if msg := <-hub.broadcast; msg.Type != "fill" {
		t.Errorf("Expected the first message to stay queued, got '%s'", msg.Type)
	}
}

func TestHub_ShutdownClosesConnections(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleWebSocket(w, r, "job-1")
	}))
	defer server.Close()

	conn := dial(t, server, "job-1")
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(100 * time.Millisecond)

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("Expected connection to be closed after hub shutdown")
	}
}
