package stream

import (
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
)

func TestWebsocketDelivery(t *testing.T) {
	hub := NewHub(nil)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app.Group("/stream"), hub)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	defer func() { _ = app.Shutdown() }()

	url := "ws://" + ln.Addr().String() + "/stream/ws/alice_01"

	var conn *websocket.Conn
	for i := 0; i < 50; i++ {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The subscription is registered by the connection handler; give it
	// a moment before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		registered := len(hub.subscribers["alice_01"]) > 0
		hub.mu.RUnlock()
		if registered {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast("alice_01", []byte(`{"postId":"post-1"}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"postId":"post-1"}` {
		t.Fatalf("unexpected message: %s", msg)
	}
}
