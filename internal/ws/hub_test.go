package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

type staticBacklog []string

func (b staticBacklog) Lines() []string { return b }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

// startServer runs a hub behind an httptest server and returns a dial URL.
func startServer(t *testing.T, hub *Hub) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}

		client := NewClient(hub, conn)
		hub.Register(client)

		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	t.Cleanup(func() { conn.CloseNow() }) //nolint:errcheck // test teardown

	return conn
}

func readLine(t *testing.T, conn *websocket.Conn) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	typ, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if typ != websocket.MessageText {
		t.Fatalf("expected a text frame, got %v", typ)
	}

	return string(data)
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.ClientCount())
		}

		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_ReplaysBacklogThenStreams(t *testing.T) {
	hub := NewHub(testLogger(), staticBacklog{"old 1", "old 2"})
	conn := dial(t, startServer(t, hub))

	if got := readLine(t, conn); got != "old 1" {
		t.Fatalf("first line = %q", got)
	}

	if got := readLine(t, conn); got != "old 2" {
		t.Fatalf("second line = %q", got)
	}

	waitForClients(t, hub, 1)
	hub.Publish("live")

	if got := readLine(t, conn); got != "live" {
		t.Errorf("live line = %q", got)
	}
}

func TestHub_BroadcastsToAllClients(t *testing.T) {
	hub := NewHub(testLogger(), nil)
	url := startServer(t, hub)

	a := dial(t, url)
	b := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Publish("hello")

	if got := readLine(t, a); got != "hello" {
		t.Errorf("client a got %q", got)
	}

	if got := readLine(t, b); got != "hello" {
		t.Errorf("client b got %q", got)
	}
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(testLogger(), nil)
	conn := dial(t, startServer(t, hub))
	waitForClients(t, hub, 1)

	conn.Close(websocket.StatusNormalClosure, "bye") //nolint:errcheck // test

	waitForClients(t, hub, 0)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(testLogger(), nil)

	done := make(chan struct{})
	go func() {
		for range broadcastBuffer * 2 {
			hub.Publish("line")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func TestHub_ShutdownDrainsClients(t *testing.T) {
	hub := NewHub(testLogger(), nil)
	conn := dial(t, startServer(t, hub))
	waitForClients(t, hub, 1)

	go hub.Shutdown()

	if got := readLine(t, conn); got != shutdownLine {
		t.Errorf("got %q, want shutdown line", got)
	}

	waitForClients(t, hub, 0)
}

func TestHub_ShutdownWithoutClients(t *testing.T) {
	hub := NewHub(testLogger(), nil)
	go hub.Run(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not return")
	}
}
