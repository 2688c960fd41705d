package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bestball/drafttrack/go/internal/events"
)

func waitForSubscribers(t *testing.T, b *Broadcaster, draftID string) {
	t.Helper()
	for i := 0; i < 100; i++ {
		b.mu.RLock()
		n := len(b.connections[draftID])
		b.mu.RUnlock()
		if n > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("client never registered")
}

func TestBroadcastToSubscribedClient(t *testing.T) {
	b := NewBroadcaster(DefaultConfig())
	srv := httptest.NewServer(http.HandlerFunc(b.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?draftId=d1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	waitForSubscribers(t, b, "d1")

	err = b.Publish(context.Background(), events.DraftEvent{
		Type:         events.EventPickRecorded,
		DraftID:      "d1",
		AppearanceID: "p1",
		PickNumber:   5,
	})
	if err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(msg), `"p1"`) {
		t.Errorf("broadcast message = %s, want pick event for p1", msg)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	b := NewBroadcaster(DefaultConfig())

	err := b.Publish(context.Background(), events.DraftEvent{
		Type:    events.EventPickRecorded,
		DraftID: "nobody-watching",
	})
	if err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
}

func TestHandleWSRequiresDraftID(t *testing.T) {
	b := NewBroadcaster(DefaultConfig())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/live", nil)

	b.HandleWS(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
