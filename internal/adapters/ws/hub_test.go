package ws_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mobivas/vas-platform/internal/adapters/ws"
	"github.com/mobivas/vas-platform/internal/domain"
)

type frame struct {
	Type          string    `json:"type"`
	User          string    `json:"user"`
	Subscriptions *[]string `json:"subscriptions"`
}

func startHub(t *testing.T) (*ws.Hub, *httptest.Server) {
	t.Helper()

	hub := ws.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		hub.Close()
	})

	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func register(t *testing.T, conn *websocket.Conn, msisdn string) {
	t.Helper()

	msg := map[string]string{"type": "register-user", "msisdn": msisdn}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("register %s: %v", msisdn, err)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("decode frame %s: %v", raw, err)
	}
	return f
}

// awaitType reads frames until one of the wanted type arrives, skipping
// presence frames that interleave depending on registration timing.
func awaitType(t *testing.T, conn *websocket.Conn, wantType string) frame {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f := readFrame(t, conn)
		if f.Type == wantType {
			return f
		}
	}
	t.Fatalf("no %s frame before deadline", wantType)
	return frame{}
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, raw, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected no frame, got %s", raw)
	}
}

func TestRegisterNotifiesOtherObservers(t *testing.T) {
	t.Parallel()

	_, server := startHub(t)
	newcomer := dial(t, server)

	// An unidentified connection still observes presence events, so this
	// read doubles as a sync point: the observer is registered before the
	// newcomer is.
	observer := dial(t, server)
	register(t, observer, "27820001111")
	if f := readFrame(t, newcomer); f.Type != "user-connected" || f.User != "27820001111" {
		t.Fatalf("unexpected frame: %+v", f)
	}

	register(t, newcomer, "27820002222")

	f := readFrame(t, observer)
	if f.Type != "user-connected" || f.User != "27820002222" {
		t.Fatalf("unexpected frame: %+v", f)
	}
	if f.Subscriptions != nil {
		t.Fatalf("presence frames must not carry subscriptions: %+v", f)
	}

	// The registering connection never sees its own presence event.
	expectSilence(t, newcomer)
}

func TestSubscriptionUpdateReachesEveryConnection(t *testing.T) {
	t.Parallel()

	hub, server := startHub(t)
	a := dial(t, server)
	register(t, a, "27820001111")
	b := dial(t, server)
	register(t, b, "27820002222")
	awaitType(t, a, "user-connected") // b is in the client map

	hub.Broadcast(domain.SubscriptionChanged("27820001111", []string{"1", "3"}))

	for _, conn := range []*websocket.Conn{a, b} {
		f := awaitType(t, conn, "subscription-update")
		if f.User != "27820001111" {
			t.Fatalf("unexpected frame: %+v", f)
		}
		if f.Subscriptions == nil || len(*f.Subscriptions) != 2 {
			t.Fatalf("delta must carry the full set: %+v", f)
		}
	}
}

func TestEmptyDeltaStillCarriesSubscriptions(t *testing.T) {
	t.Parallel()

	hub, server := startHub(t)
	a := dial(t, server)
	register(t, a, "27820001111")

	hub.Broadcast(domain.SubscriptionChanged("27820002222", nil))

	_ = a.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := a.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if !strings.Contains(string(raw), `"subscriptions":[]`) {
		t.Fatalf("empty delta must encode an empty array, got %s", raw)
	}
}

func TestDisconnectNotifiesRemainingObservers(t *testing.T) {
	t.Parallel()

	_, server := startHub(t)
	observer := dial(t, server)
	register(t, observer, "27820001111")

	leaver := dial(t, server)
	register(t, leaver, "27820002222")
	awaitType(t, observer, "user-connected")

	if err := leaver.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f := awaitType(t, observer, "user-disconnected")
	if f.User != "27820002222" {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestUnregisteredDisconnectIsSilent(t *testing.T) {
	t.Parallel()

	_, server := startHub(t)
	observer := dial(t, server)
	register(t, observer, "27820001111")

	anonymous := dial(t, server)
	if err := anonymous.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	expectSilence(t, observer)
}

func TestMalformedFramesAreIgnored(t *testing.T) {
	t.Parallel()

	_, server := startHub(t)
	observer := dial(t, server)
	register(t, observer, "27820001111")

	noisy := dial(t, server)
	if err := noisy.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := noisy.WriteJSON(map[string]string{"type": "shrug"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := noisy.WriteJSON(map[string]string{"type": "register-user", "msisdn": "abc"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// The connection survives the garbage and can still register. Frames
	// reach an observer in hub order, so the first frame being this
	// registration proves the garbage produced nothing.
	register(t, noisy, "27820002222")
	f := readFrame(t, observer)
	if f.Type != "user-connected" || f.User != "27820002222" {
		t.Fatalf("unexpected frame: %+v", f)
	}
}
