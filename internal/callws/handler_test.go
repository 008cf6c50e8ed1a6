package callws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "nhooyr.io/websocket"

	"confido/agent/internal/store"
	"confido/agent/internal/types"
)

func newFeedFixture(t *testing.T) (*store.Store, *Registry, *httptest.Server) {
	t.Helper()
	st := store.New()
	_ = st.CreateSession(&types.Session{ID: "s1", CreatedAt: time.Now().UTC(), Status: "created"})
	reg := NewRegistry()
	s := NewServer(st, reg)
	srv := httptest.NewServer(http.HandlerFunc(s.HandleFeedWS))
	t.Cleanup(srv.Close)
	return st, reg, srv
}

func dialFeed(t *testing.T, ctx context.Context, srv *httptest.Server, sessionID string) *ws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?session_id=" + sessionID
	c, _, err := ws.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return c
}

func readEvent(t *testing.T, ctx context.Context, c *ws.Conn) types.Event {
	t.Helper()
	_, data, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var evt types.Event
	if err := json.Unmarshal(data, &evt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return evt
}

// The replay carries exactly the events stored before the connection; the
// feed bookkeeping appended during the handshake and anything pushed live
// afterwards must not be replayed a second time.
func TestFeedReplaysEachEventOnce(t *testing.T) {
	st, reg, srv := newFeedFixture(t)
	st.AppendEvent("s1", "utterance", map[string]any{"text": "hi"})
	st.AppendEvent("s1", "reply", map[string]any{"text": "hello"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := dialFeed(t, ctx, srv, "s1")
	defer c.Close(ws.StatusNormalClosure, "")

	if evt := readEvent(t, ctx, c); evt.Type != "utterance" {
		t.Fatalf("replay[0] = %q, want utterance", evt.Type)
	}
	if evt := readEvent(t, ctx, c); evt.Type != "reply" {
		t.Fatalf("replay[1] = %q, want reply", evt.Type)
	}

	if err := reg.Push(ctx, "s1", types.Event{Type: "live", Ts: time.Now().UTC()}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if evt := readEvent(t, ctx, c); evt.Type != "live" {
		t.Fatalf("after replay = %q, want the single live push", evt.Type)
	}
}

func TestFeedRejectsUnknownSession(t *testing.T) {
	_, _, srv := newFeedFixture(t)

	resp, err := http.Get(srv.URL + "/?session_id=nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
