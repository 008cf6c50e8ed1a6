// Package callws streams each session's dialogue events to an observing
// UI over a websocket.
package callws

import (
	"encoding/json"
	"log"
	"net/http"

	ws "nhooyr.io/websocket"

	"confido/agent/internal/store"
)

type Server struct {
	Store *store.Store
	Reg   *Registry
}

func NewServer(st *store.Store, reg *Registry) *Server {
	return &Server{Store: st, Reg: reg}
}

// HandleFeedWS accepts a feed connection, replays the session's events so
// far, and then holds the socket open for server pushes until the client
// departs.
func (s *Server) HandleFeedWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}
	if s.Store.GetSession(sessionID) == nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	c, err := ws.Accept(w, r, nil)
	if err != nil {
		log.Printf("ws accept: %v", err)
		return
	}
	// Snapshot before registering: an event appended after this point
	// reaches the client through the live push, never the replay.
	snapshot := s.Store.ListEvents(sessionID)
	if s.Reg.Replace(sessionID, c) {
		s.Store.AppendEvent(sessionID, "feed_replaced", nil)
	}
	s.Store.AppendEvent(sessionID, "feed_connected", nil)

	ctx := r.Context()
	for _, evt := range snapshot {
		b, err := json.Marshal(evt)
		if err != nil {
			continue
		}
		if err := c.Write(ctx, ws.MessageText, b); err != nil {
			break
		}
	}

	// The feed is push-only; reads exist to notice the client leaving.
	for {
		if _, _, err := c.Read(ctx); err != nil {
			break
		}
	}
	_ = c.Close(ws.StatusNormalClosure, "done")
	s.Reg.Remove(sessionID)
	s.Store.AppendEvent(sessionID, "feed_disconnected", nil)
}
