package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"confido/agent/internal/callws"
	"confido/agent/internal/config"
	"confido/agent/internal/dialog"
	"confido/agent/internal/health"
	"confido/agent/internal/intent"
	"confido/agent/internal/ledger"
	"confido/agent/internal/store"
	"confido/agent/internal/types"
)

type Handlers struct {
	cfg        config.Config
	store      *store.Store
	ledger     *ledger.Ledger
	reconciler *dialog.Reconciler
	classifier intent.Classifier
	feed       *callws.Registry
}

func NewHandlers(cfg config.Config, st *store.Store, l *ledger.Ledger, rec *dialog.Reconciler, cls intent.Classifier, feed *callws.Registry) *Handlers {
	return &Handlers{cfg: cfg, store: st, ledger: l, reconciler: rec, classifier: cls, feed: feed}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("verbose") == "" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	writeJSON(w, http.StatusOK, health.CheckAll(ctx, h.cfg))
}

func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	sess := &types.Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Status:    "created",
	}
	_ = h.store.CreateSession(sess)
	h.record(r.Context(), id, "session_created", nil)

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"greeting":   h.cfg.Schedule.Greeting,
	})
}

type turnRequest struct {
	Utterance string `json:"utterance"`
}

func (h *Handlers) HandleTurn(w http.ResponseWriter, r *http.Request, id string) {
	if h.store.GetSession(id) == nil {
		http.NotFound(w, r)
		return
	}
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	// Empty utterance means silence or capture failure upstream: no turn
	// occurred, nothing changes.
	if req.Utterance == "" {
		writeJSON(w, http.StatusOK, dialog.Reply{Messages: []string{}})
		return
	}
	h.record(r.Context(), id, "utterance", map[string]any{"text": req.Utterance})

	if intent.IsGoodbye(req.Utterance) {
		h.record(r.Context(), id, "call_ended", map[string]any{"reason": "goodbye"})
		writeJSON(w, http.StatusOK, dialog.Reply{Messages: []string{"Good-bye."}, End: true})
		return
	}

	if h.classifier == nil {
		http.Error(w, "intent classifier not configured", http.StatusServiceUnavailable)
		return
	}
	parsed, question, err := h.classifier.Classify(r.Context(), req.Utterance)
	if err != nil {
		h.record(r.Context(), id, "classify_error", map[string]any{"error": err.Error()})
		writeJSON(w, http.StatusOK, dialog.Reply{
			Messages: []string{"I'm sorry, I didn't catch that. Please repeat your response."},
		})
		return
	}
	if question != "" {
		h.record(r.Context(), id, "clarification", map[string]any{"text": question})
		writeJSON(w, http.StatusOK, dialog.Reply{Messages: []string{question}})
		return
	}

	reply := h.reconciler.Turn(id, parsed)
	for _, msg := range reply.Messages {
		h.record(r.Context(), id, "reply", map[string]any{"text": msg})
	}
	if reply.End {
		h.record(r.Context(), id, "call_ended", nil)
	}
	writeJSON(w, http.StatusOK, reply)
}

func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request, id string) {
	if h.store.GetSession(id) == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"events":     h.store.ListEvents(id),
	})
}

func (h *Handlers) HandleSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "missing date", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date,
		"slots": h.ledger.Available(date),
	})
}

func (h *Handlers) HandleNextSlot(w http.ResponseWriter, r *http.Request) {
	date, slot, ok := h.ledger.NextAvailable()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"available": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"available": true,
		"date":      date,
		"time":      slot,
	})
}

type slotRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Name string `json:"name"`
}

func (h *Handlers) HandleBook(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Date == "" || req.Time == "" || req.Name == "" {
		http.Error(w, "date, time and name are required", http.StatusBadRequest)
		return
	}
	res := h.ledger.Book(req.Date, req.Time, req.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    res.Status.String(),
		"date":      res.Date,
		"slot":      res.Slot,
		"requested": res.Requested,
		"name":      res.Name,
	})
}

func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Date == "" || req.Time == "" || req.Name == "" {
		http.Error(w, "date, time and name are required", http.StatusBadRequest)
		return
	}
	res := h.ledger.Cancel(req.Date, req.Time, req.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": res.Status.String(),
		"date":   res.Date,
		"slot":   res.Slot,
	})
}

// record appends an event and mirrors it to the session's live feed.
func (h *Handlers) record(ctx context.Context, sessionID, typ string, payload map[string]any) {
	evt := h.store.AppendEvent(sessionID, typ, payload)
	if h.feed != nil {
		_ = h.feed.Push(ctx, sessionID, evt)
	}
}
