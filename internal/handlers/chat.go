package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/derex0721/cryptorex/internal/locale"
	"github.com/derex0721/cryptorex/internal/models"
	"github.com/derex0721/cryptorex/internal/services"
)

// ChatHistory returns the current transcript.
func (a *API) ChatHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tsISO":    nowISO(),
		"messages": a.conv.Messages(),
	})
}

// ChatContext switches the conversation to a new asset/language pair. The
// whole history is discarded and reseeded with a greeting; any in-flight
// request is invalidated.
func (a *API) ChatContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	var body struct {
		CoinID   string `json:"coinId"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid body"})
		return
	}
	quote, ok := a.agg.Quote(body.CoinID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown coin"})
		return
	}
	code := body.Language
	if code == "" {
		code = a.cfg.DefaultLanguage
	}
	a.conv.SetContext(quote, locale.Resolve(code))
	writeJSON(w, http.StatusOK, map[string]any{
		"tsISO":    nowISO(),
		"messages": a.conv.Messages(),
	})
}

// ChatMessage streams a free-text exchange as SSE: every record replacement
// of the assistant message is emitted as a "message" event, in chunk arrival
// order, followed by a terminal "done" event.
func (a *API) ChatMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusBadRequest)
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid body"})
		return
	}
	text := strings.TrimSpace(body.Text)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "text required"})
		return
	}

	// SSE headers go out with the first event, so a synchronous ErrBusy
	// can still produce a plain JSON status.
	started := false
	emit := func(event string, v any) {
		if !started {
			started = true
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.Header().Set("X-Accel-Buffering", "no")
		}
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.StreamTimeout)
	defer cancel()

	err := a.conv.Send(ctx, text, func(msg models.ChatMessage) {
		emit("message", msg)
	})
	if err != nil {
		writeChatError(w, err)
		return
	}
	emit("done", map[string]any{"tsISO": nowISO()})
}

// ChatScan runs the structured deep scan; one request, one JSON response
// carrying the updated transcript tail.
func (a *API) ChatScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.StreamTimeout)
	defer cancel()

	if err := a.conv.DeepScan(ctx, nil); err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tsISO":    nowISO(),
		"messages": a.conv.Messages(),
	})
}

func writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrBusy):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
	case errors.Is(err, services.ErrNoContext):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}
