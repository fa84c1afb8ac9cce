// Package proxy exposes the completion provider to browser clients through a
// small HTTP relay that keeps the API key server-side.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/sandeepkv93/focuslist/internal/completion"
	"github.com/sandeepkv93/focuslist/internal/httpmw"
	"github.com/tidwall/gjson"
)

const maxRequestBytes = 64 << 10

// Forwarder relays a caller-built completion payload and returns the raw
// provider body.
type Forwarder interface {
	ForwardRaw(ctx context.Context, payload []byte) ([]byte, error)
}

type Handler struct {
	completer completion.Completer
	forwarder Forwarder
	logger    *log.Logger
}

// NewHandler serves {"message"} requests through completer. Raw payloads are
// accepted only when completer also implements Forwarder.
func NewHandler(completer completion.Completer, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{completer: completer, logger: logger}
	if fw, ok := completer.(Forwarder); ok {
		h.forwarder = fw
	}
	return h
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body too large or unreadable"})
		return
	}
	if !gjson.ValidBytes(body) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	if messages := gjson.GetBytes(body, "messages"); messages.IsArray() {
		h.forward(w, r, body)
		return
	}

	field := gjson.GetBytes(body, "message")
	message := strings.TrimSpace(field.Str)
	if field.Type != gjson.String || message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	reply, err := h.completer.Complete(r.Context(), message)
	if err != nil {
		if completion.Kind(err) == completion.KindEmptyReply {
			writeJSON(w, http.StatusOK, replyResponse{Reply: completion.PlaceholderReply})
			return
		}
		h.writeCompletionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request, payload []byte) {
	if h.forwarder == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "raw payloads are not supported by this provider"})
		return
	}
	raw, err := h.forwarder.ForwardRaw(r.Context(), payload)
	if err != nil {
		h.writeCompletionError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *Handler) writeCompletionError(w http.ResponseWriter, r *http.Request, err error) {
	httpmw.Log(h.logger, "error", "completion_failed", map[string]any{
		"request_id": httpmw.RequestIDFromContext(r.Context()),
		"kind":       string(completion.Kind(err)),
		"error":      err.Error(),
	})

	var pe *completion.ProviderError
	if errors.As(err, &pe) {
		writeJSON(w, pe.Status, errorResponse{Error: "provider error: " + pe.Body})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
