package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type sendMessageRequest struct {
	Recipient string `json:"recipient"`
	ListingID string `json:"listingId"`
	Content   string `json:"content"`
}

func (h *Handler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.messages.SendMessage(r.Context(), UserID(r.Context()), req.Recipient, req.ListingID, req.Content)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "send_message", err)
		return
	}

	h.metrics.MessagesSentTotal.Inc()
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.ListForUser(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "list_messages", err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *Handler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.Conversation(r.Context(),
		UserID(r.Context()), chi.URLParam(r, "otherId"), chi.URLParam(r, "listingId"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "conversation", err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *Handler) HandleMarkMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := h.messages.MarkRead(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.metrics, h.logger, "mark_read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
