package http

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) HandleGetTerms(w http.ResponseWriter, r *http.Request) {
	current, err := h.termsUC.Current(r.Context())
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "get_terms", err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (h *Handler) HandleAcceptTerms(w http.ResponseWriter, r *http.Request) {
	acceptance, err := h.termsUC.Accept(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "accept_terms", err)
		return
	}
	writeJSON(w, http.StatusOK, acceptance)
}

func (h *Handler) HandleTermsStatus(w http.ResponseWriter, r *http.Request) {
	accepted, err := h.termsUC.HasAcceptedCurrent(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "terms_status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"accepted": accepted})
}

type publishTermsRequest struct {
	Version string `json:"version"`
	Content string `json:"content"`
}

// HandlePublishTerms publishes a new terms version. Admin-only. Every user
// must re-accept before their next listing or purchase.
func (h *Handler) HandlePublishTerms(w http.ResponseWriter, r *http.Request) {
	var req publishTermsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	published, err := h.termsUC.Publish(r.Context(), req.Version, req.Content)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "publish_terms", err)
		return
	}
	writeJSON(w, http.StatusCreated, published)
}
