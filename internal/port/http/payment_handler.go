package http

import (
	"encoding/json"
	"net/http"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
)

// HandleSetStripeConfig stores the processor credentials. Admin-only.
func (h *Handler) HandleSetStripeConfig(w http.ResponseWriter, r *http.Request) {
	var cfg payment.StripeConfiguration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.payments.SetStripeConfiguration(r.Context(), &cfg); err != nil {
		writeError(w, r, h.metrics, h.logger, "set_stripe_config", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePaymentStatus reports whether checkout is available. Public so the
// storefront can hide buy buttons before configuration.
func (h *Handler) HandlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	configured, err := h.payments.IsConfigured(r.Context())
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "payment_status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"configured": configured})
}
