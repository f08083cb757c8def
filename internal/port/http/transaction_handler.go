package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type recordTransactionRequest struct {
	ListingID string `json:"listingId"`
}

// HandleRecordTransaction creates the pending record without a hosted
// checkout session, for payment flows driven outside this service.
func (h *Handler) HandleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.transactions.RecordTransaction(r.Context(), UserID(r.Context()), req.ListingID)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "record_transaction", err)
		return
	}

	h.metrics.TransactionsRecordedTotal.Inc()
	writeJSON(w, http.StatusCreated, t)
}

type checkoutRequest struct {
	ListingID  string `json:"listingId"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.payments.CreateCheckout(r.Context(), UserID(r.Context()), req.ListingID, req.SuccessURL, req.CancelURL)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "checkout", err)
		return
	}

	h.metrics.TransactionsRecordedTotal.Inc()
	writeJSON(w, http.StatusCreated, result)
}

type paymentOutcomeRequest struct {
	TransactionID string `json:"transactionId"`
	Outcome       string `json:"outcome"`
}

// HandlePaymentOutcome receives the processor's capture result. Admin-only;
// in production this sits behind a verified webhook.
func (h *Handler) HandlePaymentOutcome(w http.ResponseWriter, r *http.Request) {
	var req paymentOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var err error
	switch req.Outcome {
	case "succeeded":
		_, err = h.transactions.HandlePaymentSucceeded(r.Context(), req.TransactionID)
	case "failed":
		_, err = h.transactions.HandlePaymentFailed(r.Context(), req.TransactionID)
	default:
		http.Error(w, "outcome must be succeeded or failed", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "payment_outcome", err)
		return
	}

	h.metrics.StatusTransitionsTotal.WithLabelValues(req.Outcome).Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleConfirmDispatch(w http.ResponseWriter, r *http.Request) {
	t, err := h.transactions.ConfirmDispatch(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "confirm_dispatch", err)
		return
	}
	h.metrics.StatusTransitionsTotal.WithLabelValues(string(t.Status)).Inc()
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) HandleConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	t, err := h.transactions.ConfirmReceipt(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "confirm_receipt", err)
		return
	}
	h.metrics.StatusTransitionsTotal.WithLabelValues(string(t.Status)).Inc()
	writeJSON(w, http.StatusOK, t)
}

// HandleReleasePayment records the processed fund release. Admin-only.
func (h *Handler) HandleReleasePayment(w http.ResponseWriter, r *http.Request) {
	t, err := h.transactions.ReleasePayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "release_payment", err)
		return
	}
	h.metrics.StatusTransitionsTotal.WithLabelValues(string(t.Status)).Inc()
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := h.transactions.GetTransaction(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "get_transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.transactions.ListForUser(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "list_transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// HandleViewerState returns the caller's derived capabilities for a listing.
func (h *Handler) HandleViewerState(w http.ResponseWriter, r *http.Request) {
	vs, err := h.transactions.ViewerState(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "viewer_state", err)
		return
	}
	writeJSON(w, http.StatusOK, vs)
}

// HandlePurchaseStatus reports whether the caller's payment for the listing
// has cleared.
func (h *Handler) HandlePurchaseStatus(w http.ResponseWriter, r *http.Request) {
	completed, err := h.transactions.HasCompletedPaymentForListing(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "purchase_status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}

// HandleSellerContact reveals contact details only to a buyer whose payment
// has cleared.
func (h *Handler) HandleSellerContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.transactions.SellerContactDetails(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "seller_contact", err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}
