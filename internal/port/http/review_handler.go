package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type submitReviewRequest struct {
	TransactionID string `json:"transactionId"`
	Rating        int32  `json:"rating"`
	Comment       string `json:"comment"`
}

func (h *Handler) HandleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	review, err := h.reviews.SubmitReview(r.Context(), UserID(r.Context()), req.TransactionID, req.Comment, req.Rating)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "submit_review", err)
		return
	}

	h.metrics.ReviewsSubmittedTotal.Inc()
	writeJSON(w, http.StatusCreated, review)
}

// HandleSellerReviews returns the seller's full review list, newest first.
func (h *Handler) HandleSellerReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.SellerReviews(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "seller_reviews", err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// HandleSellerRating returns the aggregate: average, count and a short
// recent slice.
func (h *Handler) HandleSellerRating(w http.ResponseWriter, r *http.Request) {
	recentLimit, _ := strconv.Atoi(r.URL.Query().Get("recent"))
	if recentLimit < 1 || recentLimit > 50 {
		recentLimit = 5
	}

	summary, err := h.reviews.SellerRatingSummary(r.Context(), chi.URLParam(r, "sellerId"), recentLimit)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "seller_rating", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
