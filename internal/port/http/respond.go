package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/message"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/review"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/user"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/metrics"
	"github.com/FrFaber2025/school-uniform-exchange/internal/usecase"
)

type errorBody struct {
	Error  string               `json:"error"`
	Type   string               `json:"type"`
	Fields []listing.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors onto HTTP statuses and a stable error type
// string clients can branch on.
func writeError(w http.ResponseWriter, r *http.Request, m *metrics.Manager, log logger.Logger, route string, err error) {
	status := http.StatusInternalServerError
	errType := "internal"
	body := errorBody{Error: err.Error()}

	var verrs listing.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		status, errType = http.StatusBadRequest, "validation"
		body.Fields = verrs
	case errors.Is(err, review.ErrInvalidInput),
		errors.Is(err, message.ErrInvalidInput),
		errors.Is(err, transaction.ErrInvalidInput),
		errors.Is(err, payment.ErrInvalidConfig),
		errors.Is(err, usecase.ErrUnsupportedPhotoType):
		status, errType = http.StatusBadRequest, "validation"
	case errors.Is(err, terms.ErrNotAccepted):
		status, errType = http.StatusForbidden, "terms_not_accepted"
	case errors.Is(err, transaction.ErrStateTransitionRejected),
		errors.Is(err, review.ErrAlreadyExists),
		errors.Is(err, review.ErrSelfReview),
		errors.Is(err, usecase.ErrCannotBuyOwnListing):
		status, errType = http.StatusConflict, "state_transition_rejected"
	case errors.Is(err, transaction.ErrNotAuthorized),
		errors.Is(err, listing.ErrNotOwner),
		errors.Is(err, message.ErrMessagingLocked):
		status, errType = http.StatusForbidden, "not_authorized"
	case errors.Is(err, payment.ErrNotConfigured):
		status, errType = http.StatusServiceUnavailable, "payment_not_configured"
	case errors.Is(err, listing.ErrListingNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, review.ErrNotFound),
		errors.Is(err, user.ErrProfileNotFound),
		errors.Is(err, terms.ErrNoTerms):
		status, errType = http.StatusNotFound, "not_found"
	default:
		log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}

	body.Type = errType
	m.APIErrorsTotal.WithLabelValues(route, errType).Inc()
	writeJSON(w, status, body)
}
