package http

import (
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/metrics"
	"github.com/FrFaber2025/school-uniform-exchange/internal/usecase"
)

// Handler bundles the usecases behind the HTTP surface.
type Handler struct {
	listings     *usecase.ListingUsecase
	transactions *usecase.TransactionUsecase
	reviews      *usecase.ReviewUsecase
	termsUC      *usecase.TermsUsecase
	messages     *usecase.MessageUsecase
	payments     *usecase.PaymentUsecase
	users        *usecase.UserUsecase
	metrics      *metrics.Manager
	logger       logger.Logger
}

func NewHandler(
	listings *usecase.ListingUsecase,
	transactions *usecase.TransactionUsecase,
	reviews *usecase.ReviewUsecase,
	termsUC *usecase.TermsUsecase,
	messages *usecase.MessageUsecase,
	payments *usecase.PaymentUsecase,
	users *usecase.UserUsecase,
	m *metrics.Manager,
	log logger.Logger,
) *Handler {
	return &Handler{
		listings:     listings,
		transactions: transactions,
		reviews:      reviews,
		termsUC:      termsUC,
		messages:     messages,
		payments:     payments,
		users:        users,
		metrics:      m,
		logger:       log,
	}
}
