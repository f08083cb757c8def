package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

// NewRouter assembles the public, authenticated and admin route groups.
func NewRouter(h *Handler, jwtSecret string, log logger.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(Instrument(h.metrics))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// public, viewer state attached when a token is present
	mux.Group(func(r chi.Router) {
		r.Use(OptionalAuth(jwtSecret, log))
		r.Get("/api/listings/{id}", h.HandleGetListing)
	})

	mux.Get("/api/listings", h.HandleSearchListings)
	mux.Get("/api/schools", h.HandleGetSchoolNames)
	mux.Get("/api/listings/price-suggestion", h.HandleSuggestPrice)
	mux.Get("/api/terms", h.HandleGetTerms)
	mux.Get("/api/payments/status", h.HandlePaymentStatus)
	mux.Get("/api/users/{id}", h.HandleGetPublicProfile)
	mux.Get("/api/sellers/{sellerId}/reviews", h.HandleSellerReviews)
	mux.Get("/api/sellers/{sellerId}/rating", h.HandleSellerRating)

	// authenticated
	mux.Group(func(r chi.Router) {
		r.Use(JWTAuth(jwtSecret, log))

		r.Post("/api/listings", h.HandleCreateListing)
		r.Put("/api/listings/{id}", h.HandleUpdateListing)
		r.Delete("/api/listings/{id}", h.HandleDeactivateListing)
		r.Post("/api/photos", h.HandleUploadPhoto)

		r.Post("/api/checkout", h.HandleCheckout)
		r.Post("/api/transactions", h.HandleRecordTransaction)
		r.Get("/api/transactions", h.HandleListTransactions)
		r.Get("/api/transactions/{id}", h.HandleGetTransaction)
		r.Post("/api/transactions/{id}/dispatch", h.HandleConfirmDispatch)
		r.Post("/api/transactions/{id}/receipt", h.HandleConfirmReceipt)
		r.Get("/api/listings/{id}/viewer-state", h.HandleViewerState)
		r.Get("/api/listings/{id}/purchase-status", h.HandlePurchaseStatus)
		r.Get("/api/listings/{id}/seller-contact", h.HandleSellerContact)

		r.Post("/api/reviews", h.HandleSubmitReview)

		r.Post("/api/terms/accept", h.HandleAcceptTerms)
		r.Get("/api/terms/status", h.HandleTermsStatus)

		r.Post("/api/messages", h.HandleSendMessage)
		r.Get("/api/messages", h.HandleListMessages)
		r.Get("/api/messages/{listingId}/{otherId}", h.HandleConversation)
		r.Post("/api/messages/{id}/read", h.HandleMarkMessageRead)

		r.Put("/api/profile", h.HandleSaveProfile)
		r.Get("/api/profile", h.HandleGetMyProfile)
	})

	// admin
	mux.Group(func(r chi.Router) {
		r.Use(JWTAuth(jwtSecret, log))
		r.Use(RequireAdmin)

		r.Put("/api/admin/stripe-config", h.HandleSetStripeConfig)
		r.Post("/api/admin/terms", h.HandlePublishTerms)
		r.Post("/api/admin/payments/outcome", h.HandlePaymentOutcome)
		r.Post("/api/admin/transactions/{id}/release", h.HandleReleasePayment)
	})

	return mux
}
