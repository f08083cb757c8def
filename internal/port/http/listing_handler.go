package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
)

// maxPhotoBytes caps an uploaded photo at 8 MiB.
const maxPhotoBytes = 8 << 20

func decodeDraft(r *http.Request) (listing.Draft, error) {
	var draft listing.Draft
	err := json.NewDecoder(r.Body).Decode(&draft)
	return draft, err
}

func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(r)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	l, err := h.listings.CreateListing(r.Context(), UserID(r.Context()), draft)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "create_listing", err)
		return
	}

	h.metrics.ListingsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, l)
}

func (h *Handler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeDraft(r)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	l, err := h.listings.UpdateListing(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), draft)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "update_listing", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handler) HandleDeactivateListing(w http.ResponseWriter, r *http.Request) {
	if err := h.listings.DeactivateListing(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.metrics, h.logger, "deactivate_listing", err)
		return
	}
	h.metrics.ListingsDeactivatedTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// listingDetail couples the listing with the caller's derived capabilities.
type listingDetail struct {
	Listing     *listing.Listing         `json:"listing"`
	ViewerState *transaction.ViewerState `json:"viewerState,omitempty"`
}

func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "get_listing", err)
		return
	}

	detail := listingDetail{Listing: l}
	if viewer := UserID(r.Context()); viewer != "" {
		vs, err := h.transactions.ViewerState(r.Context(), viewer, id)
		if err != nil {
			writeError(w, r, h.metrics, h.logger, "get_listing", err)
			return
		}
		detail.ViewerState = vs
	}
	writeJSON(w, http.StatusOK, detail)
}

type searchResponse struct {
	Listings []*listing.Listing `json:"listings"`
	Total    int64              `json:"total"`
	Page     int64              `json:"page"`
}

func (h *Handler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := listing.Filter{
		Query:      q.Get("q"),
		SchoolName: q.Get("school"),
		Gender:     listing.Gender(q.Get("gender")),
		SchoolYear: q.Get("schoolYear"),
		ItemKind:   listing.ItemTypeKind(q.Get("itemType")),
		Seller:     q.Get("seller"),
		ActiveOnly: true,
	}
	filter.MinPence, _ = strconv.ParseInt(q.Get("minPrice"), 10, 64)
	filter.MaxPence, _ = strconv.ParseInt(q.Get("maxPrice"), 10, 64)
	filter.Page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	listings, total, err := h.listings.SearchListings(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "search_listings", err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Listings: listings, Total: total, Page: filter.Page})
}

func (h *Handler) HandleGetSchoolNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.listings.GetSchoolNames(r.Context())
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "school_names", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"schoolNames": names})
}

func (h *Handler) HandleSuggestPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	retail, err := strconv.ParseInt(q.Get("retailPence"), 10, 64)
	if err != nil {
		http.Error(w, "retailPence must be an integer", http.StatusBadRequest)
		return
	}

	suggested, err := h.listings.SuggestPrice(r.Context(), retail, listing.ItemTypeKind(q.Get("itemType")))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "suggest_price", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"suggestedPence": suggested})
}

func (h *Handler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "upload_photo", err)
		return
	}

	url, err := h.users.UploadPhoto(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "upload_photo", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
