package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/user"
)

func (h *Handler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var p user.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.users.SaveProfile(r.Context(), UserID(r.Context()), &p)
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "save_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) HandleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.users.GetProfile(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "get_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) HandleGetPublicProfile(w http.ResponseWriter, r *http.Request) {
	pv, err := h.users.GetPublicProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.metrics, h.logger, "public_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, pv)
}
