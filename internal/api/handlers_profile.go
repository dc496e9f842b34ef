package api

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/profile"
)

type ProfileHandler struct {
	svc  *profile.Service
	auth auth.Authenticator
}

func NewProfileHandler(svc *profile.Service, a auth.Authenticator) *ProfileHandler {
	return &ProfileHandler{svc: svc, auth: a}
}

// EnsureProfile creates the caller's profile document if it does not exist
// yet. Fields already stored win over the seed payload.
func (h *ProfileHandler) EnsureProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	seed := docstore.Document{}
	if r.Body != nil {
		// An empty body is fine; the profile gets its defaults.
		_ = json.NewDecoder(r.Body).Decode(&seed)
	}

	doc, err := h.svc.Ensure(r.Context(), userID, seed)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, doc)
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	doc, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, doc)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	fields := docstore.Document{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	doc, err := h.svc.Update(r.Context(), userID, fields)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, doc)
}

// DeleteAccount removes the caller's profile and every document they own.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	deleted, err := h.svc.DeleteAccount(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"deletedDocuments": deleted})
}
