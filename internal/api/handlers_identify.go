package api

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/api/validate"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/services"
)

type IdentifyHandler struct {
	svc  *services.IdentifyService
	auth auth.Authenticator
}

func NewIdentifyHandler(svc *services.IdentifyService, a auth.Authenticator) *IdentifyHandler {
	return &IdentifyHandler{svc: svc, auth: a}
}

func (h *IdentifyHandler) Identify(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		Image    string `json:"image"`
		MimeType string `json:"mimeType"`
		Context  string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.MimeType(in.MimeType); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	image, err := validate.ImagePayload(in.Image)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out, err := h.svc.Identify(r.Context(), userID, image, in.MimeType, in.Context)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *IdentifyHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	snaps, err := h.svc.History(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, snaps)
}
