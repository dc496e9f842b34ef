package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/api/validate"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/services"
)

type GuidanceHandler struct {
	svc  *services.GuidanceService
	auth auth.Authenticator
}

func NewGuidanceHandler(svc *services.GuidanceService, a auth.Authenticator) *GuidanceHandler {
	return &GuidanceHandler{svc: svc, auth: a}
}

func (h *GuidanceHandler) Guide(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		Need string `json:"need"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.Need(in.Need); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out, err := h.svc.Guide(r.Context(), userID, strings.TrimSpace(in.Need))
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
