package api

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/ritual"
	"github.com/crystal-grimoire/backend/internal/services"
)

type RitualHandler struct {
	svc  *services.RitualService
	auth auth.Authenticator
}

func NewRitualHandler(svc *services.RitualService, a auth.Authenticator) *RitualHandler {
	return &RitualHandler{svc: svc, auth: a}
}

// MoonRitual builds a ritual for the requested phase, defaulting to the
// current phase when the query parameter is absent.
func (h *RitualHandler) MoonRitual(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	out, err := h.svc.MoonRitual(r.Context(), userID, r.URL.Query().Get("phase"))
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *RitualHandler) CompleteRitual(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	wallet, err := h.svc.CompleteRitual(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, wallet)
}

func (h *RitualHandler) HealingLayout(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	// Body is optional; no chakras means the full root-to-crown layout.
	var in struct {
		Chakras []string `json:"chakras"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}

	steps, err := h.svc.HealingLayout(r.Context(), userID, in.Chakras)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"layout": steps})
}

// RitualTemplates lists the templates for all eight phases. No auth and no
// usage charge; the per-user work happens in MoonRitual.
func (h *RitualHandler) RitualTemplates(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, ritual.Templates())
}
