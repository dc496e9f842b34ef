package api

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/api/validate"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/services"
)

type PlanHandler struct {
	svc  *services.PlanService
	auth auth.Authenticator
}

func NewPlanHandler(svc *services.PlanService, a auth.Authenticator) *PlanHandler {
	return &PlanHandler{svc: svc, auth: a}
}

// Catalog is public; it lists the purchasable tiers with their limits.
func (h *PlanHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"plans": h.svc.Catalog()})
}

func (h *PlanHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	status, err := h.svc.Status(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, status)
}

func (h *PlanHandler) StartUpgrade(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("tier", in.Tier); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	intent, err := h.svc.StartUpgrade(r.Context(), userID, in.Tier)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, intent)
}

func (h *PlanHandler) ConfirmUpgrade(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		SessionID string `json:"sessionId"`
		Tier      string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("sessionId", in.SessionID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.NonEmpty("tier", in.Tier); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	status, err := h.svc.ConfirmUpgrade(r.Context(), userID, in.SessionID, in.Tier)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, status)
}
