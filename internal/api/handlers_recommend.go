package api

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/api/validate"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/recommend"
	"github.com/crystal-grimoire/backend/internal/services"
)

type RecommendHandler struct {
	svc  *services.RecommendService
	auth auth.Authenticator
}

func NewRecommendHandler(svc *services.RecommendService, a auth.Authenticator) *RecommendHandler {
	return &RecommendHandler{svc: svc, auth: a}
}

func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		Intents []string `json:"intents"`
		Need    string   `json:"need"`
		Limit   int      `json:"limit"`
		Exclude []string `json:"exclude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.Limit(in.Limit, recommend.MaxLimit); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out, err := h.svc.Recommend(r.Context(), userID, services.RecommendRequest{
		Intents: in.Intents,
		Need:    in.Need,
		Limit:   in.Limit,
		Exclude: in.Exclude,
	})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
