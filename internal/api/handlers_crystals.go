package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/ritual"
	"github.com/crystal-grimoire/backend/internal/services"
)

// CrystalHandler serves the public catalog and lunar endpoints. None of
// them require authentication.
type CrystalHandler struct {
	cat     *catalog.Catalog
	rituals *services.RitualService
}

func NewCrystalHandler(cat *catalog.Catalog, rituals *services.RitualService) *CrystalHandler {
	return &CrystalHandler{cat: cat, rituals: rituals}
}

func (h *CrystalHandler) ListCrystals(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.cat.All())
}

func (h *CrystalHandler) GetCrystal(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rec := h.cat.FindByName(name)
	if rec == nil {
		respond.WriteNotFound(w, "no crystal named "+name)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

func (h *CrystalHandler) DailyCrystal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rec := h.rituals.DailyCrystal(ritual.DailyFilter{
		Intent: q.Get("intent"),
		Chakra: q.Get("chakra"),
		Mood:   q.Get("mood"),
	})
	if rec == nil {
		respond.WriteInternalError(w, "catalog is empty")
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

func (h *CrystalHandler) Moon(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.rituals.Moon())
}
