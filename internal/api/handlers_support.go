package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/crystal-grimoire/backend/internal/api/respond"
	"github.com/crystal-grimoire/backend/internal/api/validate"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/support"
)

const adminKeyHeader = "X-Api-Key"

type SupportHandler struct {
	svc      *support.Service
	auth     auth.Authenticator
	adminKey string
}

func NewSupportHandler(svc *support.Service, a auth.Authenticator, adminKey string) *SupportHandler {
	return &SupportHandler{svc: svc, auth: a, adminKey: adminKey}
}

func (h *SupportHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		Subject  string `json:"subject"`
		Body     string `json:"body"`
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("subject", in.Subject); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.NonEmpty("body", in.Body); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ticket, err := h.svc.Create(r.Context(), userID, in.Subject, in.Body, in.Priority)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, ticket)
}

func (h *SupportHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	tickets, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

func (h *SupportHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	ticket, comments, err := h.svc.Get(r.Context(), mux.Vars(r)["ticketId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	// Customers only see their own tickets.
	if ticket.UserID != userID {
		respond.WriteServiceError(w, model.ErrNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ticket":   ticket,
		"comments": comments,
	})
}

func (h *SupportHandler) CommentTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("body", in.Body); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ticketID := mux.Vars(r)["ticketId"]
	ticket, _, err := h.svc.Get(r.Context(), ticketID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if ticket.UserID != userID {
		respond.WriteServiceError(w, model.ErrNotFound)
		return
	}

	updated, err := h.svc.AddComment(r.Context(), ticketID, userID, support.RoleCustomer, in.Body)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, updated)
}

// CloseTicket lets the customer resolve or close their own ticket.
func (h *SupportHandler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromRequest(r, h.auth)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("status", in.Status); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ticketID := mux.Vars(r)["ticketId"]
	ticket, _, err := h.svc.Get(r.Context(), ticketID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if ticket.UserID != userID {
		respond.WriteServiceError(w, model.ErrNotFound)
		return
	}

	updated, err := h.svc.Transition(r.Context(), ticketID, support.RoleCustomer, in.Status)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, updated)
}

func (h *SupportHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if h.adminKey == "" || r.Header.Get(adminKeyHeader) != h.adminKey {
		respond.WriteServiceError(w, model.ErrUnauthenticated)
		return false
	}
	return true
}

// AdminTransition moves a ticket through the support-side state machine.
func (h *SupportHandler) AdminTransition(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("status", in.Status); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ticket, err := h.svc.Transition(r.Context(), mux.Vars(r)["ticketId"], support.RoleSupport, in.Status)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ticket)
}

// AdminComment adds a support-side comment, moving the ticket to
// pending_user when the state machine calls for it.
func (h *SupportHandler) AdminComment(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var in struct {
		Author string `json:"author"`
		Body   string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("body", in.Body); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	author := in.Author
	if author == "" {
		author = "support"
	}

	ticket, err := h.svc.AddComment(r.Context(), mux.Vars(r)["ticketId"], author, support.RoleSupport, in.Body)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ticket)
}

// AdminGetTicket returns any ticket with its comment thread.
func (h *SupportHandler) AdminGetTicket(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	ticket, comments, err := h.svc.Get(r.Context(), mux.Vars(r)["ticketId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ticket":   ticket,
		"comments": comments,
	})
}
