// Package support implements the support ticket lifecycle: creation,
// role-gated status transitions, and the automatic status moves that
// commenting triggers.
package support

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
)

// Ticket priorities. Unspecified priority defaults to medium.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Ticket statuses.
const (
	StatusOpen           = "open"
	StatusPendingSupport = "pending_support"
	StatusPendingUser    = "pending_user"
	StatusResolved       = "resolved"
	StatusClosed         = "closed"
)

// Comment author roles.
const (
	RoleCustomer = "customer"
	RoleSupport  = "support"
)

var priorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// supportTransitions gates what a support agent may set a ticket to.
var supportTransitions = map[string][]string{
	StatusOpen:           {StatusPendingUser, StatusResolved, StatusClosed},
	StatusPendingSupport: {StatusPendingUser, StatusResolved, StatusClosed},
	StatusPendingUser:    {StatusPendingSupport, StatusResolved, StatusClosed},
	StatusResolved:       {StatusOpen, StatusClosed},
	StatusClosed:         {},
}

// customerTransitions gates what the ticket's owner may set it to.
var customerTransitions = map[string][]string{
	StatusOpen:           {StatusClosed},
	StatusPendingSupport: {StatusClosed},
	StatusPendingUser:    {StatusPendingSupport, StatusClosed},
	StatusResolved:       {StatusOpen, StatusClosed},
	StatusClosed:         {},
}

// CanTransition reports whether role may move a ticket from one status to
// another.
func CanTransition(role, from, to string) bool {
	table := customerTransitions
	if role == RoleSupport {
		table = supportTransitions
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NextStatusOnComment returns the status a ticket moves to when someone
// with the given role comments on it. A customer reply hands the ticket
// back to support; a support reply hands it to the customer. Closed
// tickets never move.
func NextStatusOnComment(current, role string) string {
	switch role {
	case RoleCustomer:
		if current == StatusPendingUser || current == StatusResolved {
			return StatusPendingSupport
		}
	case RoleSupport:
		if current == StatusOpen || current == StatusPendingSupport {
			return StatusPendingUser
		}
	}
	return current
}

// NormalizePriority validates a raw priority, defaulting blank input to
// medium. Unknown values are an error, not a silent default.
func NormalizePriority(raw string) (string, error) {
	if raw == "" {
		return PriorityMedium, nil
	}
	if !priorities[raw] {
		return "", fmt.Errorf("unknown priority %q: %w", raw, model.ErrInvalidArgument)
	}
	return raw, nil
}

// Comment is one message on a ticket.
type Comment struct {
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type storedTicket struct {
	model.SupportTicket
	Comments []Comment `json:"comments,omitempty"`
}

type Service struct {
	store docstore.Store
	now   func() time.Time
	newID func() string
}

func NewService(store docstore.Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

func ticketPath(id string) string { return "tickets/" + id }

// Create files a new ticket owned by userID.
func (s *Service) Create(ctx context.Context, userID, subject, body, priority string) (model.SupportTicket, error) {
	if userID == "" {
		return model.SupportTicket{}, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	if subject == "" {
		return model.SupportTicket{}, fmt.Errorf("subject required: %w", model.ErrInvalidArgument)
	}
	prio, err := NormalizePriority(priority)
	if err != nil {
		return model.SupportTicket{}, err
	}

	now := s.now().UTC()
	ticket := model.SupportTicket{
		TicketID:  s.newID(),
		UserID:    userID,
		Subject:   subject,
		Body:      body,
		Priority:  prio,
		Status:    StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc, err := docstore.ToDocument(storedTicket{SupportTicket: ticket})
	if err != nil {
		return model.SupportTicket{}, err
	}
	if err := s.store.Set(ctx, ticketPath(ticket.TicketID), doc, false); err != nil {
		return model.SupportTicket{}, err
	}
	return ticket, nil
}

// Get returns one ticket by id.
func (s *Service) Get(ctx context.Context, ticketID string) (model.SupportTicket, []Comment, error) {
	doc, err := s.store.Get(ctx, ticketPath(ticketID))
	if err != nil {
		return model.SupportTicket{}, nil, err
	}
	var st storedTicket
	if err := docstore.FromDocument(doc, &st); err != nil {
		return model.SupportTicket{}, nil, err
	}
	return st.SupportTicket, st.Comments, nil
}

// ListForUser returns the user's tickets ordered by document path.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]model.SupportTicket, error) {
	snaps, err := s.store.Query(ctx, "tickets", docstore.Filter{Field: "userId", Value: userID})
	if err != nil {
		return nil, err
	}
	out := make([]model.SupportTicket, 0, len(snaps))
	for _, snap := range snaps {
		var st storedTicket
		if err := docstore.FromDocument(snap.Data, &st); err != nil {
			return nil, err
		}
		out = append(out, st.SupportTicket)
	}
	return out, nil
}

// Transition moves a ticket to a new status on behalf of role. Disallowed
// moves fail with ErrFailedPrecondition and leave the ticket unchanged.
func (s *Service) Transition(ctx context.Context, ticketID, role, to string) (model.SupportTicket, error) {
	var result model.SupportTicket
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		st, err := s.loadTicket(tx, ticketID)
		if err != nil {
			return err
		}
		if !CanTransition(role, st.Status, to) {
			return fmt.Errorf("%s may not move ticket from %s to %s: %w",
				role, st.Status, to, model.ErrFailedPrecondition)
		}
		st.Status = to
		st.UpdatedAt = s.now().UTC()
		result = st.SupportTicket
		return s.saveTicket(tx, st)
	})
	if err != nil {
		return model.SupportTicket{}, err
	}
	return result, nil
}

// AddComment appends a comment and applies the automatic status move for
// the commenter's role. Comments on closed tickets are refused.
func (s *Service) AddComment(ctx context.Context, ticketID, author, role, body string) (model.SupportTicket, error) {
	if body == "" {
		return model.SupportTicket{}, fmt.Errorf("comment body required: %w", model.ErrInvalidArgument)
	}
	if role != RoleCustomer && role != RoleSupport {
		return model.SupportTicket{}, fmt.Errorf("unknown role %q: %w", role, model.ErrInvalidArgument)
	}

	var result model.SupportTicket
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		st, err := s.loadTicket(tx, ticketID)
		if err != nil {
			return err
		}
		if st.Status == StatusClosed {
			return fmt.Errorf("ticket %s is closed: %w", ticketID, model.ErrFailedPrecondition)
		}
		st.Comments = append(st.Comments, Comment{
			Author:    author,
			Role:      role,
			Body:      body,
			CreatedAt: s.now().UTC(),
		})
		st.Status = NextStatusOnComment(st.Status, role)
		st.UpdatedAt = s.now().UTC()
		result = st.SupportTicket
		return s.saveTicket(tx, st)
	})
	if err != nil {
		return model.SupportTicket{}, err
	}
	return result, nil
}

func (s *Service) loadTicket(tx docstore.Tx, ticketID string) (storedTicket, error) {
	doc, err := tx.Get(ticketPath(ticketID))
	if err != nil {
		return storedTicket{}, err
	}
	var st storedTicket
	if err := docstore.FromDocument(doc, &st); err != nil {
		return storedTicket{}, err
	}
	return st, nil
}

func (s *Service) saveTicket(tx docstore.Tx, st storedTicket) error {
	doc, err := docstore.ToDocument(st)
	if err != nil {
		return err
	}
	return tx.Set(ticketPath(st.TicketID), doc, false)
}
