package support

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystal-grimoire/backend/internal/docstore/memory"
	"github.com/crystal-grimoire/backend/internal/model"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(memory.New())
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return map[int]string{1: "t1", 2: "t2", 3: "t3"}[n]
	}
	return svc
}

func TestCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	ticket, err := svc.Create(ctx, "u1", "Billing question", "I was charged twice.", "")
	require.NoError(t, err)
	assert.Equal(t, "t1", ticket.TicketID)
	assert.Equal(t, StatusOpen, ticket.Status)
	assert.Equal(t, PriorityMedium, ticket.Priority, "blank priority defaults to medium")

	_, err = svc.Create(ctx, "u1", "Urgent", "help", "critical")
	assert.True(t, errors.Is(err, model.ErrInvalidArgument), "unknown priority must be rejected")

	_, err = svc.Create(ctx, "u1", "", "no subject", PriorityLow)
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))
}

func TestTransitionTables(t *testing.T) {
	cases := []struct {
		role, from, to string
		allowed        bool
	}{
		{RoleSupport, StatusOpen, StatusPendingUser, true},
		{RoleSupport, StatusOpen, StatusResolved, true},
		{RoleSupport, StatusClosed, StatusOpen, false},
		{RoleCustomer, StatusOpen, StatusClosed, true},
		{RoleCustomer, StatusOpen, StatusResolved, false},
		{RoleCustomer, StatusPendingUser, StatusPendingSupport, true},
		{RoleCustomer, StatusResolved, StatusOpen, true},
		{RoleCustomer, StatusClosed, StatusOpen, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.role, tc.from, tc.to)
		assert.Equal(t, tc.allowed, got, "%s: %s -> %s", tc.role, tc.from, tc.to)
	}
}

func TestTransitionService(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	ticket, err := svc.Create(ctx, "u1", "Question", "body", "")
	require.NoError(t, err)

	updated, err := svc.Transition(ctx, ticket.TicketID, RoleSupport, StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, updated.Status)

	// A customer may not resolve tickets; the status must be unchanged
	// after the refused move.
	_, err = svc.Transition(ctx, ticket.TicketID, RoleCustomer, StatusPendingUser)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrFailedPrecondition))
	current, _, err := svc.Get(ctx, ticket.TicketID)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, current.Status)
}

func TestNextStatusOnComment(t *testing.T) {
	cases := []struct {
		current, role, want string
	}{
		{StatusOpen, RoleSupport, StatusPendingUser},
		{StatusPendingSupport, RoleSupport, StatusPendingUser},
		{StatusPendingUser, RoleCustomer, StatusPendingSupport},
		{StatusResolved, RoleCustomer, StatusPendingSupport},
		{StatusOpen, RoleCustomer, StatusOpen},
		{StatusPendingUser, RoleSupport, StatusPendingUser},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NextStatusOnComment(tc.current, tc.role), "%s + %s comment", tc.current, tc.role)
	}
}

func TestAddCommentMovesStatus(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	ticket, err := svc.Create(ctx, "u1", "Question", "body", "")
	require.NoError(t, err)

	updated, err := svc.AddComment(ctx, ticket.TicketID, "agent-7", RoleSupport, "Looking into it.")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingUser, updated.Status)

	updated, err = svc.AddComment(ctx, ticket.TicketID, "u1", RoleCustomer, "Still broken.")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingSupport, updated.Status)

	_, comments, err := svc.Get(ctx, ticket.TicketID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "agent-7", comments[0].Author)

	_, err = svc.Transition(ctx, ticket.TicketID, RoleCustomer, StatusClosed)
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, ticket.TicketID, "u1", RoleCustomer, "one more thing")
	assert.True(t, errors.Is(err, model.ErrFailedPrecondition), "closed tickets take no comments")
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Create(ctx, "u1", "First", "body", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "Other", "body", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "Second", "body", PriorityHigh)
	require.NoError(t, err)

	tickets, err := svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	for _, tk := range tickets {
		assert.Equal(t, "u1", tk.UserID)
	}
}
