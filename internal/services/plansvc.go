package services

import (
	"context"
	"fmt"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/payments"
	"github.com/crystal-grimoire/backend/internal/plan"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/usage"
)

// PaymentProvider is the slice of the payment client plan upgrades need.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency, userID string) (payments.PaymentIntent, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (payments.CheckoutSession, error)
}

// PlanService answers plan status queries and runs the upgrade flow.
type PlanService struct {
	ledger   *usage.Ledger
	profiles *profile.Service
	pay      PaymentProvider
}

func NewPlanService(ledger *usage.Ledger, profiles *profile.Service, pay PaymentProvider) *PlanService {
	return &PlanService{ledger: ledger, profiles: profiles, pay: pay}
}

// Status returns the caller's resolved plan merged with today's usage.
func (s *PlanService) Status(ctx context.Context, userID string) (plan.Status, error) {
	details, err := resolvePlan(ctx, s.profiles, userID)
	if err != nil {
		return plan.Status{}, err
	}
	snap, err := s.ledger.Snapshot(ctx, userID)
	if err != nil {
		return plan.Status{}, err
	}
	return plan.BuildStatus(details, snap), nil
}

// Catalog returns the purchasable tier metadata.
func (s *PlanService) Catalog() []plan.Metadata {
	return plan.CatalogMetadata()
}

// StartUpgrade creates a payment intent for the named tier. Free and
// unknown tiers are not purchasable.
func (s *PlanService) StartUpgrade(ctx context.Context, userID, rawTier string) (payments.PaymentIntent, error) {
	if s.pay == nil {
		return payments.PaymentIntent{}, fmt.Errorf("payments not configured: %w", model.ErrFailedPrecondition)
	}
	tier := plan.NormalizeTier(rawTier)
	meta, ok := plan.MetadataFor(tier)
	if !ok || meta.PriceCents == 0 {
		return payments.PaymentIntent{}, fmt.Errorf("tier %q is not purchasable: %w", rawTier, model.ErrInvalidArgument)
	}
	return s.pay.CreatePaymentIntent(ctx, meta.PriceCents, "usd", userID)
}

// ConfirmUpgrade verifies a completed checkout session and moves the user
// onto the purchased tier. Sessions that are not paid leave the tier
// unchanged.
func (s *PlanService) ConfirmUpgrade(ctx context.Context, userID, sessionID, rawTier string) (plan.Status, error) {
	if s.pay == nil {
		return plan.Status{}, fmt.Errorf("payments not configured: %w", model.ErrFailedPrecondition)
	}
	tier := plan.NormalizeTier(rawTier)
	meta, ok := plan.MetadataFor(tier)
	if !ok || meta.PriceCents == 0 {
		return plan.Status{}, fmt.Errorf("tier %q is not purchasable: %w", rawTier, model.ErrInvalidArgument)
	}

	sess, err := s.pay.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return plan.Status{}, err
	}
	if sess.PaymentStatus != "paid" {
		return plan.Status{}, fmt.Errorf("checkout session %s is %s, not paid: %w",
			sessionID, sess.PaymentStatus, model.ErrFailedPrecondition)
	}
	if sess.AmountTotal < meta.PriceCents {
		return plan.Status{}, fmt.Errorf("checkout session paid %d, tier %s costs %d: %w",
			sess.AmountTotal, tier, meta.PriceCents, model.ErrFailedPrecondition)
	}

	// Ensure runs first so a paid checkout from a brand-new account still
	// lands on a document.
	if _, err := s.profiles.Ensure(ctx, userID, docstore.Document{}); err != nil {
		return plan.Status{}, err
	}
	if err := s.profiles.SetTier(ctx, userID, tier); err != nil {
		return plan.Status{}, err
	}
	return s.Status(ctx, userID)
}
