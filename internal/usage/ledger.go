// Package usage tracks per-user action counters and the credit economy.
// All mutations run inside docstore transactions so concurrent requests
// cannot slip past a daily cap.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/plan"
)

// Day boundaries are computed in UTC regardless of the caller's locale.
const dayFormat = "2006-01-02"

// Ledger records actions against per-user usage documents.
type Ledger struct {
	store docstore.Store
	now   func() time.Time
}

func NewLedger(store docstore.Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

func usagePath(userID string) string { return "usage/" + userID }

// RecordAction atomically checks the user's daily limit for action and
// increments the daily and lifetime counters. claimedIncrement is what the
// client believes the increment should be; any value other than zero
// (unspecified) or one is rejected, since increments are fixed server-side.
func (l *Ledger) RecordAction(ctx context.Context, userID, action string, details model.PlanDetails, claimedIncrement int) (model.UsageSnapshot, error) {
	if userID == "" {
		return model.UsageSnapshot{}, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	if _, ok := plan.LookupAction(action); !ok {
		return model.UsageSnapshot{}, fmt.Errorf("unknown action %q: %w", action, model.ErrInvalidArgument)
	}
	if claimedIncrement != 0 && claimedIncrement != 1 {
		return model.UsageSnapshot{}, fmt.Errorf("increment for %s is fixed at 1, got %d: %w", action, claimedIncrement, model.ErrInvalidArgument)
	}

	var result model.UsageSnapshot
	err := l.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		snap, err := l.loadSnapshot(tx, userID)
		if err != nil {
			return err
		}
		if limit, ok := plan.DailyLimitFor(details, action); ok {
			if snap.DailyCounts[action] >= limit {
				return fmt.Errorf("daily limit of %d reached for %s on the %s plan: %w",
					limit, action, details.Tier, model.ErrResourceExhausted)
			}
		}
		snap.DailyCounts[action]++
		snap.LifetimeCounts[action]++
		snap.UpdatedAt = l.now().UTC()
		result = snap
		return l.saveSnapshot(tx, userID, snap)
	})
	if err != nil {
		return model.UsageSnapshot{}, err
	}
	return result, nil
}

// Snapshot returns the user's usage with the day rollover already applied.
// A user with no usage document gets an empty snapshot, not an error.
func (l *Ledger) Snapshot(ctx context.Context, userID string) (model.UsageSnapshot, error) {
	if userID == "" {
		return model.UsageSnapshot{}, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	var snap model.UsageSnapshot
	err := l.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		s, err := l.loadSnapshot(tx, userID)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	if err != nil {
		return model.UsageSnapshot{}, err
	}
	return snap, nil
}

// Remaining reports how many uses of action are left today, or ok=false
// when the plan places no cap on it.
func (l *Ledger) Remaining(ctx context.Context, userID, action string, details model.PlanDetails) (int, bool, error) {
	limit, capped := plan.DailyLimitFor(details, action)
	if !capped {
		return 0, false, nil
	}
	snap, err := l.Snapshot(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	left := limit - snap.DailyCounts[action]
	if left < 0 {
		left = 0
	}
	return left, true, nil
}

// loadSnapshot reads the usage document inside tx and applies the UTC day
// rollover: a stale LastResetDate clears DailyCounts but never touches
// lifetime counters.
func (l *Ledger) loadSnapshot(tx docstore.Tx, userID string) (model.UsageSnapshot, error) {
	today := l.now().UTC().Format(dayFormat)
	snap := model.UsageSnapshot{
		DailyCounts:    map[string]int{},
		LifetimeCounts: map[string]int{},
		LastResetDate:  today,
	}

	doc, err := tx.Get(usagePath(userID))
	if err != nil {
		if docstore.IsNotFound(err) {
			return snap, nil
		}
		return model.UsageSnapshot{}, err
	}
	if err := docstore.FromDocument(doc, &snap); err != nil {
		return model.UsageSnapshot{}, err
	}
	if snap.DailyCounts == nil {
		snap.DailyCounts = map[string]int{}
	}
	if snap.LifetimeCounts == nil {
		snap.LifetimeCounts = map[string]int{}
	}
	if snap.LastResetDate != today {
		snap.DailyCounts = map[string]int{}
		snap.LastResetDate = today
	}
	return snap, nil
}

func (l *Ledger) saveSnapshot(tx docstore.Tx, userID string, snap model.UsageSnapshot) error {
	doc, err := docstore.ToDocument(snap)
	if err != nil {
		return err
	}
	return tx.Set(usagePath(userID), doc, false)
}
