package usage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystal-grimoire/backend/internal/docstore/memory"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/plan"
)

func fixedLedger(t *testing.T, at time.Time) *Ledger {
	t.Helper()
	l := NewLedger(memory.New())
	l.now = func() time.Time { return at }
	return l
}

func TestRecordActionIncrements(t *testing.T) {
	ctx := context.Background()
	l := fixedLedger(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	details := plan.Resolve(plan.TierFree)

	snap, err := l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.DailyCounts[plan.ActionIdentify])
	assert.Equal(t, 1, snap.LifetimeCounts[plan.ActionIdentify])
	assert.Equal(t, "2026-03-14", snap.LastResetDate)
}

func TestRecordActionEnforcesDailyLimit(t *testing.T) {
	ctx := context.Background()
	l := fixedLedger(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	details := plan.Resolve(plan.TierFree) // identify limit: 3

	for i := 0; i < 3; i++ {
		_, err := l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 0)
		require.NoError(t, err)
	}
	_, err := l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrResourceExhausted))
	assert.Contains(t, err.Error(), plan.ActionIdentify)
	assert.Contains(t, err.Error(), "3")
}

func TestRecordActionRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	l := fixedLedger(t, time.Now())
	details := plan.Resolve(plan.TierFree)

	_, err := l.RecordAction(ctx, "", plan.ActionIdentify, details, 0)
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))

	_, err = l.RecordAction(ctx, "u1", "time_travel", details, 0)
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))

	_, err = l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 5)
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))
}

func TestDayRolloverResetsDailyOnly(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC)
	l := fixedLedger(t, day1)
	details := plan.Resolve(plan.TierFree)

	for i := 0; i < 3; i++ {
		_, err := l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 0)
		require.NoError(t, err)
	}

	// Ten minutes later it is a new UTC day and the cap is fresh.
	l.now = func() time.Time { return day1.Add(10 * time.Minute) }
	snap, err := l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.DailyCounts[plan.ActionIdentify])
	assert.Equal(t, 4, snap.LifetimeCounts[plan.ActionIdentify], "lifetime totals survive the rollover")
	assert.Equal(t, "2026-03-15", snap.LastResetDate)
}

func TestConcurrentRecordsNeverExceedLimit(t *testing.T) {
	ctx := context.Background()
	l := fixedLedger(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	details := plan.Resolve(plan.TierFree) // identify limit: 3

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 0)
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range errs {
		if err == nil {
			granted++
		} else {
			require.True(t, errors.Is(err, model.ErrResourceExhausted), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 3, granted, "exactly the daily limit may succeed")

	snap, err := l.Snapshot(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.DailyCounts[plan.ActionIdentify])
}

func TestRemaining(t *testing.T) {
	ctx := context.Background()
	l := fixedLedger(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	details := plan.Resolve(plan.TierFree)

	left, capped, err := l.Remaining(ctx, "u1", plan.ActionIdentify, details)
	require.NoError(t, err)
	assert.True(t, capped)
	assert.Equal(t, 3, left)

	_, err = l.RecordAction(ctx, "u1", plan.ActionIdentify, details, 0)
	require.NoError(t, err)
	left, _, err = l.Remaining(ctx, "u1", plan.ActionIdentify, details)
	require.NoError(t, err)
	assert.Equal(t, 2, left)

	_, capped, err = l.Remaining(ctx, "u1", "time_travel", details)
	require.NoError(t, err)
	assert.False(t, capped)
}
