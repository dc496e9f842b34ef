package usage

import (
	"context"
	"fmt"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
)

// Earn sources and how often each may pay out per UTC day.
const (
	EarnShareCard          = "share_card"
	EarnMeditationComplete = "meditation_complete"
	EarnCrystalIdentifyNew = "crystal_identify_new"
	EarnJournalEntry       = "journal_entry"
	EarnRitualComplete     = "ritual_complete"
)

type earnRule struct {
	DailyCap int
	Reward   int
}

var earnRules = map[string]earnRule{
	EarnShareCard:          {DailyCap: 3, Reward: 2},
	EarnMeditationComplete: {DailyCap: 1, Reward: 5},
	EarnCrystalIdentifyNew: {DailyCap: 3, Reward: 3},
	EarnJournalEntry:       {DailyCap: 1, Reward: 2},
	EarnRitualComplete:     {DailyCap: 1, Reward: 5},
}

// EarnSources lists the valid earn sources in no particular order.
func EarnSources() []string {
	out := make([]string, 0, len(earnRules))
	for src := range earnRules {
		out = append(out, src)
	}
	return out
}

// Wallet manages credit balances stored one document per user.
type Wallet struct {
	ledger *Ledger
}

func NewWallet(ledger *Ledger) *Wallet {
	return &Wallet{ledger: ledger}
}

func walletPath(userID string) string { return "wallets/" + userID }

// Earn credits the user for completing source, enforcing the per-source
// daily cap. The awarded amount is fixed by the source; a capped-out source
// returns ErrResourceExhausted.
func (w *Wallet) Earn(ctx context.Context, userID, source string) (model.CreditWallet, error) {
	if userID == "" {
		return model.CreditWallet{}, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	rule, ok := earnRules[source]
	if !ok {
		return model.CreditWallet{}, fmt.Errorf("unknown earn source %q: %w", source, model.ErrInvalidArgument)
	}

	var result model.CreditWallet
	err := w.ledger.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		wallet, err := w.load(tx, userID)
		if err != nil {
			return err
		}
		if wallet.DailyEarnCount[source] >= rule.DailyCap {
			return fmt.Errorf("daily earn cap of %d reached for %s: %w",
				rule.DailyCap, source, model.ErrResourceExhausted)
		}
		wallet.DailyEarnCount[source]++
		wallet.Credits += rule.Reward
		wallet.LifetimeEarned += rule.Reward
		wallet.UpdatedAt = w.ledger.now().UTC()
		result = wallet
		return w.save(tx, userID, wallet)
	})
	if err != nil {
		return model.CreditWallet{}, err
	}
	return result, nil
}

// Spend deducts amount from the user's balance. Overdrafts are refused with
// ErrFailedPrecondition, leaving the wallet untouched.
func (w *Wallet) Spend(ctx context.Context, userID string, amount int) (model.CreditWallet, error) {
	if userID == "" {
		return model.CreditWallet{}, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	if amount <= 0 {
		return model.CreditWallet{}, fmt.Errorf("spend amount must be positive, got %d: %w", amount, model.ErrInvalidArgument)
	}

	var result model.CreditWallet
	err := w.ledger.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		wallet, err := w.load(tx, userID)
		if err != nil {
			return err
		}
		if wallet.Credits < amount {
			return fmt.Errorf("insufficient credits: have %d, need %d: %w",
				wallet.Credits, amount, model.ErrFailedPrecondition)
		}
		wallet.Credits -= amount
		wallet.UpdatedAt = w.ledger.now().UTC()
		result = wallet
		return w.save(tx, userID, wallet)
	})
	if err != nil {
		return model.CreditWallet{}, err
	}
	return result, nil
}

// Balance returns the wallet with the day rollover applied.
func (w *Wallet) Balance(ctx context.Context, userID string) (model.CreditWallet, error) {
	if userID == "" {
		return model.CreditWallet{}, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	var result model.CreditWallet
	err := w.ledger.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		wallet, err := w.load(tx, userID)
		if err != nil {
			return err
		}
		result = wallet
		return nil
	})
	if err != nil {
		return model.CreditWallet{}, err
	}
	return result, nil
}

func (w *Wallet) load(tx docstore.Tx, userID string) (model.CreditWallet, error) {
	today := w.ledger.now().UTC().Format(dayFormat)
	wallet := model.CreditWallet{
		DailyEarnCount: map[string]int{},
		LastResetDate:  today,
	}

	doc, err := tx.Get(walletPath(userID))
	if err != nil {
		if docstore.IsNotFound(err) {
			return wallet, nil
		}
		return model.CreditWallet{}, err
	}
	if err := docstore.FromDocument(doc, &wallet); err != nil {
		return model.CreditWallet{}, err
	}
	if wallet.DailyEarnCount == nil {
		wallet.DailyEarnCount = map[string]int{}
	}
	if wallet.LastResetDate != today {
		wallet.DailyEarnCount = map[string]int{}
		wallet.LastResetDate = today
	}
	return wallet, nil
}

func (w *Wallet) save(tx docstore.Tx, userID string, wallet model.CreditWallet) error {
	doc, err := docstore.ToDocument(wallet)
	if err != nil {
		return err
	}
	return tx.Set(walletPath(userID), doc, false)
}
