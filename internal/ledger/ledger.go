// Package ledger is the stateful service over the shared transaction set:
// create/delete, budget and profile configuration, and the equity and
// budget views derived on demand.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitbook/internal/core"
	"splitbook/internal/events"
	"splitbook/internal/log"
	"splitbook/internal/store"
)

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrAlreadyBalanced = errors.New("partners are already settled for this window")
)

// Notifier publishes ledger change notifications; nil disables them.
type Notifier interface {
	PublishChange(ctx context.Context, kind, id string) error
}

// Ledger mutates and reads the local shared state. All operations are
// user-triggered and serialized by the caller; there is no background
// scheduler.
type Ledger struct {
	state    *store.State
	registry core.Registry
	ratio    core.Ratio
	notifier Notifier
	logger   *log.Logger
}

func New(state *store.State, registry core.Registry, ratio core.Ratio, notifier Notifier, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Ledger{
		state:    state,
		registry: registry,
		ratio:    ratio,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentLedger),
	}
}

// Registry returns the category registry in use.
func (l *Ledger) Registry() core.Registry {
	return l.registry
}

// Ratio returns the configured split ratio.
func (l *Ledger) Ratio() core.Ratio {
	return l.ratio
}

// AddTransaction validates and appends a new transaction with a freshly
// generated id. Invalid input never reaches the stored set.
func (l *Ledger) AddTransaction(ctx context.Context, date core.Date, description string, payer core.PartnerRole, splits []core.Split) (core.Transaction, error) {
	t, err := core.NewTransaction(uuid.NewString(), date, description, payer, splits)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	txns, err := l.state.Transactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	txns = append(txns, t)
	if err := l.state.SaveTransactions(ctx, txns); err != nil {
		return core.Transaction{}, err
	}

	l.logger.InfoContext(ctx, "Transaction recorded",
		log.FieldOperation, log.OpCreate,
		log.FieldTransactionID, t.ID,
		log.FieldPayer, string(t.Payer),
		log.FieldAmountCents, t.Total().Cents)

	l.notify(ctx, events.KindTransactionRecorded, t.ID)
	return t, nil
}

// DeleteTransaction removes a transaction by id. Edits are modeled as
// delete plus recreate; there is no partial edit flow.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	txns, err := l.state.Transactions(ctx)
	if err != nil {
		return err
	}
	kept := txns[:0]
	found := false
	for _, t := range txns {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("delete transaction %s: %w", id, ErrNotFound)
	}
	if err := l.state.SaveTransactions(ctx, kept); err != nil {
		return err
	}

	l.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id)

	l.notify(ctx, events.KindTransactionDeleted, id)
	return nil
}

// Transactions returns the current local transaction set.
func (l *Ledger) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return l.state.Transactions(ctx)
}

// Budgets returns the configured monthly limits.
func (l *Ledger) Budgets(ctx context.Context) (core.BudgetMap, error) {
	return l.state.Budgets(ctx)
}

// SetBudget sets one category's monthly limit. A zero limit unsets it.
func (l *Ledger) SetBudget(ctx context.Context, category string, limit core.Money) error {
	if limit.Cents < 0 {
		return core.ErrNegativeAmount
	}
	budgets, err := l.state.Budgets(ctx)
	if err != nil {
		return err
	}
	budgets = budgets.Clone()
	if limit.Cents == 0 {
		delete(budgets, category)
	} else {
		budgets[category] = limit
	}
	return l.state.SaveBudgets(ctx, budgets)
}

// ReplaceBudgets swaps the whole budget configuration, the way the edit
// surface saves it.
func (l *Ledger) ReplaceBudgets(ctx context.Context, budgets core.BudgetMap) error {
	for name, limit := range budgets {
		if limit.Cents < 0 {
			return fmt.Errorf("budget %q: %w", name, core.ErrNegativeAmount)
		}
	}
	return l.state.SaveBudgets(ctx, budgets)
}

// Profile returns the partner display names.
func (l *Ledger) Profile(ctx context.Context) (core.PartnerProfile, error) {
	return l.state.Profile(ctx)
}

// SaveProfile replaces the partner display names wholesale.
func (l *Ledger) SaveProfile(ctx context.Context, profile core.PartnerProfile) error {
	return l.state.SaveProfile(ctx, profile)
}

// Equity computes the settlement view for a window. Pure derivation; no
// state is written.
func (l *Ledger) Equity(ctx context.Context, w core.Window) (core.Settlement, error) {
	txns, err := l.state.Transactions(ctx)
	if err != nil {
		return core.Settlement{}, err
	}
	return core.ComputeEquity(txns, w, l.ratio), nil
}

// SettleUp synthesizes a balancing transaction in the reserved settlement
// category, paid by the owing partner, sized so the window's equity comes
// out balanced afterwards. Unlike Equity this appends to the stored set.
func (l *Ledger) SettleUp(ctx context.Context, w core.Window) (core.Transaction, error) {
	txns, err := l.state.Transactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	settlement := core.ComputeEquity(txns, w, l.ratio)
	if settlement.Balanced {
		return core.Transaction{}, ErrAlreadyBalanced
	}

	amount := core.SettlementAmount(settlement, l.ratio)
	now := time.Now().UTC()
	date := now
	if !w.Contains(now) {
		// Settling a past window: date the adjustment inside it so the
		// recomputed equity actually picks it up.
		date = w.End.Add(-time.Second)
	}

	t, err := core.NewTransaction(
		uuid.NewString(),
		core.DateOf(date),
		"Settle up",
		settlement.Owing,
		[]core.Split{{Category: core.SettlementCategory, Amount: amount}},
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("build settlement transaction: %w", err)
	}

	txns = append(txns, t)
	if err := l.state.SaveTransactions(ctx, txns); err != nil {
		return core.Transaction{}, err
	}

	l.logger.InfoContext(ctx, "Settlement recorded",
		log.FieldOperation, log.OpSettle,
		log.FieldTransactionID, t.ID,
		log.FieldPayer, string(t.Payer),
		log.FieldAmountCents, amount.Cents)

	l.notify(ctx, events.KindTransactionRecorded, t.ID)
	return t, nil
}

// Budget computes the per-category spend-vs-limit view for a window.
func (l *Ledger) Budget(ctx context.Context, w core.Window) (core.BudgetSummary, error) {
	txns, err := l.state.Transactions(ctx)
	if err != nil {
		return core.BudgetSummary{}, err
	}
	budgets, err := l.state.Budgets(ctx)
	if err != nil {
		return core.BudgetSummary{}, err
	}
	return core.AggregateBudget(txns, budgets, l.registry, w), nil
}

func (l *Ledger) notify(ctx context.Context, kind, id string) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.PublishChange(ctx, kind, id); err != nil {
		l.logger.WarnContext(ctx, "Failed to publish change notification",
			log.FieldError, err,
			log.FieldTransactionID, id)
	}
}
