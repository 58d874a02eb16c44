// Package syncer orchestrates one sync invocation: load local state, run
// the round trip, guard against remote wipes, and adopt the remote snapshot
// all-or-nothing.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"splitbook/internal/core"
	"splitbook/internal/events"
	"splitbook/internal/log"
	"splitbook/internal/remote"
	"splitbook/internal/store"
)

var (
	// ErrSyncInFlight rejects a second trigger while one invocation is
	// still running; syncs are strictly serialized per client.
	ErrSyncInFlight = errors.New("a sync is already in flight")

	// ErrDataLossAborted reports a skipped sync: the remote answered with
	// zero transactions while local had some, and no confirmation to
	// discard local data was given.
	ErrDataLossAborted = errors.New("sync skipped: remote returned no transactions for a non-empty local set")
)

type (
	// Peer is the remote side of the sync round trip.
	Peer interface {
		Sync(ctx context.Context, txns []core.Transaction, budgets core.BudgetMap) (*remote.Snapshot, error)
	}

	// Notifier publishes ledger change notifications; nil disables them.
	Notifier interface {
		PublishChange(ctx context.Context, kind, id string) error
	}

	// ConfirmFunc asks the user whether an empty remote snapshot may
	// replace localCount local transactions. Without a confirmer the
	// answer is always no.
	ConfirmFunc func(ctx context.Context, localCount int) (bool, error)

	// Config holds the optional collaborators of a Syncer.
	Config struct {
		Confirm  ConfirmFunc
		Notifier Notifier
		Logger   *log.Logger
	}

	// Result is the adopted authoritative state after a successful sync.
	Result struct {
		Transactions []core.Transaction
		Budgets      core.BudgetMap
		SyncedAt     time.Time
	}

	// Syncer runs sync invocations against one peer and one local state.
	Syncer struct {
		state    *store.State
		peer     Peer
		confirm  ConfirmFunc
		notifier Notifier
		logger   *log.Logger
		busy     atomic.Bool
	}
)

func New(state *store.State, peer Peer, cfg Config) *Syncer {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Syncer{
		state:    state,
		peer:     peer,
		confirm:  cfg.Confirm,
		notifier: cfg.Notifier,
		logger:   logger.WithComponent(log.ComponentSync),
	}
}

// Busy reports whether an invocation is currently in flight.
func (s *Syncer) Busy() bool {
	return s.busy.Load()
}

// Sync runs one full invocation. On any error local state is left exactly
// as it was; on success the returned snapshot has been persisted as the new
// local state and stamped as the last sync.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrSyncInFlight
	}
	defer s.busy.Store(false)

	local, err := s.state.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local transactions: %w", err)
	}
	budgets, err := s.state.Budgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local budgets: %w", err)
	}

	s.logger.InfoContext(ctx, "Sync started",
		log.FieldOperation, log.OpSync,
		log.FieldCount, len(local))

	snap, err := s.peer.Sync(ctx, local, budgets)
	if err != nil {
		s.logger.WarnContext(ctx, "Sync failed, local state untouched",
			log.FieldOperation, log.OpSync,
			log.FieldError, err)
		return nil, err
	}

	adopted, err := sanitizeSnapshot(snap.Transactions)
	if err != nil {
		// A snapshot violating domain invariants is as unusable as an
		// undecodable response.
		return nil, &remote.TransportError{Err: err}
	}

	if len(local) > 0 && len(adopted) == 0 {
		ok, err := s.confirmWipe(ctx, len(local))
		if err != nil {
			return nil, fmt.Errorf("confirm overwrite: %w", err)
		}
		if !ok {
			s.logger.WarnContext(ctx, "Data-loss guard triggered, sync skipped",
				log.FieldOperation, log.OpSync,
				log.FieldCount, len(local))
			return nil, ErrDataLossAborted
		}
		s.logger.WarnContext(ctx, "Empty remote snapshot adoption confirmed",
			log.FieldOperation, log.OpSync,
			log.FieldCount, len(local))
	}

	// The KV has no multi-key transaction, so a failure between these two
	// saves leaves a partial adoption; the next successful sync replaces
	// both collections wholesale and repairs it.
	if err := s.state.SaveTransactions(ctx, adopted); err != nil {
		return nil, fmt.Errorf("adopt transactions: %w", err)
	}
	if err := s.state.SaveBudgets(ctx, snap.Budgets); err != nil {
		return nil, fmt.Errorf("adopt budgets: %w", err)
	}
	now := time.Now().UTC()
	if err := s.state.SetLastSync(ctx, now); err != nil {
		s.logger.WarnContext(ctx, "Failed to stamp last sync",
			log.FieldError, err)
	}

	if s.notifier != nil {
		if err := s.notifier.PublishChange(ctx, events.KindSyncCompleted, ""); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish sync notification",
				log.FieldError, err)
		}
	}

	s.logger.InfoContext(ctx, "Sync completed, remote snapshot adopted",
		log.FieldOperation, log.OpSync,
		log.FieldCount, len(adopted))

	return &Result{
		Transactions: adopted,
		Budgets:      snap.Budgets,
		SyncedAt:     now,
	}, nil
}

func (s *Syncer) confirmWipe(ctx context.Context, localCount int) (bool, error) {
	if s.confirm == nil {
		return false, nil
	}
	return s.confirm(ctx, localCount)
}

// sanitizeSnapshot validates every remote transaction and drops duplicate
// ids (first occurrence wins), preserving id uniqueness across merges.
func sanitizeSnapshot(txns []core.Transaction) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(txns))
	seen := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("remote transaction %q: %w", t.ID, err)
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
