// Package store is the local persistence boundary: a durable key-value
// store holding JSON documents, plus a typed layer over the fixed key
// scheme used by the ledger and the sync protocol.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"splitbook/internal/core"
)

// Local persistence keys. Each key holds one JSON document.
const (
	KeyTransactions   = "transactions"
	KeyBudgets        = "budgets"
	KeyProfile        = "partner_profile"
	KeyLastSync       = "last_sync"
	KeyRemoteEndpoint = "remote_endpoint"
)

// KV is the minimal durable store contract: load and save JSON by key.
type KV interface {
	// Load returns the stored document and whether the key exists.
	Load(ctx context.Context, key string) (json.RawMessage, bool, error)
	Save(ctx context.Context, key string, value json.RawMessage) error
}

// State is the typed view of the ledger's local state on top of a KV.
type State struct {
	kv KV
}

func NewState(kv KV) *State {
	return &State{kv: kv}
}

func load[T any](ctx context.Context, kv KV, key string, out *T) (bool, error) {
	raw, ok, err := kv.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func save(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Transactions returns the stored transaction set, empty when none exists.
func (s *State) Transactions(ctx context.Context) ([]core.Transaction, error) {
	var txns []core.Transaction
	if _, err := load(ctx, s.kv, KeyTransactions, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *State) SaveTransactions(ctx context.Context, txns []core.Transaction) error {
	if txns == nil {
		txns = []core.Transaction{}
	}
	return save(ctx, s.kv, KeyTransactions, txns)
}

// Budgets returns the stored budget map, empty when none exists.
func (s *State) Budgets(ctx context.Context) (core.BudgetMap, error) {
	budgets := core.BudgetMap{}
	if _, err := load(ctx, s.kv, KeyBudgets, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (s *State) SaveBudgets(ctx context.Context, budgets core.BudgetMap) error {
	if budgets == nil {
		budgets = core.BudgetMap{}
	}
	return save(ctx, s.kv, KeyBudgets, budgets)
}

// Profile returns the stored partner display names, or the defaults when
// never configured.
func (s *State) Profile(ctx context.Context) (core.PartnerProfile, error) {
	profile := core.PartnerProfile{}
	ok, err := load(ctx, s.kv, KeyProfile, &profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return core.DefaultProfile(), nil
	}
	return profile, nil
}

func (s *State) SaveProfile(ctx context.Context, profile core.PartnerProfile) error {
	return save(ctx, s.kv, KeyProfile, profile)
}

// LastSync returns the timestamp of the last adopted sync, if any.
func (s *State) LastSync(ctx context.Context) (time.Time, bool, error) {
	var ts time.Time
	ok, err := load(ctx, s.kv, KeyLastSync, &ts)
	if err != nil {
		return time.Time{}, false, err
	}
	return ts, ok, nil
}

func (s *State) SetLastSync(ctx context.Context, ts time.Time) error {
	return save(ctx, s.kv, KeyLastSync, ts)
}

// RemoteEndpoint returns the configured remote store URL, if stored.
func (s *State) RemoteEndpoint(ctx context.Context) (string, bool, error) {
	var url string
	ok, err := load(ctx, s.kv, KeyRemoteEndpoint, &url)
	if err != nil {
		return "", false, err
	}
	return url, ok, nil
}

func (s *State) SaveRemoteEndpoint(ctx context.Context, url string) error {
	return save(ctx, s.kv, KeyRemoteEndpoint, url)
}
