package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"splitbook/internal/core"
	"splitbook/internal/remote"
	"splitbook/internal/store"
)

func newTestRemote(t *testing.T) (*httptest.Server, *store.State) {
	t.Helper()
	state := store.NewState(store.NewMemory())
	srv := httptest.NewServer(NewSyncHandler(state, nil))
	t.Cleanup(srv.Close)
	return srv, state
}

func mustTx(t *testing.T, id string, cents int64) core.Transaction {
	t.Helper()
	tx, err := core.NewTransaction(id, core.NewDate(2025, 3, 10), "expense", core.Partner1,
		[]core.Split{{Category: "Groceries", Amount: core.Money{Cents: cents}}})
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}
	return tx
}

func TestSyncRoundTripThroughClient(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestRemote(t)
	client := remote.NewClient(remote.Config{Endpoint: srv.URL}, nil)

	push := []core.Transaction{mustTx(t, "t1", 1250), mustTx(t, "t2", 900)}
	budgets := core.BudgetMap{"Groceries": {Cents: 25000}}

	snap, err := client.Sync(ctx, push, budgets)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(snap.Transactions) != 2 {
		t.Fatalf("expected 2 transactions back, got %d", len(snap.Transactions))
	}
	byID := map[string]core.Transaction{}
	for _, tx := range snap.Transactions {
		byID[tx.ID] = tx
	}
	if byID["t1"].Total().Cents != 1250 || byID["t2"].Total().Cents != 900 {
		t.Fatalf("round trip changed totals: %+v", byID)
	}
	if snap.Budgets["Groceries"].Cents != 25000 {
		t.Fatalf("round trip changed budgets: %+v", snap.Budgets)
	}
}

func TestEmptyPayloadNeverDeletes(t *testing.T) {
	ctx := context.Background()
	srv, state := newTestRemote(t)
	if err := state.SaveTransactions(ctx, []core.Transaction{mustTx(t, "kept", 5000)}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := state.SaveBudgets(ctx, core.BudgetMap{"Rent": {Cents: 90000}}); err != nil {
		t.Fatalf("seed budgets: %v", err)
	}

	client := remote.NewClient(remote.Config{Endpoint: srv.URL}, nil)
	snap, err := client.Sync(ctx, nil, nil)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(snap.Transactions) != 1 || snap.Transactions[0].ID != "kept" {
		t.Fatalf("empty payload must not delete remote data, got %+v", snap.Transactions)
	}
	if snap.Budgets["Rent"].Cents != 90000 {
		t.Fatalf("empty payload must not delete remote budgets, got %+v", snap.Budgets)
	}
}

func TestNonEmptyPayloadReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	srv, state := newTestRemote(t)
	if err := state.SaveTransactions(ctx, []core.Transaction{mustTx(t, "old", 100)}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	client := remote.NewClient(remote.Config{Endpoint: srv.URL}, nil)
	snap, err := client.Sync(ctx, []core.Transaction{mustTx(t, "new", 200)}, nil)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(snap.Transactions) != 1 || snap.Transactions[0].ID != "new" {
		t.Fatalf("expected wholesale replacement, got %+v", snap.Transactions)
	}
}

func TestMalformedPayloadReportsRemoteError(t *testing.T) {
	srv, _ := newTestRemote(t)

	resp, err := http.Post(srv.URL, "text/plain", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var sr remote.SyncResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sr.Status != remote.StatusError || sr.Message == "" {
		t.Fatalf("expected error status with message, got %+v", sr)
	}
}

func TestUnknownActionRejected(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestRemote(t)

	client := remote.NewClient(remote.Config{Endpoint: srv.URL, Action: "wipe"}, nil)
	_, err := client.Sync(ctx, nil, nil)
	var re *remote.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected remote error for unknown action, got %v", err)
	}
}

func TestInvalidTransactionRejectedNothingStored(t *testing.T) {
	srv, state := newTestRemote(t)

	body := `{"action":"sync","transactions":[{"id":"bad","date":"2025-03-10","description":"","userId":"partner1","splits":[{"categoryName":"Rent","amount":10}]}],"budgets":{}}`
	resp, err := http.Post(srv.URL, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var sr remote.SyncResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sr.Status != remote.StatusError {
		t.Fatalf("expected error status, got %+v", sr)
	}
	stored, _ := state.Transactions(context.Background())
	if len(stored) != 0 {
		t.Fatalf("invalid payload must not be persisted, got %d", len(stored))
	}
}

func TestGetMethodRejected(t *testing.T) {
	srv, _ := newTestRemote(t)

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
