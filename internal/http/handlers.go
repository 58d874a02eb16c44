package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"splitbook/internal/core"
	"splitbook/internal/log"
	"splitbook/internal/remote"
	"splitbook/internal/store"
)

const maxRequestBytes = 16 << 20

// SyncHandler implements the remote side of the sync contract:
//
//  1. an empty payload never deletes stored data;
//  2. a non-empty payload replaces the stored copy wholesale;
//  3. the response always carries the full post-write state.
type SyncHandler struct {
	state  *store.State
	logger *log.Logger
}

func NewSyncHandler(state *store.State, logger *log.Logger) *SyncHandler {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &SyncHandler{
		state:  state,
		logger: logger.WithComponent(log.ComponentHTTP),
	}
}

func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Clients send text/plain to dodge CORS preflight, so the method is the
	// only thing worth gating on.
	if r.Method != http.MethodPost {
		h.writeError(ctx, w, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		h.writeError(ctx, w, http.StatusOK, fmt.Sprintf("read payload: %v", err))
		return
	}

	var req remote.SyncRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(ctx, w, http.StatusOK, fmt.Sprintf("malformed payload: %v", err))
		return
	}
	if req.Action != remote.ActionSync {
		h.writeError(ctx, w, http.StatusOK, fmt.Sprintf("unknown action %q", req.Action))
		return
	}

	incoming, err := validateIncoming(req.Transactions)
	if err != nil {
		h.writeError(ctx, w, http.StatusOK, err.Error())
		return
	}

	// Last writer wins at whole-collection granularity. Empty collections
	// mean the client had nothing to push, never "delete everything".
	if len(incoming) > 0 {
		if err := h.state.SaveTransactions(ctx, incoming); err != nil {
			h.writeError(ctx, w, http.StatusOK, fmt.Sprintf("store transactions: %v", err))
			return
		}
	}
	if len(req.Budgets) > 0 {
		if err := h.state.SaveBudgets(ctx, req.Budgets); err != nil {
			h.writeError(ctx, w, http.StatusOK, fmt.Sprintf("store budgets: %v", err))
			return
		}
	}

	txns, err := h.state.Transactions(ctx)
	if err != nil {
		h.writeError(ctx, w, http.StatusOK, fmt.Sprintf("load transactions: %v", err))
		return
	}
	budgets, err := h.state.Budgets(ctx)
	if err != nil {
		h.writeError(ctx, w, http.StatusOK, fmt.Sprintf("load budgets: %v", err))
		return
	}
	if txns == nil {
		txns = []core.Transaction{}
	}

	h.logger.InfoContext(ctx, "Sync request served",
		log.FieldOperation, log.OpSync,
		"pushed", len(incoming),
		"stored", len(txns))

	h.writeJSON(ctx, w, http.StatusOK, remote.SyncResponse{
		Status:       remote.StatusSuccess,
		Transactions: txns,
		Budgets:      budgets,
	})
}

func validateIncoming(txns []core.Transaction) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(txns))
	seen := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction %q: %v", t.ID, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("duplicate transaction id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func (h *SyncHandler) writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	h.logger.WarnContext(ctx, "Sync request rejected",
		log.FieldOperation, log.OpSync,
		log.FieldError, message)
	h.writeJSON(ctx, w, status, remote.SyncResponse{
		Status:       remote.StatusError,
		Message:      message,
		Transactions: []core.Transaction{},
		Budgets:      core.BudgetMap{},
	})
}

func (h *SyncHandler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(ctx, "Failed to write response", log.FieldError, err)
	}
}
