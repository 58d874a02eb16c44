// Package remote implements the client side of the sync wire contract: a
// single round trip that pushes the full local collections and returns the
// remote store's full post-write state.
package remote

import "splitbook/internal/core"

// ActionSync is the request discriminator the remote store dispatches on.
const ActionSync = "sync"

// Response status discriminators.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type (
	// SyncRequest is the wire request body. Empty collections mean
	// "nothing to push, tell me what you have" — never "delete".
	SyncRequest struct {
		Action       string             `json:"action"`
		Transactions []core.Transaction `json:"transactions"`
		Budgets      core.BudgetMap     `json:"budgets"`
	}

	// SyncResponse is the wire response body. On success Transactions and
	// Budgets carry the remote's full current state.
	SyncResponse struct {
		Status       string             `json:"status"`
		Message      string             `json:"message,omitempty"`
		Transactions []core.Transaction `json:"transactions"`
		Budgets      core.BudgetMap     `json:"budgets"`
	}

	// Snapshot is the authoritative remote state returned by a successful
	// round trip.
	Snapshot struct {
		Transactions []core.Transaction
		Budgets      core.BudgetMap
	}
)
