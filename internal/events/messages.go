package events

import (
	"encoding/json"
	"time"
)

// Change kinds published on the ledger change feed.
const (
	KindTransactionRecorded = "transaction_recorded"
	KindTransactionDeleted  = "transaction_deleted"
	KindSyncCompleted       = "sync_completed"
)

// ChangeMessage tells a companion device that the shared ledger changed.
// It carries only the kind and the affected id; consumers re-read state
// from their own store or trigger a sync.
type ChangeMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage creates a change message stamped with the current time.
func NewChangeMessage(kind, id string) *ChangeMessage {
	return &ChangeMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
