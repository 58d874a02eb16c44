package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"splitbook/internal/core"
	"splitbook/internal/log"
)

const (
	// DefaultTimeout bounds the whole round trip; expiry is a transport
	// failure like any other.
	DefaultTimeout = 20 * time.Second

	// The remote deployment is commonly cross-origin; text/plain keeps the
	// request a CORS "simple request" so no preflight is issued.
	requestContentType = "text/plain"

	maxResponseBytes = 16 << 20
)

// Config holds client configuration.
type Config struct {
	Endpoint string
	Action   string        // defaults to ActionSync
	Timeout  time.Duration // defaults to DefaultTimeout
}

// Client performs sync round trips against one remote endpoint.
type Client struct {
	endpoint string
	action   string
	httpc    *http.Client
	logger   *log.Logger
}

func NewClient(cfg Config, logger *log.Logger) *Client {
	if cfg.Action == "" {
		cfg.Action = ActionSync
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentRemote)
	}
	return &Client{
		endpoint: cfg.Endpoint,
		action:   cfg.Action,
		httpc:    &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

// Sync pushes the full local collections and returns the remote's full
// post-write state. Errors are either *TransportError or *RemoteError; in
// both cases the caller must leave local state untouched.
func (c *Client) Sync(ctx context.Context, txns []core.Transaction, budgets core.BudgetMap) (*Snapshot, error) {
	if txns == nil {
		txns = []core.Transaction{}
	}
	if budgets == nil {
		budgets = core.BudgetMap{}
	}
	body, err := json.Marshal(SyncRequest{
		Action:       c.action,
		Transactions: txns,
		Budgets:      budgets,
	})
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", requestContentType)

	c.logger.DebugContext(ctx, "Sync round trip started",
		log.FieldEndpoint, c.endpoint,
		log.FieldCount, len(txns))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	var sr SyncResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		// Malformed responses are indistinguishable from a broken pipe for
		// the caller's purposes.
		return nil, &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	switch sr.Status {
	case StatusSuccess:
	case StatusError:
		return nil, &RemoteError{Message: sr.Message}
	default:
		return nil, &TransportError{Err: fmt.Errorf("unknown response status %q", sr.Status)}
	}

	snap := &Snapshot{
		Transactions: sr.Transactions,
		Budgets:      sr.Budgets,
	}
	if snap.Transactions == nil {
		snap.Transactions = []core.Transaction{}
	}
	if snap.Budgets == nil {
		snap.Budgets = core.BudgetMap{}
	}

	c.logger.InfoContext(ctx, "Sync round trip completed",
		log.FieldEndpoint, c.endpoint,
		log.FieldCount, len(snap.Transactions))

	return snap, nil
}
