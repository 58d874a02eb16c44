// splitbook-sync runs one user-triggered sync of the local ledger against
// the configured remote store. The data-loss guard asks for confirmation on
// the terminal before an empty remote snapshot may replace local data.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"splitbook/internal/config"
	"splitbook/internal/events"
	"splitbook/internal/log"
	"splitbook/internal/remote"
	"splitbook/internal/store"
	"splitbook/internal/syncer"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()

	kv, err := store.NewSQLite(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open local store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer kv.Close()
	state := store.NewState(kv)

	endpoint, err := resolveEndpoint(ctx, cfg, state)
	if err != nil {
		logger.Error("No remote endpoint configured", log.FieldError, err)
		os.Exit(1)
	}

	var notifier syncer.Notifier
	if cfg.EventsEnabled {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize events client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		notifier = client
	}

	peer := remote.NewClient(remote.Config{
		Endpoint: endpoint,
		Timeout:  cfg.SyncTimeout,
	}, logger.WithComponent(log.ComponentRemote))

	s := syncer.New(state, peer, syncer.Config{
		Confirm:  confirmOnTerminal,
		Notifier: notifier,
		Logger:   logger,
	})

	result, err := s.Sync(ctx)
	switch {
	case errors.Is(err, syncer.ErrDataLossAborted):
		logger.Warn("Sync skipped, local data kept", log.FieldError, err)
		os.Exit(2)
	case err != nil:
		logger.Error("Sync failed, local state unchanged", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Sync completed",
		log.FieldCount, len(result.Transactions),
		"budget_categories", len(result.Budgets),
		"synced_at", result.SyncedAt)
}

// resolveEndpoint prefers REMOTE_ENDPOINT from the environment and falls
// back to the endpoint stored by a previous run, so the env var only has to
// be set once per device.
func resolveEndpoint(ctx context.Context, cfg *config.Config, state *store.State) (string, error) {
	if cfg.RemoteEndpoint != "" {
		if err := state.SaveRemoteEndpoint(ctx, cfg.RemoteEndpoint); err != nil {
			return "", fmt.Errorf("store remote endpoint: %w", err)
		}
		return cfg.RemoteEndpoint, nil
	}
	stored, ok, err := state.RemoteEndpoint(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("set REMOTE_ENDPOINT (it is remembered for later runs)")
	}
	return stored, nil
}

// confirmOnTerminal is the human-in-the-loop for the data-loss guard.
func confirmOnTerminal(_ context.Context, localCount int) (bool, error) {
	fmt.Fprintf(os.Stderr,
		"Remote store returned no transactions but %d exist locally.\n"+
			"Adopting it would DELETE all local transactions. Continue? [y/N] ",
		localCount)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
