// splitbook-listen keeps a device's local ledger fresh: it consumes ledger
// change notifications from the shared feed and runs a sync for each one,
// so a change recorded on the companion device shows up without a manual
// sync trigger.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

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
	if !cfg.EventsEnabled {
		logger.Error("EVENTS_ENABLED=true is required to listen for changes")
		os.Exit(1)
	}
	if cfg.RemoteEndpoint == "" {
		logger.Error("REMOTE_ENDPOINT is required to listen for changes")
		os.Exit(1)
	}

	kv, err := store.NewSQLite(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open local store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer kv.Close()
	state := store.NewState(kv)

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize events client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	peer := remote.NewClient(remote.Config{
		Endpoint: cfg.RemoteEndpoint,
		Timeout:  cfg.SyncTimeout,
	}, logger.WithComponent(log.ComponentRemote))

	// No notifier: a listener-triggered sync must not publish further
	// changes, or two listening devices would re-trigger each other without
	// end. No confirmer either, so the data-loss guard always skips when
	// unattended.
	s := syncer.New(state, peer, syncer.Config{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Listening for ledger changes",
		log.FieldEndpoint, cfg.RemoteEndpoint,
		"queue", cfg.AMQPQueue)

	err = client.ConsumeChanges(ctx, func(msg *events.ChangeMessage) error {
		logger.Info("Ledger change received", "kind", msg.Kind, "id", msg.ID)

		result, err := s.Sync(ctx)
		switch {
		case errors.Is(err, syncer.ErrSyncInFlight), errors.Is(err, syncer.ErrDataLossAborted):
			// Handled: the next change notification retries; requeueing
			// here would just spin on the same message.
			logger.Warn("Change not applied", log.FieldError, err)
			return nil
		case err != nil:
			return err
		}

		logger.Info("Ledger refreshed",
			log.FieldCount, len(result.Transactions),
			"synced_at", result.SyncedAt)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Change consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Listener stopped")
}
