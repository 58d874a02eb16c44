// Package http hosts the reference remote store: an HTTP endpoint
// fulfilling the sync wire contract over its own durable KV state. The
// production remote may be anything that honors the same contract; this
// server exists so the protocol has a real host for development and tests.
package http

import (
	"net/http"
	"time"

	"splitbook/internal/log"
	"splitbook/internal/store"
)

// NewServer builds the remote store server with sane timeouts.
func NewServer(addr string, state *store.State, logger *log.Logger) *http.Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	mux := http.NewServeMux()
	handler := NewSyncHandler(state, logger)
	mux.Handle("/", log.Middleware(logger)(log.AccessLog(logger)(handler)))

	return &http.Server{
		Addr:           addr,
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
}
