package rpcstate

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// Server exposes /status and /metrics. It is the one concrete Handle
// implementation this repo ships: it counts blocks/accounts notifications
// and answers /status with that count plus a per-process session token,
// without persisting anything.
type Server struct {
	startedAt    time.Time
	sessionToken string
	blocksSeen   int64
	accountsSeen int64

	httpServer *http.Server
}

// NewServer constructs a Server bound to listenAddr.
func NewServer(listenAddr string) *Server {
	s := &Server{
		startedAt:    time.Now(),
		sessionToken: uuid.NewString(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.Handle("/metrics", promhttp.Handler())
	s.httpServer = &http.Server{
		Addr:    listenAddr,
		Handler: loggingMiddleware(mux),
	}
	return s
}

// NotifyBlock satisfies Handle: it counts the block, nothing more.
func (s *Server) NotifyBlock(blockID types.BlockId) {
	atomic.AddInt64(&s.blocksSeen, 1)
}

// NotifyAccounts satisfies Handle: it counts touched accounts, nothing
// more — no account-level state is retained.
func (s *Server) NotifyAccounts(blockID types.Hash256, changed, deleted []types.AccountID) {
	atomic.AddInt64(&s.accountsSeen, int64(len(changed)+len(deleted)))
}

// OnAccountsTouched satisfies blockhandler.AccountSetObserver by
// delegating to NotifyAccounts, so a single Server can serve as both the
// RPC-state Handle and the Block Handler's account-set sink.
func (s *Server) OnAccountsTouched(blockID types.Hash256, changed, deleted []types.AccountID) {
	s.NotifyAccounts(blockID, changed, deleted)
}

// ListenAndServe runs the status server until it is shut down or fails.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type statusResponse struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	SessionToken  string  `json:"session_token"`
	BlocksSeen    int64   `json:"blocks_seen"`
	AccountsSeen  int64   `json:"accounts_seen"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		SessionToken:  s.sessionToken,
		BlocksSeen:    atomic.LoadInt64(&s.blocksSeen),
		AccountsSeen:  atomic.LoadInt64(&s.accountsSeen),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Errorf("rpcstate: encoding status response")
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debugf("rpcstate: handled request")
	})
}
