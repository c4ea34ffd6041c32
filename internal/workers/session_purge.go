package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

// defaultPurgeInterval is used when the configured interval is missing or
// not positive.
const defaultPurgeInterval = time.Hour

// SessionPurgeWorker periodically deletes expired session rows. Expired
// sessions are already rejected on resolve, so the worker only reclaims
// storage; skipping a run never extends a session's life.
type SessionPurgeWorker struct {
	sessions store.SessionRepository
	interval time.Duration
	logger   *logger.Logger

	ctx context.Context
	wg  sync.WaitGroup
}

// NewSessionPurgeWorker creates a purge worker that runs every interval
// until ctx is cancelled. A zero or negative interval falls back to
// defaultPurgeInterval.
func NewSessionPurgeWorker(ctx context.Context, sessions store.SessionRepository, interval time.Duration, logger *logger.Logger) *SessionPurgeWorker {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}

	return &SessionPurgeWorker{
		sessions: sessions,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
	}
}

// Run implements Worker. It launches the purge loop in a background
// goroutine and returns immediately.
func (w *SessionPurgeWorker) Run() {
	w.wg.Add(1)
	go w.loop()
}

// Wait blocks until the purge loop has exited after the worker's context is
// cancelled. Used during graceful shutdown.
func (w *SessionPurgeWorker) Wait() {
	w.wg.Wait()
}

func (w *SessionPurgeWorker) loop() {
	defer w.wg.Done()

	w.logger.Info().Dur("interval", w.interval).Msg("session purge worker started")

	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info().Msg("session purge worker stopped")
			return
		case <-t.C:
			w.purge()
		}
	}
}

func (w *SessionPurgeWorker) purge() {
	deleted, err := w.sessions.DeleteExpired(w.ctx, time.Now())
	if err != nil {
		w.logger.Err(err).Msg("expired session purge failed")
		return
	}

	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("expired sessions purged")
	}
}
