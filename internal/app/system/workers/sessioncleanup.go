// internal/app/system/workers/sessioncleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"go.uber.org/zap"
)

// Sweeper evicts idle in-memory session hooks. authsession.Registry
// satisfies it.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// SessionCleanup is a background worker that evicts idle session hooks and
// removes expired auth session records.
type SessionCleanup struct {
	hooks     Sweeper
	records   authsessions.Records
	log       *zap.Logger
	interval  time.Duration
	idleAfter time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewSessionCleanup creates a new session cleanup worker.
//
// Parameters:
//   - hooks: the session hook registry to sweep (may be nil)
//   - records: persisted auth sessions (may be nil)
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 1 minute)
//   - idleAfter: how long a hook must go unused before it is evicted
func NewSessionCleanup(hooks Sweeper, records authsessions.Records, logger *zap.Logger, interval, idleAfter time.Duration) *SessionCleanup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionCleanup{
		hooks:     hooks,
		records:   records,
		log:       logger,
		interval:  interval,
		idleAfter: idleAfter,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *SessionCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_after", w.idleAfter))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *SessionCleanup) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("session cleanup worker stopped")
}

func (w *SessionCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single cleanup pass.
func (w *SessionCleanup) RunOnce() {
	if w.hooks != nil {
		if n := w.hooks.Sweep(w.idleAfter); n > 0 {
			w.log.Info("evicted idle session hooks", zap.Int("count", n))
		}
	}

	if w.records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.records.DeleteExpired(ctx, w.now())
	if err != nil {
		w.log.Error("failed to delete expired auth sessions", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("deleted expired auth sessions", zap.Int64("count", count))
	}
}
