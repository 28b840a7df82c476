package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/logger"
)

const (
	// DefaultSessionTTL is how long a chat session may stay idle
	DefaultSessionTTL = 2 * time.Hour
)

// SessionSweeper closes chat sessions idle for longer than maxIdle.
type SessionSweeper interface {
	Sweep(now time.Time, maxIdle time.Duration) int
}

// SessionGC handles cleanup of idle chat sessions
type SessionGC struct {
	sessions SessionSweeper
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionGC creates a new session garbage collector
func NewSessionGC(
	sessions SessionSweeper,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *SessionGC {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionGC{
		sessions: sessions,
		logger:   log.Component("session_gc"),
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection
func (gc *SessionGC) Start(ctx context.Context) error {
	ticker := time.NewTicker(gc.interval)
	go func() {
		defer close(gc.doneCh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gc.Collect(ctx)
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector and waits for it to exit
func (gc *SessionGC) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
	<-gc.doneCh
}

// Collect closes the idle sessions and returns how many went
func (gc *SessionGC) Collect(_ context.Context) int {
	removed := gc.sessions.Sweep(gc.now(), gc.ttl)
	if removed > 0 {
		gc.logger.Info("garbage collected idle chat sessions",
			logger.Int("sessions_closed", removed),
			logger.Duration("idle_for", gc.ttl))
	} else {
		gc.logger.Debug("no chat sessions to garbage collect")
	}
	return removed
}
