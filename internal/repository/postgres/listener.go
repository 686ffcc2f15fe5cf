package postgres

import (
	"context"
	"sync"
	"time"

	"equipment-tracker/internal/logger"

	"github.com/lib/pq"
)

// ChangeListener turns LISTEN/NOTIFY traffic on one channel into refresh
// signals. Bursts of notifications collapse into a single pending signal.
type ChangeListener struct {
	dsn     string
	channel string
	signals chan struct{}

	mu       sync.Mutex
	closed   bool
	listener *pq.Listener
}

func NewChangeListener(dsn, channel string) *ChangeListener {
	return &ChangeListener{
		dsn:     dsn,
		channel: channel,
		signals: make(chan struct{}, 1),
	}
}

// Changes delivers one value per coalesced batch of notifications.
func (l *ChangeListener) Changes() <-chan struct{} {
	return l.signals
}

// Run listens until ctx is done or Close is called. A reconnect also
// signals, since notifications may have been missed while the connection
// was down.
func (l *ChangeListener) Run(ctx context.Context) error {
	ln := pq.NewListener(l.dsn, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			logger.Warn("Change listener connection problem", "channel", l.channel, "event", ev, "error", err)
		case pq.ListenerEventReconnected:
			logger.Info("Change listener reconnected", "channel", l.channel)
			l.Notify()
		}
	})

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	l.listener = ln
	l.mu.Unlock()

	// Listen blocks until the first connection succeeds; closing unblocks it.
	stop := context.AfterFunc(ctx, l.Close)
	defer stop()

	if err := ln.Listen(l.channel); err != nil {
		if l.isClosed() {
			return nil
		}
		l.Close()
		return err
	}
	logger.Info("Listening for equipment changes", "channel", l.channel)

	for {
		select {
		case <-ctx.Done():
			l.Close()
			return nil
		case n, ok := <-ln.Notify:
			if !ok {
				return nil
			}
			// nil after a reconnect; handled by the event callback
			if n != nil {
				logger.Debug("Equipment change notification", "channel", n.Channel, "payload", n.Extra)
				l.Notify()
			}
		case <-time.After(90 * time.Second):
			go ln.Ping()
		}
	}
}

// Notify queues a refresh unless one is already pending.
func (l *ChangeListener) Notify() {
	select {
	case l.signals <- struct{}{}:
	default:
	}
}

// Close stops the listener. It is safe to call from any goroutine, before,
// during or after Run.
func (l *ChangeListener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.listener != nil {
		if err := l.listener.Close(); err != nil {
			logger.Warn("Failed to close change listener", "error", err)
		}
	}
}

func (l *ChangeListener) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
