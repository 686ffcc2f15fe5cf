package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/logger"
	"equipment-tracker/internal/metrics"
	"equipment-tracker/internal/service"
)

// SSEBroker fans equipment snapshots out to connected stream clients.
// Client channels are only closed while mu is held, so broadcast never
// sends on a closed channel.
type SSEBroker struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	closed  bool
	metrics *metrics.Metrics
}

func NewSSEBroker(m *metrics.Metrics) *SSEBroker {
	return &SSEBroker{clients: make(map[chan []byte]struct{}), metrics: m}
}

// Subscribe registers a client. After Close it returns an already closed channel.
func (b *SSEBroker) Subscribe() chan []byte {
	ch := make(chan []byte, 4)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.clients[ch] = struct{}{}
	if b.metrics != nil {
		b.metrics.SubscriberAdded()
	}
	return ch
}

func (b *SSEBroker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; !ok {
		return
	}
	b.remove(ch)
}

// Close disconnects every client; their stream handlers return.
func (b *SSEBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for ch := range b.clients {
		b.remove(ch)
	}
}

// remove requires mu.
func (b *SSEBroker) remove(ch chan []byte) {
	delete(b.clients, ch)
	close(ch)
	if b.metrics != nil {
		b.metrics.SubscriberRemoved()
	}
}

// Subscribers returns the number of connected clients.
func (b *SSEBroker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Publish sends the full collection to every client. Slow clients miss the frame.
func (b *SSEBroker) Publish(items []domain.Equipment) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	b.broadcast(payload)
	return nil
}

func (b *SSEBroker) broadcast(payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- payload:
		default:
		}
	}
}

// Refresher re-fetches the whole equipment table whenever a change signal
// arrives and publishes it to the broker.
type Refresher struct {
	equipment service.EquipmentService
	broker    *SSEBroker
	metrics   *metrics.Metrics
}

func NewRefresher(equipment service.EquipmentService, broker *SSEBroker, m *metrics.Metrics) *Refresher {
	return &Refresher{equipment: equipment, broker: broker, metrics: m}
}

func (r *Refresher) Run(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			r.Refresh(ctx)
		}
	}
}

func (r *Refresher) Refresh(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Equipment refresh panicked", "panic", p)
		}
	}()

	items, err := r.equipment.ListEquipment(ctx)
	if r.metrics != nil {
		r.metrics.Refreshed(err)
	}
	if err != nil {
		logger.Warn("Equipment refresh failed", "error", err)
		return
	}
	if err := r.broker.Publish(items); err != nil {
		logger.Error("Failed to encode equipment snapshot", "error", err)
		return
	}
	logger.Debug("Equipment snapshot published", "items", len(items), "subscribers", r.broker.Subscribers())
}

// streamEquipment serves GET /equipment/stream. The first equipment event
// carries the current collection; later ones follow each change.
func (h *Handler) streamEquipment(w http.ResponseWriter, r *http.Request) {
	if h.broker == nil {
		errorResponse(w, r, http.StatusServiceUnavailable, "stream not ready")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		errorResponse(w, r, http.StatusInternalServerError, "stream unsupported")
		return
	}
	// the server write timeout would otherwise cut the stream
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.broker.Subscribe()
	defer h.broker.Unsubscribe(ch)

	_, _ = w.Write([]byte("event: ready\ndata: {}\n\n"))
	flusher.Flush()

	if items, err := h.equipment.ListEquipment(r.Context()); err == nil {
		if payload, err := json.Marshal(items); err == nil {
			writeEvent(w, "equipment", payload)
			flusher.Flush()
		}
	} else {
		logger.WarnContext(r.Context(), "Initial stream snapshot failed", "error", err)
	}

	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "equipment", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, payload []byte) {
	_, _ = w.Write([]byte("event: " + event + "\n"))
	_, _ = w.Write([]byte("data: "))
	_, _ = w.Write(payload)
	_, _ = w.Write([]byte("\n\n"))
}
