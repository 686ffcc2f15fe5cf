package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSSEBroker_PublishSubscribe(t *testing.T) {
	b := NewSSEBroker(metrics.New())
	ch := b.Subscribe()
	assert.Equal(t, 1, b.Subscribers())

	require.NoError(t, b.Publish(fleet()))
	payload := <-ch
	var items []domain.Equipment
	require.NoError(t, json.Unmarshal(payload, &items))
	assert.Len(t, items, 3)

	b.Unsubscribe(ch)
	b.Unsubscribe(ch)
	assert.Equal(t, 0, b.Subscribers())
	_, open := <-ch
	assert.False(t, open)
}

func TestSSEBroker_SlowClientDropsFrames(t *testing.T) {
	b := NewSSEBroker(nil)
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Publish(nil))
	}
	assert.Len(t, ch, cap(ch))
}

func TestRefresher_Refresh(t *testing.T) {
	eq := new(MockEquipmentService)
	b := NewSSEBroker(nil)
	r := NewRefresher(eq, b, metrics.New())
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	eq.On("ListEquipment", mock.Anything).Return(nil, errors.New("timeout")).Once()
	r.Refresh(context.Background())
	assert.Len(t, ch, 0, "failed refresh publishes nothing")

	eq.On("ListEquipment", mock.Anything).Return(fleet()[:1], nil).Once()
	r.Refresh(context.Background())
	require.Len(t, ch, 1)
	assert.Contains(t, string(<-ch), `"EX-200"`)
	eq.AssertExpectations(t)
}

func TestRefresher_RunStopsOnCancel(t *testing.T) {
	eq := new(MockEquipmentService)
	eq.On("ListEquipment", mock.Anything).Return([]domain.Equipment{}, nil)
	r := NewRefresher(eq, NewSSEBroker(nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		r.Run(ctx, changes)
		close(done)
	}()

	changes <- struct{}{}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestHandler_StreamEquipment(t *testing.T) {
	eq := new(MockEquipmentService)
	eq.On("ListEquipment", mock.Anything).Return(fleet()[:1], nil)
	h := newTestHandler(eq, new(MockRentalEntryService))
	h.broker = NewSSEBroker(nil)

	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/equipment/stream", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	next := func() (string, string) {
		var event, data string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "":
				return event, data
			}
		}
	}

	event, _ := next()
	assert.Equal(t, "ready", event)

	event, data := next()
	assert.Equal(t, "equipment", event)
	assert.Contains(t, data, `"EX-200"`)

	require.Eventually(t, func() bool { return h.broker.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, h.broker.Publish(fleet()))
	event, data = next()
	assert.Equal(t, "equipment", event)
	assert.Contains(t, data, `"LF-300"`)
}

func TestHandler_StreamWithoutBroker(t *testing.T) {
	h := newTestHandler(new(MockEquipmentService), new(MockRentalEntryService))
	rec := serve(h, http.MethodGet, "/equipment/stream", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSSEBroker_ConcurrentPublishAndUnsubscribe(t *testing.T) {
	b := NewSSEBroker(metrics.New())
	stop := make(chan struct{})
	published := make(chan struct{})

	go func() {
		defer close(published)
		for {
			select {
			case <-stop:
				return
			default:
				assert.NotPanics(t, func() { _ = b.Publish(fleet()[:1]) })
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ch := b.Subscribe()
				b.Unsubscribe(ch)
			}
		}()
	}
	wg.Wait()
	close(stop)
	<-published

	assert.Equal(t, 0, b.Subscribers())
}

func TestSSEBroker_Close(t *testing.T) {
	b := NewSSEBroker(nil)
	first := b.Subscribe()
	second := b.Subscribe()

	b.Close()
	_, open := <-first
	assert.False(t, open)
	_, open = <-second
	assert.False(t, open)
	assert.Equal(t, 0, b.Subscribers())

	late := b.Subscribe()
	_, open = <-late
	assert.False(t, open, "subscribers after close are disconnected at once")
	b.Unsubscribe(late)
	require.NoError(t, b.Publish(nil))
}

func TestHandler_StreamEndsOnBrokerClose(t *testing.T) {
	eq := new(MockEquipmentService)
	eq.On("ListEquipment", mock.Anything).Return([]domain.Equipment{}, nil)
	h := newTestHandler(eq, new(MockRentalEntryService))
	h.broker = NewSSEBroker(nil)

	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/equipment/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return h.broker.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	h.broker.Close()

	done := make(chan error, 1)
	go func() {
		_, err := io.ReadAll(resp.Body)
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after broker close")
	}
}
