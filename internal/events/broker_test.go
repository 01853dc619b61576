package events

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch := b.Subscribe()
	if got := b.ClientCount(); got != 1 {
		t.Fatalf("ClientCount = %d, want 1", got)
	}

	b.Unsubscribe(ch)
	if got := b.ClientCount(); got != 0 {
		t.Fatalf("ClientCount after unsubscribe = %d, want 0", got)
	}

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch := b.Subscribe()
	b.Publish(Event{Type: TypeContentReloaded, Data: map[string]int{"posts": 3}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: content.reloaded") {
			t.Errorf("missing event line: %q", s)
		}
		if !strings.Contains(s, `"posts":3`) {
			t.Errorf("missing payload: %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	b.Publish(Event{Type: TypeThemeChanged, Data: map[string]string{"theme": "dark"}})

	for i, ch := range []chan []byte{ch1, ch2} {
		select {
		case msg := <-ch:
			if !strings.Contains(string(msg), "theme.changed") {
				t.Errorf("subscriber %d got %q", i, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d timed out", i)
		}
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch := b.Subscribe()
	// Overfill the per-client buffer; the loop must not block.
	for i := 0; i < cap(ch)+16; i++ {
		b.Publish(Event{Type: TypeThemeChanged, Data: i})
	}

	done := make(chan struct{})
	go func() {
		b.ClientCount()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broker loop blocked on a slow client")
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after Close")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Close")
	}

	// Operations on a closed broker are no-ops.
	b.Publish(Event{Type: TypeThemeChanged})
	if got := b.ClientCount(); got != 0 {
		t.Errorf("ClientCount after Close = %d", got)
	}
}

func TestServeHTTPStreamsEvents(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, req)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for b.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	b.Publish(Event{Type: TypeContentReloaded, Data: map[string]int{"posts": 1}})

	deadline = time.Now().Add(time.Second)
	for !strings.Contains(rec.Body.String(), "content.reloaded") {
		if time.Now().After(deadline) {
			t.Fatalf("event never written, body: %q", rec.Body.String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after context cancel")
	}

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}
}
