package msgq

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueue_FIFOOrder(t *testing.T) {
	q := NewQueue()

	for i := 0; i < 10; i++ {
		q.PushText(KindStatus, fmt.Sprintf("msg-%d", i))
	}

	msgs := q.Drain()
	if len(msgs) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		want := fmt.Sprintf("msg-%d", i)
		if m.Text != want {
			t.Errorf("position %d: got %q, want %q", i, m.Text, want)
		}
	}
}

func TestQueue_DrainConsumesExactlyOnce(t *testing.T) {
	q := NewQueue()
	q.PushText(KindRecognized, "open google")

	first := q.Drain()
	if len(first) != 1 {
		t.Fatalf("first drain: got %d messages, want 1", len(first))
	}

	second := q.Drain()
	if second != nil {
		t.Errorf("second drain: got %d messages, want none", len(second))
	}
	if q.Len() != 0 {
		t.Errorf("queue length after drain: got %d, want 0", q.Len())
	}
}

func TestQueue_DrainEmptyDoesNotBlock(t *testing.T) {
	q := NewQueue()
	if msgs := q.Drain(); msgs != nil {
		t.Errorf("expected nil from empty drain, got %v", msgs)
	}
}

func TestQueue_SingleProducerSingleConsumer(t *testing.T) {
	q := NewQueue()
	const total = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			q.PushText(KindStatus, fmt.Sprintf("msg-%d", i))
		}
	}()

	var received []Message
	done := make(chan struct{})
	go func() {
		defer close(done)
		for len(received) < total {
			received = append(received, q.Drain()...)
		}
	}()

	wg.Wait()
	<-done

	if len(received) != total {
		t.Fatalf("received %d messages, want %d", len(received), total)
	}
	// Interleaved drains must preserve producer order.
	for i, m := range received {
		want := fmt.Sprintf("msg-%d", i)
		if m.Text != want {
			t.Fatalf("position %d: got %q, want %q", i, m.Text, want)
		}
	}
}

func TestNewStatusCarriesEvent(t *testing.T) {
	m := NewStatus(EventReady, "Calibration complete. Ready for commands!")
	if m.Kind != KindStatus {
		t.Errorf("kind: got %q, want %q", m.Kind, KindStatus)
	}
	if m.Event != EventReady {
		t.Errorf("event: got %q, want %q", m.Event, EventReady)
	}
	if m.Time.IsZero() {
		t.Error("expected timestamp to be set")
	}
}
