package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/run-or-die/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.Push(Event{Type: EventObstacleSpawned, Frame: int64(i)})
	}
	if q.Len() != 5 {
		t.Fatalf("Len = %d, want 5", q.Len())
	}

	got := q.Consume()
	if len(got) != 5 {
		t.Fatalf("Consume = %d events, want 5", len(got))
	}
	for i, e := range got {
		if e.Frame != int64(i) {
			t.Errorf("event %d has frame %d", i, e.Frame)
		}
	}
	if q.Consume() != nil || q.Len() != 0 {
		t.Error("queue not empty after consume")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(Event{Type: EventFlap, Frame: int64(i)})
	}

	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Consume = %d, want %d", len(got), parameter.EventQueueSize)
	}
	if got[0].Frame != 10 {
		t.Errorf("oldest surviving frame = %d, want 10", got[0].Frame)
	}
	if q.Dropped() != 10 {
		t.Errorf("Dropped = %d, want 10", q.Dropped())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Push(Event{Type: EventWarning})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != 200 {
		t.Errorf("Consume = %d, want 200", got)
	}
}

func TestRouterDispatch(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	var recycled, all int
	var order []EventType
	r.Handle(EventSegmentRecycled, func(e Event) {
		recycled++
		if p, ok := e.Payload.(*SegmentPayload); !ok || p.Index != 2 {
			t.Errorf("payload = %#v", e.Payload)
		}
	})
	r.HandleAll(func(e Event) {
		all++
		order = append(order, e.Type)
	})

	q.Push(Event{Type: EventSegmentRecycled, Payload: &SegmentPayload{Index: 2}})
	q.Push(Event{Type: EventFlap})

	if n := r.Drain(); n != 2 {
		t.Fatalf("Drain = %d, want 2", n)
	}
	if recycled != 1 || all != 2 {
		t.Errorf("recycled=%d all=%d", recycled, all)
	}
	if order[0] != EventSegmentRecycled || order[1] != EventFlap {
		t.Errorf("order = %v", order)
	}
	if r.Drain() != 0 {
		t.Error("second drain dispatched events")
	}
}

func TestEventTypeNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, et := range Types() {
		name := et.String()
		if name == "unknown" || seen[name] {
			t.Errorf("type %d has bad or duplicate name %q", et, name)
		}
		seen[name] = true
	}
	if EventType(999).String() != "unknown" {
		t.Error("undefined type should be unknown")
	}
}
