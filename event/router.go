package event

// Handler consumes one event
type Handler func(e Event)

// Router dispatches drained events to handlers registered by type
// Handlers run in registration order on the draining goroutine
type Router struct {
	queue    *Queue
	handlers map[EventType][]Handler
	any      []Handler
}

// NewRouter creates a router draining q
func NewRouter(q *Queue) *Router {
	return &Router{queue: q, handlers: make(map[EventType][]Handler)}
}

// Handle registers h for t
func (r *Router) Handle(t EventType, h Handler) {
	r.handlers[t] = append(r.handlers[t], h)
}

// HandleAll registers h for every event, after type-specific handlers
func (r *Router) HandleAll(h Handler) {
	r.any = append(r.any, h)
}

// Drain consumes the queue and dispatches each event; returns the number dispatched
func (r *Router) Drain() int {
	events := r.queue.Consume()
	for _, e := range events {
		for _, h := range r.handlers[e.Type] {
			h(e)
		}
		for _, h := range r.any {
			h(e)
		}
	}
	return len(events)
}
