package event

// Handler processes routed events within a context T
// Collaborators (audio, renderer, skid marks) implement this instead of being called from the step
type Handler[T any] interface {
	HandleEvent(ctx T, ev Event)
	EventTypes() []EventType
}

// HandlerFunc adapts a function and a type list to Handler
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, ev Event)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, ev Event) { h.Fn(ctx, ev) }
func (h HandlerFunc[T]) EventTypes() []EventType { return h.Types }

// Router dispatches queued events to registered handlers
// Single-threaded dispatch; handlers for one type run in registration order
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *Queue
}

func NewRouter[T any](queue *Queue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order
// Returns the number of events consumed
func (r *Router[T]) DispatchAll(ctx T) int {
	evs := r.queue.Consume()
	r.Dispatch(ctx, evs)
	return len(evs)
}

// Dispatch routes an explicit batch without touching the queue
func (r *Router[T]) Dispatch(ctx T, evs []Event) {
	for _, ev := range evs {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ctx, ev)
		}
	}
}

func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
