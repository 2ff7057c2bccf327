// Package event implements the kernel's name- and type-keyed event
// dispatcher: synchronous dispatch plus a FIFO queue, adapted from the
// teacher's runtime.eventBus (a topic-only pub/sub) into the richer
// dual-keyed, id-addressable registry the kernel spec calls for.
package event

// Priority orders handler or event precedence. The baseline Dispatcher
// does not honor it during dispatch (spec: reserved, opt-in); it is
// carried on every Event so a future priority-aware dispatch can use it
// without a wire/API change.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

// Event is the polymorphic value carried through the dispatcher. Concrete
// event types embed BaseEvent and are dispatched to both their Name's
// bucket and their concrete type's bucket.
type Event interface {
	Name() string
	Priority() Priority
	Cancelable() bool
	Cancelled() bool
	Cancel()
	Clone() Event
}

// BaseEvent implements the Event boilerplate; concrete event types embed
// it and override nothing unless they need custom Clone semantics for
// reference-typed payloads.
type BaseEvent struct {
	EventName    string
	EventPrio    Priority
	IsCancelable bool
	cancelled    bool
}

func NewBaseEvent(name string) BaseEvent {
	return BaseEvent{EventName: name, EventPrio: PriorityNormal}
}

func (e *BaseEvent) Name() string        { return e.EventName }
func (e *BaseEvent) Priority() Priority   { return e.EventPrio }
func (e *BaseEvent) Cancelable() bool     { return e.IsCancelable }
func (e *BaseEvent) Cancelled() bool      { return e.cancelled }
func (e *BaseEvent) Cancel()              { e.cancelled = true }

// Clone returns a shallow copy of the BaseEvent. Types embedding BaseEvent
// with reference-typed fields (slices, maps, pointers) should override
// Clone to deep-copy those fields; BaseEvent.Clone alone is only correct
// for value-only event types.
func (e BaseEvent) Clone() Event {
	clone := e
	return &clone
}
