package event

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	kerrors "github.com/kunihir0/gini-sub002/errors"
	"go.uber.org/zap"
)

// Handler is a name-keyed event handler.
type Handler func(ctx context.Context, e Event) error

// TypedHandler is a type-keyed handler bound to a concrete Event type E.
type TypedHandler[E Event] func(ctx context.Context, e E) error

type handlerEntry struct {
	id      uint64
	handler Handler
}

// Dispatcher is the kernel's event bus: name-keyed and type-keyed handler
// buckets (guarded by mu) plus a FIFO queue (guarded by qmu). Held alongside
// other kernel locks in the fixed order component < plugin < stage <
// event < adapter to avoid deadlock.
type Dispatcher struct {
	mu      sync.RWMutex
	byName  map[string][]handlerEntry
	byType  map[reflect.Type][]handlerEntry
	ids     map[uint64]string // id -> name bucket, for O(1) type lookup during unregister
	idTypes map[uint64]reflect.Type
	nextID  atomic.Uint64

	qmu   sync.Mutex
	queue []queuedEvent

	inFlight atomic.Bool // set while ProcessQueue is draining; guards against re-entrant Dispatch
	closed   atomic.Bool

	logger *zap.Logger
}

type queuedEvent struct {
	ctx context.Context
	ev  Event
}

// New creates an empty Dispatcher. A nil logger is replaced with a no-op.
func New(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		byName:  make(map[string][]handlerEntry),
		byType:  make(map[reflect.Type][]handlerEntry),
		ids:     make(map[uint64]string),
		idTypes: make(map[uint64]reflect.Type),
		logger:  logger,
	}
}

// RegisterByName registers h for events whose Name() equals name. Returns
// a handler id usable with Unregister.
func (d *Dispatcher) RegisterByName(name string, h Handler) uint64 {
	id := d.nextID.Add(1)
	d.mu.Lock()
	d.byName[name] = append(d.byName[name], handlerEntry{id: id, handler: h})
	d.ids[id] = name
	d.mu.Unlock()
	return id
}

// RegisterByType registers a handler keyed by the concrete Go type of E.
// It is a free function (not a Dispatcher method) because Go forbids
// generic methods on non-generic receivers.
func RegisterByType[E Event](d *Dispatcher, h TypedHandler[E]) uint64 {
	var zero E
	t := reflect.TypeOf(zero)
	wrapped := func(ctx context.Context, e Event) error {
		typed, ok := e.(E)
		if !ok {
			return nil
		}
		return h(ctx, typed)
	}

	id := d.nextID.Add(1)
	d.mu.Lock()
	d.byType[t] = append(d.byType[t], handlerEntry{id: id, handler: wrapped})
	d.idTypes[id] = t
	d.mu.Unlock()
	return id
}

// Unregister removes a handler by id from whichever bucket it lives in.
// O(handlers) in that bucket.
func (d *Dispatcher) Unregister(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if name, ok := d.ids[id]; ok {
		d.byName[name] = removeEntry(d.byName[name], id)
		delete(d.ids, id)
		return
	}
	if t, ok := d.idTypes[id]; ok {
		d.byType[t] = removeEntry(d.byType[t], id)
		delete(d.idTypes, id)
	}
}

func removeEntry(entries []handlerEntry, id uint64) []handlerEntry {
	for i, e := range entries {
		if e.id == id {
			return append(entries[:i:i], entries[i+1:]...)
		}
	}
	return entries
}

// Dispatch invokes name-keyed handlers first, then type-keyed handlers,
// each in registration order, and returns the number of handlers invoked.
// A handler's error is logged and does not abort subsequent handlers.
//
// Dispatch snapshots both buckets under a read lock and releases it
// before invoking any handler, so a handler that mutates the dispatcher
// (registering or unregistering) cannot deadlock or corrupt iteration.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (int, error) {
	if d.closed.Load() {
		return 0, kerrors.ErrDispatcherPoisoned
	}
	if !d.inFlight.CompareAndSwap(false, true) {
		// A ProcessQueue drain (or another Dispatch) is in progress on
		// this dispatcher. Nested dispatch is undefined behavior we
		// detect and refuse rather than corrupt bucket iteration or
		// deadlock the mutex.
		return 0, kerrors.ErrReentrantDispatch
	}
	defer d.inFlight.Store(false)

	return d.dispatchLocked(ctx, e)
}

func (d *Dispatcher) dispatchLocked(ctx context.Context, e Event) (int, error) {
	d.mu.RLock()
	nameHandlers := append([]handlerEntry(nil), d.byName[e.Name()]...)
	typeHandlers := append([]handlerEntry(nil), d.byType[reflect.TypeOf(e)]...)
	d.mu.RUnlock()

	count := 0
	for _, entry := range nameHandlers {
		if err := entry.handler(ctx, e); err != nil {
			d.logger.Warn("event handler error", zap.String("event", e.Name()), zap.Error(err))
		}
		count++
		if e.Cancelable() && e.Cancelled() {
			return count, nil
		}
	}
	for _, entry := range typeHandlers {
		if err := entry.handler(ctx, e); err != nil {
			d.logger.Warn("event handler error", zap.String("event", e.Name()), zap.Error(err))
		}
		count++
		if e.Cancelable() && e.Cancelled() {
			return count, nil
		}
	}
	return count, nil
}

// Queue appends e to the FIFO queue for later delivery via ProcessQueue.
func (d *Dispatcher) Queue(ctx context.Context, e Event) error {
	if d.closed.Load() {
		return kerrors.ErrDispatcherPoisoned
	}
	d.qmu.Lock()
	d.queue = append(d.queue, queuedEvent{ctx: ctx, ev: e})
	d.qmu.Unlock()
	return nil
}

// ProcessQueue dispatches every queued event in FIFO order. Calling
// Dispatch from within a handler invoked here is detected by the
// re-entrancy guard in Dispatch and returns ErrReentrantDispatch rather
// than corrupting the drain.
func (d *Dispatcher) ProcessQueue(ctx context.Context) (int, error) {
	if !d.inFlight.CompareAndSwap(false, true) {
		return 0, kerrors.ErrReentrantDispatch
	}
	defer d.inFlight.Store(false)

	d.qmu.Lock()
	pending := d.queue
	d.queue = nil
	d.qmu.Unlock()

	total := 0
	for _, qe := range pending {
		runCtx := qe.ctx
		if runCtx == nil {
			runCtx = ctx
		}
		n, err := d.dispatchLocked(runCtx, qe.ev)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Close marks the dispatcher poisoned; further Dispatch/Queue calls
// report ErrDispatcherPoisoned. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.closed.Store(true)
}
