package effect

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/surface"
)

type runtimeState int

const (
	stateUninitialized runtimeState = iota
	stateActive
	stateDisposed
)

// Runtime owns the active effect instance: construction, parameter
// subscription, per-tick rendering with fault isolation, and disposal.
//
// Lifecycle: Uninitialized -> Active(kind) -> Disposed. Activate always
// disposes the previous instance first; Dispose is idempotent.
type Runtime struct {
	surf     *surface.Surface
	store    *params.Store
	registry *Registry
	log      *zap.Logger

	state  runtimeState
	kind   Kind
	effect Effect
	sub    *params.Subscription

	// pending stages parameter notifications. Store callbacks run on the
	// Set caller's goroutine; the effect's fields are only ever touched on
	// the tick goroutine, so staged values are applied at the top of Tick.
	mu      sync.Mutex
	pending params.Values
}

// NewRuntime creates a runtime bound to the drawing surface and parameter
// store. A nil logger disables logging.
func NewRuntime(surf *surface.Surface, store *params.Store, registry *Registry, log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}

	return &Runtime{
		surf:     surf,
		store:    store,
		registry: registry,
		log:      log,
	}
}

// Activate disposes any current effect and constructs the requested variant,
// registering its parameter definitions on first use and subscribing the new
// instance to parameter changes.
func (r *Runtime) Activate(kind Kind) error {
	r.disposeCurrent()

	id := kind.String()

	if !r.store.Registered(id) {
		err := r.store.Register(id, r.registry.Definitions(kind))
		if err != nil {
			return fmt.Errorf("effect: register params for %s: %w", id, err)
		}
	}

	fx, err := r.registry.New(kind, r.store.Values(id))
	if err != nil {
		return err
	}

	r.effect = fx
	r.kind = kind
	r.state = stateActive

	r.sub = r.store.Subscribe(id, r.stage)

	r.log.Debug("effect activated", zap.String("kind", id))

	return nil
}

// Active returns the current kind and whether an effect is active.
func (r *Runtime) Active() (Kind, bool) {
	return r.kind, r.state == stateActive
}

// stage records the latest full value set for the active effect. Runs on
// whatever goroutine called Store.Set; last write wins.
func (r *Runtime) stage(vals params.Values) {
	r.mu.Lock()
	r.pending = vals
	r.mu.Unlock()
}

// takePending claims any staged value set.
func (r *Runtime) takePending() params.Values {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals := r.pending
	r.pending = nil

	return vals
}

// Tick applies any staged parameter change, then renders one frame of the
// active effect. A panic inside SetParams or Render is contained: the
// surface is rolled back to its pre-tick content so a half-painted frame is
// never presented, the effect stays active, and the fault is logged. No-op
// unless Active.
func (r *Runtime) Tick(ctx RenderContext) {
	if r.state != stateActive {
		return
	}

	snap := r.surf.Snapshot()

	defer func() {
		if rec := recover(); rec != nil {
			r.surf.Restore(snap)
			r.log.Warn("effect render fault, frame skipped",
				zap.String("kind", r.kind.String()),
				zap.Any("panic", rec))
		}
	}()

	if vals := r.takePending(); vals != nil {
		r.effect.SetParams(vals)
	}

	r.effect.Render(r.surf, ctx)
}

// Dispose cancels the parameter subscription and releases the active
// effect's state. Idempotent.
func (r *Runtime) Dispose() {
	r.disposeCurrent()
	r.state = stateDisposed
}

func (r *Runtime) disposeCurrent() {
	if r.sub != nil {
		r.sub.Cancel()
		r.sub = nil
	}

	// Staged values for the outgoing effect must not reach its successor.
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()

	if r.effect != nil {
		r.effect.Dispose()
		r.effect = nil
	}

	if r.state == stateActive {
		r.state = stateUninitialized
	}
}
