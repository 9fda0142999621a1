package params

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyRegistered is returned when an effect registers definitions twice
// without resetting.
var ErrAlreadyRegistered = errors.New("params: effect already registered")

// Callback receives the full current value set of the subscribed effect on
// every accepted mutation (not a diff).
type Callback func(Values)

// Store maps effect IDs to parameter sets seeded from their definitions, with
// synchronous publish/subscribe on every accepted change.
//
// Mutation policy: Set on an unknown name, mistyped value, or out-of-bounds
// number is rejected outright — it mutates nothing, notifies nobody, and
// reports false. The original behavior of silently swallowing unknown names
// hid typos; rejection is the deliberate replacement and is tested.
type Store struct {
	mu     sync.Mutex
	defs   map[string]map[string]Definition
	values map[string]Values
	subs   map[string]map[uint64]Callback
	nextID uint64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		defs:   make(map[string]map[string]Definition),
		values: make(map[string]Values),
		subs:   make(map[string]map[uint64]Callback),
	}
}

// Register seeds the effect's value set from defs' defaults. Registering the
// same effect twice is an error; use Unregister first when replacing.
func (s *Store) Register(effectID string, defs []Definition) error {
	if effectID == "" {
		return errors.New("params: empty effect id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.defs[effectID]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, effectID)
	}

	byName := make(map[string]Definition, len(defs))
	seed := make(Values, len(defs))

	for _, def := range defs {
		if def.Name == "" {
			return fmt.Errorf("params: unnamed definition for effect %q", effectID)
		}

		if !def.validate(def.Default) {
			return fmt.Errorf("params: default for %s.%s is invalid", effectID, def.Name)
		}

		byName[def.Name] = def
		seed[def.Name] = def.Default
	}

	s.defs[effectID] = byName
	s.values[effectID] = seed

	return nil
}

// Unregister drops the effect's definitions, values, and subscriptions.
func (s *Store) Unregister(effectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.defs, effectID)
	delete(s.values, effectID)
	delete(s.subs, effectID)
}

// Registered reports whether the effect has definitions.
func (s *Store) Registered(effectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.defs[effectID]

	return ok
}

// Definitions returns the effect's declared definitions, or nil.
func (s *Store) Definitions(effectID string) []Definition {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName, ok := s.defs[effectID]
	if !ok {
		return nil
	}

	out := make([]Definition, 0, len(byName))
	for _, def := range byName {
		out = append(out, def)
	}

	return out
}

// Values returns a defensive copy of the effect's current value set.
// Unregistered effects yield an empty set.
func (s *Store) Values(effectID string) Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals, ok := s.values[effectID]
	if !ok {
		return Values{}
	}

	return vals.Clone()
}

// Set validates and applies one value, then synchronously notifies all
// subscribers for the effect with the full current set. Returns false and
// leaves state untouched on unknown names or invalid values.
func (s *Store) Set(effectID, name string, value any) bool {
	s.mu.Lock()

	defs, ok := s.defs[effectID]
	if !ok {
		s.mu.Unlock()
		return false
	}

	def, ok := defs[name]
	if !ok || !def.validate(value) {
		s.mu.Unlock()
		return false
	}

	s.values[effectID][name] = value
	snapshot, callbacks := s.notificationLocked(effectID)

	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(snapshot.Clone())
	}

	return true
}

// ResetToDefaults reseeds the effect's values from its definitions and
// notifies subscribers.
func (s *Store) ResetToDefaults(effectID string) {
	s.mu.Lock()

	defs, ok := s.defs[effectID]
	if !ok {
		s.mu.Unlock()
		return
	}

	seed := make(Values, len(defs))
	for name, def := range defs {
		seed[name] = def.Default
	}

	s.values[effectID] = seed
	snapshot, callbacks := s.notificationLocked(effectID)

	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(snapshot.Clone())
	}
}

// Subscribe registers a callback for the effect's changes and returns a
// cancellation token. The token must be cancelled before its owner is
// disposed so no notification reaches dead state.
func (s *Store) Subscribe(effectID string, cb Callback) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[effectID] == nil {
		s.subs[effectID] = make(map[uint64]Callback)
	}

	s.nextID++
	id := s.nextID
	s.subs[effectID][id] = cb

	return &Subscription{store: s, effectID: effectID, id: id}
}

// notificationLocked copies the current values and callback list while the
// lock is held, so callbacks run without holding it and never touch the live
// map. A concurrent Set mutates s.values under the lock; handing out the
// live map here would let Clone range over it unlocked.
func (s *Store) notificationLocked(effectID string) (Values, []Callback) {
	snapshot := s.values[effectID].Clone()

	subs := s.subs[effectID]
	if len(subs) == 0 {
		return snapshot, nil
	}

	callbacks := make([]Callback, 0, len(subs))
	for _, cb := range subs {
		callbacks = append(callbacks, cb)
	}

	return snapshot, callbacks
}

// Subscription is the handle pairing a Subscribe with its mandatory Cancel.
type Subscription struct {
	store    *Store
	effectID string
	id       uint64
	done     bool
}

// Cancel detaches the callback. Idempotent; safe to call during disposal.
func (sub *Subscription) Cancel() {
	if sub == nil || sub.done {
		return
	}

	sub.done = true

	sub.store.mu.Lock()
	defer sub.store.mu.Unlock()

	if m, ok := sub.store.subs[sub.effectID]; ok {
		delete(m, sub.id)
	}
}
