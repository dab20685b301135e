// Implements WorldState, the capacity-bounded mapping from EntityId to
// Entity that a World exclusively owns. Mutation happens only between
// entity ticks, in World.applyCommands; during a tick, WorldState is shared
// read-only with every entity's ScriptController for enumeration.

package sim

// WorldState is the capacity-bounded collection of live entities in a World.
type WorldState struct {
	entities    map[EntityId]*Entity
	maxEntities int
}

// newWorldState returns an empty WorldState bounded at maxEntities.
func newWorldState(maxEntities int) *WorldState {
	return &WorldState{
		entities:    make(map[EntityId]*Entity),
		maxEntities: maxEntities,
	}
}

// Add inserts e under id. Fails with ErrDuplicateEntity if id is already
// present, or ErrCapacityExceeded if the world is at capacity; in either
// failure case the state is left unmodified.
func (s *WorldState) Add(id EntityId, e *Entity) error {
	if _, exists := s.entities[id]; exists {
		return ErrDuplicateEntity
	}
	if len(s.entities) >= s.maxEntities {
		return ErrCapacityExceeded
	}
	s.entities[id] = e
	return nil
}

// Remove deletes the entity at id, if present.
func (s *WorldState) Remove(id EntityId) (*Entity, bool) {
	e, ok := s.entities[id]
	if ok {
		delete(s.entities, id)
	}
	return e, ok
}

// Get returns the entity at id, if present.
func (s *WorldState) Get(id EntityId) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// IterIDs returns every entity id. Iteration order is unspecified but
// stable within this call (a fresh slice is built each time, so a caller
// holding the returned slice sees a point-in-time snapshot even if the
// underlying map is mutated afterward).
func (s *WorldState) IterIDs() []EntityId {
	ids := make([]EntityId, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	return ids
}

// GetState returns entity id's current script state.
func (s *WorldState) GetState(id EntityId) (Value, error) {
	e, ok := s.entities[id]
	if !ok {
		return Value{}, ErrEntityNotFound
	}
	state, err := e.controller.GetState()
	if err != nil {
		return Value{}, &ScriptStateError{EntityID: id, Cause: err}
	}
	return state, nil
}

// SetState installs state as entity id's script state.
func (s *WorldState) SetState(id EntityId, state Value) error {
	e, ok := s.entities[id]
	if !ok {
		return ErrEntityNotFound
	}
	if err := e.controller.SetState(state); err != nil {
		return &ScriptStateError{EntityID: id, Cause: err}
	}
	return nil
}

// Count returns the number of live entities.
func (s *WorldState) Count() int {
	return len(s.entities)
}
