// Defines the Entity, the identity + script binding that WorldState owns.
// Each entity exclusively owns one ScriptController; removal is the only
// termination.

package sim

// ScriptController is the host ↔ guest boundary implemented by sim/script's
// Controller. Declared as an interface here so the sim package depends only
// on the shape, never the concrete Lua VM: the implementation lives in a
// subpackage and is wired in through a package-level factory variable.
type ScriptController interface {
	// PushIncoming appends a due message to the controller's incoming queue,
	// to be delivered on the next Tick call.
	PushIncoming(msg Message)

	// Tick invokes the guest's update(current_tick, messages) with the
	// queued incoming messages (which are cleared first), then drains and
	// returns the commands the script emitted.
	Tick(now Tick, listEntities func() []EntityId) ([]Command, error)

	// GetState invokes the guest's get_state() and converts the result to
	// the JSON object model.
	GetState() (Value, error)

	// SetState converts state to the guest value model and invokes the
	// guest's set_state(record).
	SetState(state Value) error
}

// NewScriptControllerFunc constructs a ScriptController for one entity from
// its script definition. Wired at init time by sim/script's own init().
var NewScriptControllerFunc func(id EntityId, def ScriptDef) (ScriptController, error)

// Entity is the identity + script binding owned exclusively by WorldState.
type Entity struct {
	ID         EntityId
	ScriptID   ScriptId
	controller ScriptController
}

// newEntity constructs an Entity by invoking NewScriptControllerFunc. Fails
// with *EntityCreationError if no script controller factory is registered,
// the guest script fails to load, or the initial state is rejected. The
// caller resolves the script id to def.
func newEntity(id EntityId, def ScriptDef, initialState Value) (*Entity, error) {
	if NewScriptControllerFunc == nil {
		return nil, &EntityCreationError{EntityID: id, ScriptID: def.ID,
			Cause: errNoScriptEngine}
	}
	ctrl, err := NewScriptControllerFunc(id, def)
	if err != nil {
		return nil, &EntityCreationError{EntityID: id, ScriptID: def.ID, Cause: err}
	}
	if !initialState.IsNull() {
		if err := ctrl.SetState(initialState); err != nil {
			return nil, &EntityCreationError{EntityID: id, ScriptID: def.ID, Cause: err}
		}
	}
	return &Entity{ID: id, ScriptID: def.ID, controller: ctrl}, nil
}

var errNoScriptEngine = errNoScriptEngineError("sim: no script controller factory registered (import sim/script)")

type errNoScriptEngineError string

func (e errNoScriptEngineError) Error() string { return string(e) }
