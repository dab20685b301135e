// World owns WorldState, MessageBus, and Metrics, and runs the tick loop.
// Control always originates in World.Update; scripts never call back into
// the host synchronously except through the guest capability table, which
// only enqueues commands applied here, after the tick.

package sim

import (
	"github.com/sirupsen/logrus"
)

// TickResult reports what happened during one Update call.
type TickResult struct {
	Delivered []Message
}

// World is the runtime instance of one simulated population.
type World struct {
	config  WorldConfig
	clock   Tick
	state   *WorldState
	bus     *MessageBus
	metrics *Metrics
}

// NewWorld constructs a fresh World from config, instantiating every entity
// in config.Entities and scheduling every message in
// config.PendingMessages. Fails if any entity's script cannot be loaded or
// initial state rejected.
func NewWorld(config WorldConfig) (*World, error) {
	w := &World{
		config:  config,
		clock:   config.SimulationTime,
		state:   newWorldState(config.maxEntities()),
		bus:     NewMessageBus(),
		metrics: RestoreMetrics(config.Metrics),
	}
	for _, spec := range config.Entities {
		def, ok := config.ScriptLibrary[spec.ScriptID]
		if !ok {
			return nil, &EntityCreationError{EntityID: spec.ID, ScriptID: spec.ScriptID, Cause: ErrUnknownScript}
		}
		e, err := newEntity(spec.ID, def, spec.InitialState)
		if err != nil {
			return nil, err
		}
		if err := w.state.Add(spec.ID, e); err != nil {
			return nil, &EntityCreationError{EntityID: spec.ID, ScriptID: spec.ScriptID, Cause: err}
		}
	}
	for _, msg := range config.PendingMessages {
		w.bus.Schedule(msg)
	}
	return w, nil
}

// Name returns the world's configured name.
func (w *World) Name() string { return w.config.Name }

// Clock returns the current logical tick.
func (w *World) Clock() Tick { return w.clock }

// Update advances the clock by delta, delivers every due message, ticks
// every live entity once, and applies the commands they emitted, in that
// order.
//
// An entity-tick error aborts applyCommands entirely — no commands from
// this tick take effect, including ones emitted by entities ticked earlier
// in the same call — and is returned alongside the partial TickResult. The
// clock is not rolled back.
func (w *World) Update(delta Tick) (TickResult, error) {
	w.clock += delta

	delivered := w.bus.DrainDue(w.clock)
	for _, msg := range delivered {
		switch r := msg.Receiver.(type) {
		case DirectReceiver:
			if e, ok := w.state.Get(r.ID); ok {
				e.controller.PushIncoming(msg)
			}
		case Radius2DReceiver:
			logrus.WithFields(logrus.Fields{
				"world": w.config.Name, "tick": w.clock, "receiver": r.String(),
			}).Warn("sim: Radius2D delivery is not implemented; message logged and dropped")
		}
	}

	var commands []Command
	for _, id := range w.state.IterIDs() {
		e, ok := w.state.Get(id)
		if !ok {
			continue
		}
		cs, err := e.controller.Tick(w.clock, w.listEntities)
		if err != nil {
			return TickResult{Delivered: delivered}, &ScriptExecutionError{EntityID: id, Cause: err}
		}
		commands = append(commands, cs...)
	}

	w.applyCommands(commands)
	return TickResult{Delivered: delivered}, nil
}

// listEntities is the capability table's synchronous, read-only
// world.list_entities() implementation.
func (w *World) listEntities() []EntityId {
	return w.state.IterIDs()
}

// applyCommands processes commands in emission order, mutating WorldState,
// MessageBus, and Metrics. SpawnEntityCommand conflicts and
// RemoveEntityCommand of unknown ids are tolerated (logged, not fatal).
func (w *World) applyCommands(commands []Command) {
	for _, cmd := range commands {
		switch c := cmd.(type) {
		case SendMessageCommand:
			w.bus.Schedule(Message{
				Sender:       c.Sender,
				Receiver:     c.Receiver,
				Kind:         c.Kind,
				Payload:      c.Payload,
				DeliveryTick: w.clock + c.Delay,
			})
		case RemoveEntityCommand:
			if _, ok := w.state.Remove(c.ID); !ok {
				logrus.WithFields(logrus.Fields{"world": w.config.Name, "entity": c.ID}).
					Debug("sim: RemoveEntity of unknown id is a no-op")
			}
		case SpawnEntityCommand:
			def, ok := w.config.ScriptLibrary[c.ScriptID]
			if !ok {
				logrus.WithFields(logrus.Fields{"world": w.config.Name, "script": c.ScriptID}).
					Warn("sim: SpawnEntity referenced unknown script id; ignored")
				continue
			}
			e, err := newEntity(c.ID, def, c.InitialState)
			if err != nil {
				logrus.WithFields(logrus.Fields{"world": w.config.Name, "entity": c.ID}).
					Warnf("sim: SpawnEntity failed: %v", err)
				continue
			}
			if err := w.state.Add(c.ID, e); err != nil {
				logrus.WithFields(logrus.Fields{"world": w.config.Name, "entity": c.ID}).
					Warnf("sim: SpawnEntity conflict: %v", err)
			}
		case RecordMetricCommand:
			w.metrics.RecordAt(w.clock, c.Name, c.Value)
		}
	}
}

// ListEntities returns every live entity id, for RPC-facing callers.
func (w *World) ListEntities() []EntityId {
	return w.state.IterIDs()
}

// GetEntityState returns an entity's current script state.
func (w *World) GetEntityState(id EntityId) (Value, error) {
	return w.state.GetState(id)
}

// SetEntityState installs state as an entity's script state.
func (w *World) SetEntityState(id EntityId, state Value) error {
	return w.state.SetState(id, state)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.state.Count()
}

// Metrics exposes the world's Metrics aggregator for read access (listing
// names, fetching stats) and for the observability exporter.
func (w *World) Metrics() *Metrics { return w.metrics }
