package sim

// DefaultMaxEntities is the capacity bound used when a WorldConfig does not
// specify one.
const DefaultMaxEntities = 10000

// ScriptDef describes one entry in a world's script library: the script's
// kind (only "lua" is implemented) and its source text. The project loader
// resolves ScriptPath against the project root and populates Source before
// handing a WorldConfig to sim.NewWorld.
type ScriptDef struct {
	ID     ScriptId
	Kind   string // exactly "lua" in v1
	Source string // full script text, embedded so restored worlds need no filesystem access
}

// EntitySpec describes one entity to materialize when a World is
// constructed, either from a fresh project load or from a Snapshot.
type EntitySpec struct {
	ID           EntityId
	ScriptID     ScriptId
	InitialState Value
}

// WorldConfig groups the immutable configuration a World is built from:
// name, script library, capacity, and the initial entity/message/metrics
// state (produced either by project.Load or by Snapshot restoration).
// Immutable after construction except Entities, which is only rematerialized
// when producing a snapshot.
type WorldConfig struct {
	Name            string
	ScriptLibrary   map[ScriptId]ScriptDef
	MaxEntities     int // 0 means DefaultMaxEntities
	Entities        []EntitySpec
	PendingMessages []Message
	SimulationTime  Tick
	Metrics         MetricsSnapshot
}

// maxEntities returns the effective capacity bound for c.
func (c WorldConfig) maxEntities() int {
	if c.MaxEntities > 0 {
		return c.MaxEntities
	}
	return DefaultMaxEntities
}
