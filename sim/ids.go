// sim/ids.go
package sim

// EntityId identifies an entity within a World. Equality is by bytes. No
// construction path checks for the empty string.
type EntityId string

// ScriptId identifies an entry in a WorldConfig's script library.
type ScriptId string

// MetricName identifies a named time series in Metrics.
type MetricName string

// Tick is the engine's logical clock. The core never interprets it as
// wall-clock time; it is simply the domain of ≤ used for scheduling.
type Tick uint64
