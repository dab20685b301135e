package project

import (
	"fmt"

	"github.com/vivarium-sim/vivarium/sim"
)

// Load reads a project's manifest, script library, and the snapshot
// selected by sel, and assembles a sim.WorldConfig ready for
// sim.NewWorld. Any missing file, schema mismatch, or dangling script_id
// reference is returned as a *sim.ConfigError naming the offending path.
func Load(projectDir string, sel SnapshotSelection) (sim.WorldConfig, error) {
	manifest, err := loadManifest(projectDir)
	if err != nil {
		return sim.WorldConfig{}, err
	}
	library, err := manifest.scriptLibrary(projectDir)
	if err != nil {
		return sim.WorldConfig{}, err
	}

	dir, err := resolveSnapshotDir(projectDir, sel)
	if err != nil {
		return sim.WorldConfig{}, err
	}
	snap, ents, msgs, err := readSnapshotTrio(dir)
	if err != nil {
		return sim.WorldConfig{}, err
	}
	if snap.SchemaVersion != snapshotSchemaVersion {
		return sim.WorldConfig{}, &sim.ConfigError{Path: dir,
			Cause: fmt.Errorf("unsupported snapshot schema_version %q", snap.SchemaVersion)}
	}

	specs := make([]sim.EntitySpec, 0, len(ents.Entities))
	for _, e := range ents.Entities {
		scriptID := sim.ScriptId(e.ScriptID)
		if _, ok := library[scriptID]; !ok {
			return sim.WorldConfig{}, &sim.ConfigError{Path: dir,
				Cause: fmt.Errorf("entity %q references unknown script_id %q", e.ID, e.ScriptID)}
		}
		initial := sim.Null
		if e.InitialState != nil {
			initial = sim.ValueFromGo(map[string]any(e.InitialState))
		}
		specs = append(specs, sim.EntitySpec{
			ID:           sim.EntityId(e.ID),
			ScriptID:     scriptID,
			InitialState: initial,
		})
	}

	pending := make([]sim.Message, 0, len(msgs.Messages))
	for _, m := range msgs.Messages {
		pending = append(pending, sim.Message{
			Sender:       sim.EntityId(m.Sender),
			Receiver:     sim.DirectReceiver{ID: sim.EntityId(m.Receiver)},
			Kind:         m.Kind,
			Payload:      sim.ValueFromGo(map[string]any(m.Content)),
			DeliveryTick: sim.Tick(m.ReceiveStep),
		})
	}

	return sim.WorldConfig{
		Name:            manifest.Name,
		ScriptLibrary:   library,
		Entities:        specs,
		PendingMessages: pending,
		SimulationTime:  sim.Tick(snap.SimulationTime),
	}, nil
}
