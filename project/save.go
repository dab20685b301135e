package project

import (
	"os"
	"path/filepath"

	"github.com/vivarium-sim/vivarium/sim"
)

// Save writes snap to projectDir's snapshots/<snapID>/ directory as the
// snapshot/entities/messages trio. Every document is built in memory first;
// each file is then written via temp-file-then-rename, so a crash leaves at
// most a stray .tmp file and never a half-written document.
func Save(projectDir, snapID string, snap sim.Snapshot) error {
	dir := filepath.Join(projectDir, "snapshots", snapID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &sim.ConfigError{Path: dir, Cause: err}
	}

	snapDoc := snapshotDoc{
		SchemaVersion:  snapshotSchemaVersion,
		ID:             snapID,
		SimulationTime: uint64(snap.SimulationTime),
	}

	entsDoc := entitiesDoc{Entities: make([]entityDoc, 0, len(snap.Entities))}
	for _, e := range snap.Entities {
		var state map[string]any
		if !e.State.IsNull() {
			state, _ = e.State.ToGo().(map[string]any)
		}
		entsDoc.Entities = append(entsDoc.Entities, entityDoc{
			ID:           string(e.ID),
			ScriptID:     string(e.ScriptID),
			InitialState: state,
		})
	}

	msgsDoc := messagesDoc{Messages: make([]messageDoc, 0, len(snap.PendingMessages))}
	for _, m := range snap.PendingMessages {
		direct, ok := m.Receiver.(sim.DirectReceiver)
		if !ok {
			continue // Radius2D messages are never delivered and are not worth persisting
		}
		var content map[string]any
		if !m.Payload.IsNull() {
			content, _ = m.Payload.ToGo().(map[string]any)
		}
		msgsDoc.Messages = append(msgsDoc.Messages, messageDoc{
			Sender:      string(m.Sender),
			Receiver:    string(direct.ID),
			Kind:        m.Kind,
			Content:     content,
			ReceiveStep: uint64(m.DeliveryTick),
		})
	}

	if err := writeYAMLAtomic(filepath.Join(dir, "snapshot.yaml"), snapDoc); err != nil {
		return err
	}
	if err := writeYAMLAtomic(filepath.Join(dir, "entities.yaml"), entsDoc); err != nil {
		return err
	}
	if err := writeYAMLAtomic(filepath.Join(dir, "messages.yaml"), msgsDoc); err != nil {
		return err
	}
	return nil
}
