package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vivarium-sim/vivarium/sim"
)

const snapshotSchemaVersion = "v1"

type snapshotDoc struct {
	SchemaVersion  string `yaml:"schema_version"`
	ID             string `yaml:"id"`
	SimulationTime uint64 `yaml:"simulation_time"`
}

type entitiesDoc struct {
	Entities []entityDoc `yaml:"entities"`
}

type entityDoc struct {
	ID           string         `yaml:"id"`
	ScriptID     string         `yaml:"script_id"`
	InitialState map[string]any `yaml:"initial_state"`
}

type messagesDoc struct {
	Messages []messageDoc `yaml:"messages"`
}

type messageDoc struct {
	Sender      string         `yaml:"sender"`
	Receiver    string         `yaml:"receiver"`
	Kind        string         `yaml:"kind"`
	Content     map[string]any `yaml:"content"`
	ReceiveStep uint64         `yaml:"receive_step"`
}

// SnapshotSelection is a closed union identifying which saved snapshot to
// load: either the most recent one, or one named explicitly.
type SnapshotSelection interface {
	isSnapshotSelection()
}

// Latest selects the lexicographically greatest snapshot subdirectory.
type Latest struct{}

func (Latest) isSnapshotSelection() {}

// Name selects the snapshot subdirectory S exactly.
type Name struct {
	S string
}

func (Name) isSnapshotSelection() {}

func resolveSnapshotDir(projectDir string, sel SnapshotSelection) (string, error) {
	root := filepath.Join(projectDir, "snapshots")
	switch s := sel.(type) {
	case Name:
		dir := filepath.Join(root, s.S)
		if _, err := os.Stat(filepath.Join(dir, "snapshot.yaml")); err != nil {
			return "", &sim.ConfigError{Path: dir, Cause: fmt.Errorf("snapshot %q not found: %w", s.S, err)}
		}
		return dir, nil
	case Latest:
		entries, err := os.ReadDir(root)
		if err != nil {
			return "", &sim.ConfigError{Path: root, Cause: err}
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(root, e.Name(), "snapshot.yaml")); err == nil {
				names = append(names, e.Name())
			}
		}
		if len(names) == 0 {
			return "", &sim.ConfigError{Path: root, Cause: fmt.Errorf("no snapshots found")}
		}
		sort.Strings(names)
		return filepath.Join(root, names[len(names)-1]), nil
	default:
		return "", fmt.Errorf("project: unknown snapshot selection %T", sel)
	}
}

func readSnapshotTrio(dir string) (snapshotDoc, entitiesDoc, messagesDoc, error) {
	var snap snapshotDoc
	var ents entitiesDoc
	var msgs messagesDoc

	if err := decodeStrict(filepath.Join(dir, "snapshot.yaml"), &snap); err != nil {
		return snap, ents, msgs, err
	}
	if err := decodeStrict(filepath.Join(dir, "entities.yaml"), &ents); err != nil {
		return snap, ents, msgs, err
	}
	if err := decodeStrict(filepath.Join(dir, "messages.yaml"), &msgs); err != nil {
		return snap, ents, msgs, err
	}
	return snap, ents, msgs, nil
}

func decodeStrict(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &sim.ConfigError{Path: path, Cause: err}
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return &sim.ConfigError{Path: path, Cause: err}
	}
	return nil
}

func writeYAMLAtomic(path string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("project: marshaling %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &sim.ConfigError{Path: path, Cause: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &sim.ConfigError{Path: path, Cause: err}
	}
	return nil
}
