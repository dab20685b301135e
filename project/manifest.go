// Package project implements the on-disk project layout: a manifest
// (world.yaml) naming a script library, a scripts/ directory of Lua source
// files, and a snapshots/ directory of numbered save points.
//
// All YAML is decoded with yaml.v3's KnownFields(true): a typo'd key is a
// load error, not a silently-ignored field.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vivarium-sim/vivarium/sim"
)

const manifestSchemaVersion = "v1"

// ScriptEntry names one script in a project's library and where to find its
// source on disk.
type ScriptEntry struct {
	ID         string `yaml:"id"`
	Kind       string `yaml:"kind"`
	ScriptPath string `yaml:"script_path"`
}

// Manifest is the parsed form of a project's world.yaml.
type Manifest struct {
	SchemaVersion string                 `yaml:"schema_version"`
	Name          string                 `yaml:"name"`
	ScriptLibrary map[string]ScriptEntry `yaml:"script_library"`
}

// Validate checks the structural rules a manifest must satisfy before it can
// back a World: a recognized schema version, a non-empty name, a non-empty
// script library, self-consistent map keys, and only supported script
// kinds.
func (m Manifest) Validate() error {
	if m.SchemaVersion != manifestSchemaVersion {
		return fmt.Errorf("project: unsupported schema_version %q (want %q)", m.SchemaVersion, manifestSchemaVersion)
	}
	if m.Name == "" {
		return fmt.Errorf("project: manifest name must not be empty")
	}
	if len(m.ScriptLibrary) == 0 {
		return fmt.Errorf("project: manifest script_library must not be empty")
	}
	for key, entry := range m.ScriptLibrary {
		if entry.ID != key {
			return fmt.Errorf("project: script_library entry %q has mismatched id %q", key, entry.ID)
		}
		if entry.Kind != "lua" {
			return fmt.Errorf("project: script %q has unsupported kind %q", entry.ID, entry.Kind)
		}
		if entry.ScriptPath == "" {
			return fmt.Errorf("project: script %q has empty script_path", entry.ID)
		}
	}
	return nil
}

func loadManifest(projectDir string) (Manifest, error) {
	path := filepath.Join(projectDir, "world.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, &sim.ConfigError{Path: path, Cause: err}
	}
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return Manifest{}, &sim.ConfigError{Path: path, Cause: err}
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, &sim.ConfigError{Path: path, Cause: err}
	}
	return m, nil
}

func (m Manifest) scriptLibrary(projectDir string) (map[sim.ScriptId]sim.ScriptDef, error) {
	lib := make(map[sim.ScriptId]sim.ScriptDef, len(m.ScriptLibrary))
	for id, entry := range m.ScriptLibrary {
		path := filepath.Join(projectDir, entry.ScriptPath)
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, &sim.ConfigError{Path: path, Cause: err}
		}
		lib[sim.ScriptId(id)] = sim.ScriptDef{
			ID:     sim.ScriptId(id),
			Kind:   entry.Kind,
			Source: string(source),
		}
	}
	return lib, nil
}
