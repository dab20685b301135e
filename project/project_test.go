package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivarium-sim/vivarium/sim"
)

func TestManifest_Validate(t *testing.T) {
	good := Manifest{
		SchemaVersion: "v1",
		Name:          "w",
		ScriptLibrary: map[string]ScriptEntry{
			"greeter": {ID: "greeter", Kind: "lua", ScriptPath: "scripts/greeter.lua"},
		},
	}
	assert.NoError(t, good.Validate())

	badVersion := good
	badVersion.SchemaVersion = "v2"
	assert.Error(t, badVersion.Validate())

	noName := good
	noName.Name = ""
	assert.Error(t, noName.Validate())

	empty := good
	empty.ScriptLibrary = nil
	assert.Error(t, empty.Validate())

	mismatch := Manifest{
		SchemaVersion: "v1", Name: "w",
		ScriptLibrary: map[string]ScriptEntry{
			"a": {ID: "b", Kind: "lua", ScriptPath: "x.lua"},
		},
	}
	assert.Error(t, mismatch.Validate())

	badKind := Manifest{
		SchemaVersion: "v1", Name: "w",
		ScriptLibrary: map[string]ScriptEntry{
			"a": {ID: "a", Kind: "wasm", ScriptPath: "x.lua"},
		},
	}
	assert.Error(t, badKind.Validate())
}

func TestScaffold_ThenLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Scaffold(dir))

	config, err := Load(dir, Latest{})
	require.NoError(t, err)
	assert.Equal(t, "new-world", config.Name)
	require.Len(t, config.Entities, 1)
	assert.Equal(t, sim.EntityId("greeter-1"), config.Entities[0].ID)
	assert.Equal(t, sim.ScriptId("greeter"), config.Entities[0].ScriptID)
	require.Contains(t, config.ScriptLibrary, sim.ScriptId("greeter"))
	assert.Contains(t, config.ScriptLibrary["greeter"].Source, "function update")
}

func TestScaffold_NeverOverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("custom content"), 0o644))

	require.NoError(t, Scaffold(dir))

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, "custom content", string(data))
}

func TestLoad_MissingManifestFails(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, Latest{})
	require.Error(t, err)
	var cfgErr *sim.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_DanglingScriptReferenceFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Scaffold(dir))

	entitiesPath := filepath.Join(dir, "snapshots", "0001-initial", "entities.yaml")
	require.NoError(t, writeYAMLAtomic(entitiesPath, entitiesDoc{
		Entities: []entityDoc{{ID: "ghost", ScriptID: "no-such-script"}},
	}))

	_, err := Load(dir, Latest{})
	require.Error(t, err)
}

func TestLoad_SelectByName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Scaffold(dir))

	_, err := Load(dir, Name{S: "0001-initial"})
	require.NoError(t, err)

	_, err = Load(dir, Name{S: "does-not-exist"})
	assert.Error(t, err)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Scaffold(dir))

	snap := sim.Snapshot{
		WorldName: "new-world",
		Entities: []sim.EntitySnapshot{
			{ID: "greeter-1", ScriptID: "greeter", State: sim.NewObject(map[string]sim.Value{"greets": sim.NewInt(3)})},
		},
		PendingMessages: []sim.Message{
			{Sender: "greeter-1", Receiver: sim.DirectReceiver{ID: "greeter-1"}, Kind: "later", DeliveryTick: 9},
		},
		SimulationTime: 7,
	}
	require.NoError(t, Save(dir, "0002-checkpoint", snap))

	config, err := Load(dir, Name{S: "0002-checkpoint"})
	require.NoError(t, err)
	assert.Equal(t, sim.Tick(7), config.SimulationTime)
	require.Len(t, config.Entities, 1)
	assert.True(t, config.Entities[0].InitialState.Equal(sim.NewObject(map[string]sim.Value{"greets": sim.NewInt(3)})))
	require.Len(t, config.PendingMessages, 1)
	assert.Equal(t, sim.Tick(9), config.PendingMessages[0].DeliveryTick)
}

func TestLoad_LatestPicksLexicographicallyGreatestSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Scaffold(dir))
	require.NoError(t, Save(dir, "0002-later", sim.Snapshot{WorldName: "new-world", SimulationTime: 42}))

	config, err := Load(dir, Latest{})
	require.NoError(t, err)
	assert.Equal(t, sim.Tick(42), config.SimulationTime)
}
