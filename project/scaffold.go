package project

import (
	"os"
	"path/filepath"

	"github.com/vivarium-sim/vivarium/sim"
)

const greeterSource = `-- greeter: for each message it receives, says hello to the id in the message's content.from.
function update(tick, messages)
	for i = 1, #messages do
		self.send_msg(messages[i].content.from, "hello", {}, 1)
	end
end

function get_state()
	return {}
end

function set_state(record)
end
`

// Scaffold populates targetDir with a minimal runnable project: a one-script
// manifest, the script's source, and an initial empty snapshot. Never
// overwrites a file that already exists: each existing file is skipped and
// left as it is, and re-running init-project against a populated directory
// succeeds without touching those files.
func Scaffold(targetDir string) error {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return &sim.ConfigError{Path: targetDir, Cause: err}
	}

	manifestPath := filepath.Join(targetDir, "world.yaml")
	if err := writeIfAbsent(manifestPath, []byte(
		"schema_version: v1\n"+
			"name: new-world\n"+
			"script_library:\n"+
			"  greeter:\n"+
			"    id: greeter\n"+
			"    kind: lua\n"+
			"    script_path: scripts/greeter.lua\n")); err != nil {
		return err
	}

	scriptsDir := filepath.Join(targetDir, "scripts")
	if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
		return &sim.ConfigError{Path: scriptsDir, Cause: err}
	}
	if err := writeIfAbsent(filepath.Join(scriptsDir, "greeter.lua"), []byte(greeterSource)); err != nil {
		return err
	}

	snapDir := filepath.Join(targetDir, "snapshots", "0001-initial")
	if err := os.MkdirAll(snapDir, 0o755); err != nil {
		return &sim.ConfigError{Path: snapDir, Cause: err}
	}
	if err := writeYAMLIfAbsent(filepath.Join(snapDir, "snapshot.yaml"),
		snapshotDoc{SchemaVersion: snapshotSchemaVersion, ID: "0001-initial", SimulationTime: 0}); err != nil {
		return err
	}
	if err := writeYAMLIfAbsent(filepath.Join(snapDir, "entities.yaml"),
		entitiesDoc{Entities: []entityDoc{{ID: "greeter-1", ScriptID: "greeter"}}}); err != nil {
		return err
	}
	if err := writeYAMLIfAbsent(filepath.Join(snapDir, "messages.yaml"), messagesDoc{}); err != nil {
		return err
	}
	return nil
}

func writeIfAbsent(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &sim.ConfigError{Path: path, Cause: err}
	}
	return nil
}

func writeYAMLIfAbsent(path string, doc any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeYAMLAtomic(path, doc)
}
