package script

import "github.com/vivarium-sim/vivarium/sim"

func init() {
	sim.NewScriptControllerFunc = func(id sim.EntityId, def sim.ScriptDef) (sim.ScriptController, error) {
		return NewController(id, def)
	}
}
