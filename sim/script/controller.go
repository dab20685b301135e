// Package script implements sim.ScriptController against an embedded Lua VM
// (github.com/yuin/gopher-lua), one *lua.LState per entity. It installs the
// host's capability table (self.*, world.*) as Lua globals before the
// script body runs, and enforces the guest contract — update, get_state,
// set_state must all be defined — at construction time.
//
// This package's init() sets sim.NewScriptControllerFunc so sim itself
// never imports gopher-lua.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/vivarium-sim/vivarium/sim"
)

// requiredCallables are the guest functions every script must define.
var requiredCallables = []string{"update", "get_state", "set_state"}

// Controller is one entity's sandboxed Lua VM, owning its incoming message
// queue and outgoing command buffer.
type Controller struct {
	id    sim.EntityId
	state *lua.LState

	incoming []sim.Message
	outgoing []sim.Command

	// listEntities backs world.list_entities() for the duration of one
	// Tick call; World passes its current snapshot function in each call.
	listEntities func() []sim.EntityId
}

// NewController installs the capability table, loads def.Source as entity
// id's script, and validates the guest contract. Fails if the kind is not
// "lua", the script does not parse, or it is missing any of
// update/get_state/set_state.
func NewController(id sim.EntityId, def sim.ScriptDef) (*Controller, error) {
	if def.Kind != "lua" {
		return nil, fmt.Errorf("script: unsupported kind %q (only \"lua\" is implemented)", def.Kind)
	}
	L := lua.NewState()
	c := &Controller{id: id, state: L}
	c.installCapabilities()
	if err := L.DoString(def.Source); err != nil {
		L.Close()
		return nil, fmt.Errorf("script: loading entity %q: %w", id, err)
	}
	for _, name := range requiredCallables {
		fn := L.GetGlobal(name)
		if fn.Type() != lua.LTFunction {
			L.Close()
			return nil, fmt.Errorf("script: entity %q: missing required callable %q", id, name)
		}
	}
	return c, nil
}

func (c *Controller) installCapabilities() {
	L := c.state

	self := L.NewTable()
	L.SetField(self, "id", lua.LString(c.id))
	L.SetField(self, "send_msg", L.NewFunction(c.luaSendMsg))
	L.SetField(self, "broadcast_msg", L.NewFunction(c.luaBroadcastMsg))
	L.SetField(self, "destroy", L.NewFunction(c.luaDestroy))
	L.SetField(self, "spawn_entity", L.NewFunction(c.luaSpawnEntity))
	L.SetGlobal("self", self)

	world := L.NewTable()
	L.SetField(world, "list_entities", L.NewFunction(c.luaListEntities))
	L.SetField(world, "record_metric", L.NewFunction(c.luaRecordMetric))
	L.SetGlobal("world", world)
}

// PushIncoming appends a due message to the controller's incoming queue.
func (c *Controller) PushIncoming(msg sim.Message) {
	c.incoming = append(c.incoming, msg)
}

// Tick invokes update(current_tick, messages) with the queued incoming
// messages (cleared first), and returns the commands emitted during the
// call.
func (c *Controller) Tick(now sim.Tick, listEntities func() []sim.EntityId) ([]sim.Command, error) {
	c.listEntities = listEntities

	msgsTable := c.state.NewTable()
	for i, m := range c.incoming {
		content, err := toLua(c.state, m.Payload)
		if err != nil {
			return nil, fmt.Errorf("converting incoming message %d: %w", i, err)
		}
		entry := c.state.NewTable()
		c.state.SetField(entry, "kind", lua.LString(m.Kind))
		c.state.SetField(entry, "content", content)
		msgsTable.Append(entry)
	}
	c.incoming = nil
	c.outgoing = nil

	fn := c.state.GetGlobal("update")
	err := c.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LNumber(now), msgsTable)
	if err != nil {
		c.outgoing = nil
		return nil, err
	}
	out := c.outgoing
	c.outgoing = nil
	return out, nil
}

// GetState invokes get_state() and converts the result to the JSON object model.
func (c *Controller) GetState() (sim.Value, error) {
	fn := c.state.GetGlobal("get_state")
	if err := c.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return sim.Value{}, err
	}
	ret := c.state.Get(-1)
	c.state.Pop(1)
	return fromLua(ret)
}

// SetState converts state to the guest value model and invokes set_state(record).
func (c *Controller) SetState(state sim.Value) error {
	lv, err := toLua(c.state, state)
	if err != nil {
		return err
	}
	fn := c.state.GetGlobal("set_state")
	return c.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lv)
}

func (c *Controller) luaSendMsg(L *lua.LState) int {
	receiver := sim.EntityId(L.CheckString(1))
	kind := L.CheckString(2)
	content := L.CheckAny(3)
	delay := int64(L.CheckNumber(4))

	payload, err := fromLua(content)
	if err != nil {
		L.RaiseError("self.send_msg: %v", err)
		return 0
	}
	c.outgoing = append(c.outgoing, sim.SendMessageCommand{
		Sender:   c.id,
		Receiver: sim.DirectReceiver{ID: receiver},
		Kind:     kind,
		Payload:  payload,
		Delay:    sim.Tick(delay),
	})
	return 0
}

func (c *Controller) luaBroadcastMsg(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	y := float64(L.CheckNumber(2))
	radius := float64(L.CheckNumber(3))
	kind := L.CheckString(4)
	content := L.CheckAny(5)

	payload, err := fromLua(content)
	if err != nil {
		L.RaiseError("self.broadcast_msg: %v", err)
		return 0
	}
	c.outgoing = append(c.outgoing, sim.SendMessageCommand{
		Sender:   c.id,
		Receiver: sim.Radius2DReceiver{X: x, Y: y, Radius: radius},
		Kind:     kind,
		Payload:  payload,
		Delay:    1,
	})
	return 0
}

func (c *Controller) luaDestroy(L *lua.LState) int {
	id := sim.EntityId(L.CheckString(1))
	c.outgoing = append(c.outgoing, sim.RemoveEntityCommand{ID: id})
	return 0
}

func (c *Controller) luaSpawnEntity(L *lua.LState) int {
	id := sim.EntityId(L.CheckString(1))
	scriptID := sim.ScriptId(L.CheckString(2))
	initial := sim.Null
	if L.GetTop() >= 3 {
		v := L.Get(3)
		if v.Type() != lua.LTNil {
			converted, err := fromLua(v)
			if err != nil {
				L.RaiseError("self.spawn_entity: %v", err)
				return 0
			}
			initial = converted
		}
	}
	c.outgoing = append(c.outgoing, sim.SpawnEntityCommand{ID: id, ScriptID: scriptID, InitialState: initial})
	return 0
}

func (c *Controller) luaListEntities(L *lua.LState) int {
	tbl := L.NewTable()
	if c.listEntities != nil {
		for _, id := range c.listEntities() {
			tbl.Append(lua.LString(id))
		}
	}
	L.Push(tbl)
	return 1
}

func (c *Controller) luaRecordMetric(L *lua.LState) int {
	name := sim.MetricName(L.CheckString(1))
	value := float64(L.CheckNumber(2))
	c.outgoing = append(c.outgoing, sim.RecordMetricCommand{Name: name, Value: value})
	return 0
}
