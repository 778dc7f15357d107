package data

import (
	"fmt"
	"math"

	"github.com/Shopify/go-lua"
	"gopkg.in/yaml.v3"
)

// Runs a Lua scenario script. The script must return a table with the same
// fields as a YAML scenario file, which lets maps be generated with loops
// instead of listing every hex.
func RunScenarioScript(name string, script []byte) (*ScenarioFile, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadBuffer(state, string(script), name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return a table")
	}
	value := luaTable(state, -1)
	state.Pop(1)

	// The returned table has the shape of a scenario file, so it goes through
	// the same decoder the YAML loader uses.
	contents, err := yaml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode scenario table: %w", err)
	}
	return ParseScenario(contents)
}

func luaValue(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		if value == math.Trunc(value) {
			return int(value)
		}
		return value
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return luaTable(state, index)
	}
	return nil
}

// Sequences become slices, other tables maps with their string keys. Empty
// tables are nil so that they decode into both.
func luaTable(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	if n := state.RawLength(index); n > 0 {
		items := make([]any, n)
		for i := 1; i <= n; i++ {
			state.RawGetInt(index, i)
			items[i-1] = luaValue(state, -1)
			state.Pop(1)
		}
		return items
	}
	fields := map[string]any{}
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			fields[key] = luaValue(state, -1)
		}
		state.Pop(1)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
