// Package scenario loads Lua-scripted blackjack rounds and replays
// them against the round state machine.
package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Menu choices as the table reads them.
const (
	choiceHit   = "1"
	choiceStand = "2"
)

// Scenario is a scripted round: deck controls plus an ordered list of
// player actions and expectations.
type Scenario struct {
	Name       string
	Seed       int64
	Unshuffled bool
	Steps      []Step
}

// Step is one scripted action with its arguments.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile evaluates a Lua script and returns the Scenario
// it builds. The script must return the Scenario userdata.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerLuaTypes(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	registerScenarioType(state)
	registerScenarioConstructor(state)
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "seed", Function: scenarioSeed},
	{Name: "unshuffled", Function: scenarioUnshuffled},
	{Name: "deal", Function: scenarioDeal},
	{Name: "input", Function: scenarioInput},
	{Name: "hit", Function: scenarioHit},
	{Name: "stand", Function: scenarioStand},
	{Name: "expect_outcome", Function: scenarioExpectOutcome},
	{Name: "expect_phase", Function: scenarioExpectPhase},
	{Name: "expect_player_total", Function: scenarioExpectPlayerTotal},
	{Name: "expect_dealer_total", Function: scenarioExpectDealerTotal},
	{Name: "expect_remaining", Function: scenarioExpectRemaining},
}

func scenarioSeed(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Seed = int64(lua.CheckInteger(state, 2))
	return 0
}

func scenarioUnshuffled(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Unshuffled = true
	return 0
}

func scenarioDeal(state *lua.State) int {
	scenario := checkScenario(state)
	opts := optionalTable(state, 2)
	for key := range opts {
		switch key {
		case "seed", "unshuffled", "burn":
		default:
			lua.Errorf(state, "unknown deal option %q", key)
			return 0
		}
	}
	appendStep(scenario, "deal", opts)
	return 0
}

func scenarioInput(state *lua.State) int {
	scenario := checkScenario(state)
	text := lua.CheckString(state, 2)
	if strings.TrimSpace(text) == "" {
		lua.Errorf(state, "input text is required")
		return 0
	}
	appendStep(scenario, "input", map[string]any{"text": text})
	return 0
}

func scenarioHit(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "input", map[string]any{"text": choiceHit})
	return 0
}

func scenarioStand(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "input", map[string]any{"text": choiceStand})
	return 0
}

func scenarioExpectOutcome(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckString(state, 2)
	if _, err := parseOutcome(value); err != nil {
		lua.Errorf(state, "%s", err.Error())
		return 0
	}
	appendStep(scenario, "expect_outcome", map[string]any{"outcome": value})
	return 0
}

func scenarioExpectPhase(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckString(state, 2)
	if _, err := parsePhase(value); err != nil {
		lua.Errorf(state, "%s", err.Error())
		return 0
	}
	appendStep(scenario, "expect_phase", map[string]any{"phase": value})
	return 0
}

func scenarioExpectPlayerTotal(state *lua.State) int {
	scenario := checkScenario(state)
	total := lua.CheckInteger(state, 2)
	appendStep(scenario, "expect_player_total", map[string]any{"total": total})
	return 0
}

func scenarioExpectDealerTotal(state *lua.State) int {
	scenario := checkScenario(state)
	total := lua.CheckInteger(state, 2)
	appendStep(scenario, "expect_dealer_total", map[string]any{"total": total})
	return 0
}

func scenarioExpectRemaining(state *lua.State) int {
	scenario := checkScenario(state)
	count := lua.CheckInteger(state, 2)
	appendStep(scenario, "expect_remaining", map[string]any{"count": count})
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	default:
		return nil
	}
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
