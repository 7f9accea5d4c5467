package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScenario is returned by ParseScenario for unrecognised names.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario selects which demo populates the world and which systems run.
type Scenario uint8

const (
	// ScenarioBouncy keeps a population of heavy balls bouncing under gravity.
	ScenarioBouncy Scenario = iota
	// ScenarioWalker runs random walkers.
	ScenarioWalker
	// ScenarioRockets evolves agents' move sequences towards a target.
	ScenarioRockets
)

var scenarioNames = map[Scenario]string{
	ScenarioBouncy:  "bouncy",
	ScenarioWalker:  "walker",
	ScenarioRockets: "rockets",
}

func (s Scenario) String() string {
	if name, ok := scenarioNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scenario(%d)", uint8(s))
}

// ParseScenario converts a scenario name to a Scenario.
func ParseScenario(name string) (Scenario, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range scenarioNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}
