// Package fixtures loads the YAML-defined end-to-end scenario plans used
// by the engine's own test suite, so the literal plans named in the
// scenarios can be edited without touching Go source. Grounded on
// internal/regression's Battery loader: a small struct plus
// os.ReadFile/yaml.Unmarshal, generalised here to an embedded FS since the
// fixtures ship inside the module rather than being read from a
// deployment-local path.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// Scenario is one named end-to-end plan fixture (spec.md §8 "End-to-end
// scenarios").
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Plan        any    `yaml:"plan"`
}

// Load reads and parses the named scenario file from internal/fixtures/scenarios.
func Load(name string) (*Scenario, error) {
	data, err := scenarioFS.ReadFile("scenarios/" + name)
	if err != nil {
		return nil, fmt.Errorf("loading fixture %s: %w", name, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", name, err)
	}
	return &s, nil
}

// PlanJSON re-encodes the fixture's plan as the JSON bytes ValidatePlan
// expects, since YAML's richer scalar set (unquoted strings, block
// literals) is more convenient to hand-author than raw JSON.
func (s *Scenario) PlanJSON() ([]byte, error) {
	return json.Marshal(s.Plan)
}

// Names lists every embedded scenario file, sorted, for table-driven tests
// that want to iterate the whole fixture set.
func Names() ([]string, error) {
	entries, err := scenarioFS.ReadDir("scenarios")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
