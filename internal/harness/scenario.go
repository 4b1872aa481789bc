package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cqlb/internal/querydef"
)

// Scenario defines a rendering test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the definition under test.
	Query querydef.Definition `yaml:"query"`

	// Assertions validate the outcome. At least one is required.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one aspect of a scenario outcome.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Query is the expected compact text (renders).
	Query string `yaml:"query,omitempty"`

	// Pretty is the expected pretty text (renders_pretty).
	Pretty string `yaml:"pretty,omitempty"`

	// Error is the expected error code (fails).
	Error string `yaml:"error,omitempty"`

	// Checked is the expected validation outcome (checked).
	Checked *bool `yaml:"checked,omitempty"`

	// Text is the fragment to look for (contains).
	Text string `yaml:"text,omitempty"`

	// Count is the exact number of occurrences of Text (contains).
	// Zero means at least one.
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRenders       = "renders"
	AssertRendersPretty = "renders_pretty"
	AssertFails         = "fails"
	AssertChecked       = "checked"
	AssertContains      = "contains"
)

// Error codes reported by the fails assertion.
const (
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeCompile         = "COMPILE_ERROR"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Query.Name == "" {
		scenario.Query.Name = scenario.Name
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every .yaml file in dir, sorted by path.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRenders:
		if a.Query == "" {
			return fmt.Errorf("assertions[%d]: query is required for renders", index)
		}
	case AssertRendersPretty:
		if a.Pretty == "" {
			return fmt.Errorf("assertions[%d]: pretty is required for renders_pretty", index)
		}
	case AssertFails:
		switch a.Error {
		case ErrCodeInvalidArgument, ErrCodeInvalidState, ErrCodeCompile:
		default:
			return fmt.Errorf("assertions[%d]: error must be %s, %s or %s, got %q",
				index, ErrCodeInvalidArgument, ErrCodeInvalidState, ErrCodeCompile, a.Error)
		}
	case AssertChecked:
		if a.Checked == nil {
			return fmt.Errorf("assertions[%d]: checked is required for checked", index)
		}
	case AssertContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for contains", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must not be negative", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
