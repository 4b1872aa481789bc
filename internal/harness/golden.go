package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders the parts of a result that golden files pin: the
// rendered text in both modes, or the failure code and message.
//
// The format is plain text so pretty renderings stay readable in review:
//
//	scenario: <name>
//	checked: <true|false>
//	warning: <message>        (one line per warning)
//	--- compact
//	<query>
//	--- pretty
//	<pretty query>
//
// A failed compilation replaces everything after the scenario line with
// "error: <code>".
func Snapshot(name string, result *Result) []byte {
	var buf strings.Builder

	fmt.Fprintf(&buf, "scenario: %s\n", name)
	if result.Failed() {
		fmt.Fprintf(&buf, "error: %s", result.ErrorCode)
		return []byte(buf.String())
	}

	fmt.Fprintf(&buf, "checked: %t\n", result.Checked)
	for _, w := range result.Warnings {
		fmt.Fprintf(&buf, "warning: %s\n", w)
	}
	fmt.Fprintf(&buf, "--- compact\n%s\n", result.Query)
	fmt.Fprintf(&buf, "--- pretty\n%s", result.PrettyQuery)

	return []byte(buf.String())
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Snapshot(scenarioName, result))
}
