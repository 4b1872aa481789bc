// Package harness runs rendering scenarios: a query definition plus
// assertions about the text it renders to, or the error it fails with.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	query:
//	  table: foo
//	  selectors: [{all: true}]
//	  limit: 1
//	assertions:
//	  - type: renders
//	    query: 'SELECT * FROM "foo" LIMIT 1'
//	  - type: contains
//	    text: LIMIT
//	    count: 1
//
// The query block is a querydef.Definition; its name defaults to the
// scenario name.
//
// # Assertion Types
//
//   - renders: compact text equals query
//   - renders_pretty: pretty text equals pretty
//   - fails: compilation fails with error code INVALID_ARGUMENT,
//     INVALID_STATE or COMPILE_ERROR
//   - checked: the statement is (or is not) free of unchecked raw text
//   - contains: compact text contains text, exactly count times when
//     count is set
//
// # Golden Files
//
// RunWithGolden snapshots the scenario outcome to
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
//
// Every successful run also saves the statement to an in-memory catalog
// and reads it back, so a scenario fails if persisted text drifts from
// rendered text.
package harness
