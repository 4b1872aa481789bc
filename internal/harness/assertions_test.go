package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rendered(query, pretty string) *Result {
	r := NewResult()
	r.Query = query
	r.PrettyQuery = pretty
	r.Checked = true
	return r
}

func failed(code string) *Result {
	r := NewResult()
	r.ErrorCode = code
	r.ErrorMessage = "boom"
	return r
}

func boolPtr(b bool) *bool { return &b }

func TestEvaluateAssertions_AllPass(t *testing.T) {
	result := rendered(`SELECT * FROM "foo" LIMIT 1`, "SELECT\n  *\nFROM \"foo\"\nLIMIT 1")

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertRenders, Query: `SELECT * FROM "foo" LIMIT 1`},
		{Type: AssertRendersPretty, Pretty: "SELECT\n  *\nFROM \"foo\"\nLIMIT 1\n"},
		{Type: AssertChecked, Checked: boolPtr(true)},
		{Type: AssertContains, Text: "LIMIT"},
		{Type: AssertContains, Text: `"`, Count: 2},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_RendersMismatch(t *testing.T) {
	result := rendered(`SELECT * FROM "foo"`, "")

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertRenders, Query: `SELECT * FROM "bar"`},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Assertion failed: renders")
	assert.Contains(t, errs[0], `Expected: rendered "SELECT * FROM \"bar\""`)
	assert.Contains(t, errs[0], "Rendered:")
}

func TestEvaluateAssertions_RendersOnFailedCompile(t *testing.T) {
	errs := EvaluateAssertions(failed(ErrCodeCompile), []Assertion{
		{Type: AssertRenders, Query: "SELECT"},
		{Type: AssertRendersPretty, Pretty: "SELECT"},
		{Type: AssertChecked, Checked: boolPtr(true)},
		{Type: AssertContains, Text: "SELECT"},
	})
	require.Len(t, errs, 4)
	for _, e := range errs {
		assert.Contains(t, e, "compilation failed with COMPILE_ERROR: boom")
	}
}

func TestEvaluateAssertions_Fails(t *testing.T) {
	assert.Empty(t, EvaluateAssertions(failed(ErrCodeInvalidState), []Assertion{
		{Type: AssertFails, Error: ErrCodeInvalidState},
	}))

	errs := EvaluateAssertions(failed(ErrCodeInvalidArgument), []Assertion{
		{Type: AssertFails, Error: ErrCodeInvalidState},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "compilation failure with INVALID_STATE")
	assert.Contains(t, errs[0], "compilation failed with INVALID_ARGUMENT")

	errs = EvaluateAssertions(rendered("SELECT", "SELECT"), []Assertion{
		{Type: AssertFails, Error: ErrCodeCompile},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `Actual: rendered "SELECT"`)
}

func TestEvaluateAssertions_CheckedMismatchListsWarnings(t *testing.T) {
	result := rendered("SELECT x FROM t", "")
	result.Checked = false
	result.Warnings = []string{`selectors[0]: raw selector "x" is not checked`}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertChecked, Checked: boolPtr(true)},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "checked = false")
	assert.Contains(t, errs[0], `raw selector "x" is not checked`)
}

func TestEvaluateAssertions_ContainsCount(t *testing.T) {
	result := rendered(`SELECT "a", "b" FROM "t" WHERE "a" = ? AND "b" = ?`, "")

	assert.Empty(t, EvaluateAssertions(result, []Assertion{
		{Type: AssertContains, Text: "?", Count: 2},
	}))

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertContains, Text: "?", Count: 3},
		{Type: AssertContains, Text: "LIMIT"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], `exactly 3 time(s)`)
	assert.Contains(t, errs[0], "found 2 time(s)")
	assert.Contains(t, errs[1], "found 0 time(s)")
}

func TestEvaluateAssertions_InvalidAssertions(t *testing.T) {
	errs := EvaluateAssertions(rendered("SELECT", ""), []Assertion{
		{Type: "trace_order"},
		{Type: AssertChecked},
	})
	require.Len(t, errs, 2)
	assert.Equal(t, `assertion[0]: unknown assertion type "trace_order"`, errs[0])
	assert.Equal(t, "assertion[1]: checked requires a value", errs[1])
}
