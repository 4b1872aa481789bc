package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cqlb/internal/catalog"
	"github.com/roach88/cqlb/internal/querydef"
)

func TestRun_Scenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_RecordsRendering(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/raw_relation_unchecked.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Failed())
	assert.Equal(t, catalog.StatementID(result.Query), result.StatementID)
	assert.Contains(t, result.PrettyQuery, "\nAND seq > 10")
	assert.False(t, result.Checked)
	assert.Equal(t, []string{`where[1]: raw relation "seq > 10" is not checked`}, result.Warnings)
}

func TestRun_RecordsFailure(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/zero_limit_fails.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Failed())
	assert.Equal(t, ErrCodeInvalidArgument, result.ErrorCode)
	assert.Contains(t, result.ErrorMessage, "limit must be strictly positive")
	assert.Empty(t, result.Query)
}

func TestRun_FailingAssertionMarksResult(t *testing.T) {
	s := &Scenario{
		Name:        "wrong_expectation",
		Description: "expects text that is never rendered",
		Query:       querydef.Definition{Name: "wrong_expectation", Table: "foo"},
		Assertions: []Assertion{
			{Type: AssertRenders, Query: `SELECT * FROM "foo"`},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `rendered "SELECT FROM \"foo\""`)
}

func TestRunContext_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scenario{
		Name:        "canceled",
		Description: "save runs under a canceled context",
		Query:       querydef.Definition{Name: "canceled", Table: "foo"},
		Assertions:  []Assertion{{Type: AssertContains, Text: "FROM"}},
	}

	_, err := RunContext(ctx, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save statement")
}

func TestClassifyError(t *testing.T) {
	_, err := querydef.Compile(querydef.Definition{
		Table:     "foo",
		Selectors: []querydef.SelectorDef{{All: true, As: "x"}},
	})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidState, classifyError(err))

	_, err = querydef.Compile(querydef.Definition{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeCompile, classifyError(err))
}
