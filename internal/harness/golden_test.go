package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Scenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestSnapshot_Failure(t *testing.T) {
	snap := Snapshot("broken", failed(ErrCodeInvalidState))
	assert.Equal(t, "scenario: broken\nerror: INVALID_STATE", string(snap))
}

func TestSnapshot_Rendered(t *testing.T) {
	r := rendered("SELECT x FROM t", "SELECT\n  x\nFROM t")
	r.Checked = false
	r.Warnings = []string{"w1", "w2"}

	want := "scenario: s\n" +
		"checked: false\n" +
		"warning: w1\n" +
		"warning: w2\n" +
		"--- compact\n" +
		"SELECT x FROM t\n" +
		"--- pretty\n" +
		"SELECT\n  x\nFROM t"
	assert.Equal(t, want, string(Snapshot("s", r)))
}
