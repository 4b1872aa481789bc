package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cqlb/internal/catalog"
	"github.com/roach88/cqlb/internal/querydef"
	"github.com/roach88/cqlb/internal/statement"
	"github.com/roach88/cqlb/internal/testutil"
)

// harnessBuildID is the fixed build ID stamped on every saved statement so
// runs are reproducible.
const harnessBuildID = "harness-build"

// Run executes a scenario and returns the result.
//
// The query is compiled and rendered in both modes. A successful statement
// is then saved to an in-memory catalog and read back; a mismatch between
// stored and rendered text is reported as an error. Compilation failures are
// not errors: they are recorded on the result for the fails assertion.
//
// The returned error covers infrastructure problems only. Assertion failures
// are reported through Result.Pass and Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()

	stmt, err := querydef.Compile(scenario.Query)
	if err != nil {
		result.ErrorCode = classifyError(err)
		result.ErrorMessage = err.Error()
	} else {
		if err := record(ctx, scenario, stmt, result); err != nil {
			return nil, err
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// record renders stmt into result and round-trips it through a catalog.
func record(ctx context.Context, scenario *Scenario, stmt statement.Select, result *Result) error {
	entry := catalog.NewEntry(scenario.Query.Name, stmt)
	validation := stmt.Validate()

	result.Query = entry.Query
	result.PrettyQuery = entry.PrettyQuery
	result.StatementID = entry.ID
	result.Checked = validation.Checked
	result.Warnings = append(result.Warnings, validation.Warnings...)

	// Discard logger so catalog chatter does not pollute test output.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat, err := catalog.Open(":memory:",
		catalog.WithIDGenerator(testutil.NewFixedIDGenerator(harnessBuildID)),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	saved, err := cat.Save(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to save statement: %w", err)
	}

	if saved.Query != entry.Query || saved.PrettyQuery != entry.PrettyQuery {
		result.AddError(fmt.Sprintf("catalog round trip changed %q: stored %q", entry.Query, saved.Query))
	}
	if saved.ID != entry.ID {
		result.AddError(fmt.Sprintf("catalog round trip changed statement ID %s to %s", entry.ID, saved.ID))
	}

	return nil
}

// classifyError maps a compilation error to the code the fails assertion
// compares against. Statement errors keep their own code even when wrapped.
func classifyError(err error) string {
	var se *statement.Error
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return ErrCodeCompile
}
