package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the rendered text to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Query    string // Compact rendering, empty when compilation failed
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Query != "" {
		fmt.Fprintf(&buf, "\nRendered:\n  %s\n", e.Query)
	}

	return buf.String()
}

// describeOutcome summarizes a result for the Actual field.
func describeOutcome(result *Result) string {
	if result.Failed() {
		return fmt.Sprintf("compilation failed with %s: %s", result.ErrorCode, result.ErrorMessage)
	}
	return fmt.Sprintf("rendered %q", result.Query)
}

func assertRenders(result *Result, assertion Assertion) error {
	if !result.Failed() && result.Query == assertion.Query {
		return nil
	}
	return &AssertionError{
		Type:     AssertRenders,
		Expected: fmt.Sprintf("rendered %q", assertion.Query),
		Actual:   describeOutcome(result),
		Query:    result.Query,
	}
}

func assertRendersPretty(result *Result, assertion Assertion) error {
	// YAML block scalars keep a trailing newline the renderer never emits.
	expected := strings.TrimSuffix(assertion.Pretty, "\n")
	if !result.Failed() && result.PrettyQuery == expected {
		return nil
	}
	actual := describeOutcome(result)
	if !result.Failed() {
		actual = fmt.Sprintf("rendered %q", result.PrettyQuery)
	}
	return &AssertionError{
		Type:     AssertRendersPretty,
		Expected: fmt.Sprintf("rendered %q", expected),
		Actual:   actual,
		Query:    result.Query,
	}
}

func assertFails(result *Result, assertion Assertion) error {
	if result.ErrorCode == assertion.Error {
		return nil
	}
	return &AssertionError{
		Type:     AssertFails,
		Expected: fmt.Sprintf("compilation failure with %s", assertion.Error),
		Actual:   describeOutcome(result),
		Query:    result.Query,
	}
}

func assertChecked(result *Result, assertion Assertion) error {
	if result.Failed() {
		return &AssertionError{
			Type:     AssertChecked,
			Expected: fmt.Sprintf("checked = %t", *assertion.Checked),
			Actual:   describeOutcome(result),
		}
	}
	if result.Checked == *assertion.Checked {
		return nil
	}
	actual := fmt.Sprintf("checked = %t", result.Checked)
	if len(result.Warnings) > 0 {
		actual += " (" + strings.Join(result.Warnings, "; ") + ")"
	}
	return &AssertionError{
		Type:     AssertChecked,
		Expected: fmt.Sprintf("checked = %t", *assertion.Checked),
		Actual:   actual,
		Query:    result.Query,
	}
}

func assertContains(result *Result, assertion Assertion) error {
	if result.Failed() {
		return &AssertionError{
			Type:     AssertContains,
			Expected: fmt.Sprintf("text containing %q", assertion.Text),
			Actual:   describeOutcome(result),
		}
	}

	n := strings.Count(result.Query, assertion.Text)
	switch {
	case assertion.Count == 0 && n > 0:
		return nil
	case assertion.Count > 0 && n == assertion.Count:
		return nil
	}

	expected := fmt.Sprintf("text containing %q", assertion.Text)
	if assertion.Count > 0 {
		expected = fmt.Sprintf("text containing %q exactly %d time(s)", assertion.Text, assertion.Count)
	}
	return &AssertionError{
		Type:     AssertContains,
		Expected: expected,
		Actual:   fmt.Sprintf("found %d time(s)", n),
		Query:    result.Query,
	}
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages. An empty slice means all assertions passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertRenders:
			err = assertRenders(result, assertion)
		case AssertRendersPretty:
			err = assertRendersPretty(result, assertion)
		case AssertFails:
			err = assertFails(result, assertion)
		case AssertChecked:
			if assertion.Checked == nil {
				err = fmt.Errorf("assertion[%d]: checked requires a value", i)
			} else {
				err = assertChecked(result, assertion)
			}
		case AssertContains:
			err = assertContains(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
