package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cqlb/internal/querydef"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool // treat unchecked caller text as an error
}

// ValidationError is one problem found in a definition.
type ValidationError struct {
	Name    string `json:"name,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Definitions int               `json:"definitions"`
	Errors      []ValidationError `json:"errors,omitempty"`
	Warnings    []ValidationError `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check query definitions without rendering",
		Long: `Load and compile every query definition, reporting all errors at once.

Statements that contain raw selectors, raw terms, raw relations or custom
index expressions are reported as warnings, since their text is emitted
verbatim. With --strict they are errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on unchecked caller text")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	defs, loadErrs := LoadDefinitions(path, querydef.LoadModeCollectAll)
	if len(defs) == 0 && len(loadErrs) > 0 {
		le := firstLoadError(loadErrs)
		return outputValidateError(formatter, le.Code, le.Message)
	}
	formatter.VerboseLog("Loaded %d definition(s) from %s", len(defs), path)

	result := ValidationResult{Definitions: len(defs)}
	for _, err := range loadErrs {
		result.Errors = append(result.Errors, toValidationError(firstLoadError([]error{err})))
	}

	for _, c := range CompileAll(defs) {
		formatter.VerboseLog("Validating query: %s", c.Definition.Name)
		if c.Err != nil {
			result.Errors = append(result.Errors, toValidationError(c.Err))
			continue
		}
		for _, w := range c.Statement.Validate().Warnings {
			finding := ValidationError{
				Name:    c.Definition.Name,
				Message: w,
				Code:    ErrCodeUnchecked,
				Line:    lineOf(c.Definition),
			}
			if opts.Strict {
				result.Errors = append(result.Errors, finding)
			} else {
				result.Warnings = append(result.Warnings, finding)
			}
		}
	}

	if len(result.Errors) > 0 {
		return outputValidationErrors(formatter, result)
	}

	result.Valid = true
	return outputValidateSuccess(formatter, result)
}

func toValidationError(le *LoadError) ValidationError {
	return ValidationError{
		Name:    le.Name,
		Field:   le.Field,
		Message: le.Message,
		Code:    le.Code,
		Line:    le.Line(),
	}
}

func lineOf(def querydef.Definition) int {
	if def.Pos.IsValid() {
		return def.Pos.Line()
	}
	return 0
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "⚠ %s: %s\n", w.Name, w.Message)
	}
	fmt.Fprintf(formatter.Writer, "✓ All %d definition(s) valid\n", result.Definitions)
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	// Load errors are command-level errors (exit code 2)
	return formatter.fail(ExitCommandError, code, message)
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))

	if formatter.IsJSON() {
		first := result.Errors[0]
		if err := formatter.Failure(first.Code, first.Message, result); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range result.Errors {
		location := err.Name
		if err.Field != "" {
			location += "." + err.Field
		}
		if err.Line > 0 {
			location = fmt.Sprintf("%s (line %d)", location, err.Line)
		}
		if location != "" {
			fmt.Fprintln(formatter.Writer, location)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return exitErr
}
