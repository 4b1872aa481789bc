package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/token"

	"github.com/roach88/cqlb/internal/querydef"
	"github.com/roach88/cqlb/internal/statement"
)

// LoadError represents an error that occurred while loading or compiling
// definitions.
type LoadError struct {
	Code    string
	Message string
	Name    string    // Definition name, when known
	Field   string    // Definition field path, when known
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Line returns the source line of the error, or 0.
func (e *LoadError) Line() int {
	if e.Pos.IsValid() {
		return e.Pos.Line()
	}
	return 0
}

// LoadDefinitions loads definitions from a YAML file, a CUE file (its whole
// package directory is loaded) or a directory tree.
func LoadDefinitions(path string, mode querydef.LoadMode) ([]querydef.Definition, []error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions path not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions path: %v", err)}}
	}

	var defs []querydef.Definition
	var errs []error

	switch {
	case info.IsDir():
		result, loadErrs := querydef.LoadDir(path, mode)
		if result != nil {
			defs = result.Definitions
		}
		for _, e := range loadErrs {
			errs = append(errs, convertLoadError(e))
		}
	case filepath.Ext(path) == ".yaml" || filepath.Ext(path) == ".yml":
		defs, err = querydef.LoadYAMLFile(path)
		if err != nil {
			errs = append(errs, convertLoadError(err))
		}
	case filepath.Ext(path) == ".cue":
		defs, err = querydef.LoadCUEDir(filepath.Dir(path))
		if err != nil {
			errs = append(errs, convertLoadError(err))
		}
	default:
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("unsupported definition file: %s", path)}}
	}

	if len(defs) == 0 && len(errs) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no query definitions found in %s", path)}}
	}
	return defs, errs
}

// Compiled pairs a definition with its statement or compilation error.
type Compiled struct {
	Definition querydef.Definition
	Statement  statement.Select
	Err        *LoadError
}

// CompileAll compiles every definition. Failures are kept per definition so
// callers can report all of them.
func CompileAll(defs []querydef.Definition) []Compiled {
	out := make([]Compiled, 0, len(defs))
	for _, def := range defs {
		stmt, err := querydef.Compile(def)
		c := Compiled{Definition: def, Statement: stmt}
		if err != nil {
			c.Err = convertCompileError(def.Name, err)
		}
		out = append(out, c)
	}
	return out
}

// convertLoadError keeps position info from CUE-backed errors.
func convertLoadError(err error) *LoadError {
	var compileErr *querydef.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: compileErr.Message,
			Field:   compileErr.Field,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// convertCompileError converts a compilation error to a LoadError with
// position info.
func convertCompileError(name string, err error) *LoadError {
	le := &LoadError{
		Code:    MapCompileErrorToCode(err),
		Message: err.Error(),
		Name:    name,
	}
	var compileErr *querydef.CompileError
	if errors.As(err, &compileErr) {
		le.Message = compileErr.Message
		le.Field = compileErr.Field
		le.Pos = compileErr.Pos
	}
	return le
}

// MapCompileErrorToCode maps a compilation error to an error code.
// Statement errors keep their category even when wrapped.
func MapCompileErrorToCode(err error) string {
	switch {
	case statement.IsInvalidArgument(err):
		return ErrCodeInvalidArgument
	case statement.IsInvalidState(err):
		return ErrCodeInvalidState
	}
	var compileErr *querydef.CompileError
	if errors.As(err, &compileErr) {
		return ErrCodeDefinition
	}
	return ErrCodeGeneric
}

// firstLoadError unwraps the first error for command-level reporting.
func firstLoadError(errs []error) *LoadError {
	var le *LoadError
	if errors.As(errs[0], &le) {
		return le
	}
	return &LoadError{Code: ErrCodeGeneric, Message: errs[0].Error()}
}
