package querydef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"
)

// LoadMode controls how errors are handled while loading a directory.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult holds the definitions found in a directory.
type LoadResult struct {
	Definitions []Definition
	FileCount   int
}

// LoadYAMLFile reads every YAML document in path as a Definition.
// Unknown fields are rejected.
func LoadYAMLFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	var defs []Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	for i := 0; ; i++ {
		var def Definition
		err := decoder.Decode(&def)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: failed to parse YAML: %w", path, i, err)
		}
		if def.Name == "" {
			return nil, fmt.Errorf("%s: document %d: name is required", path, i)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadCUEDir evaluates the CUE package in dir and returns each
// query.<name> struct as a Definition. The label is the default name.
func LoadCUEDir(dir string) ([]Definition, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	queries := value.LookupPath(cue.ParsePath("query"))
	if !queries.Exists() {
		return nil, nil
	}
	iter, err := queries.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []Definition
	for iter.Next() {
		v := iter.Value()
		var def Definition
		if err := v.Decode(&def); err != nil {
			return nil, formatCUEError(err)
		}
		if def.Name == "" {
			def.Name = iter.Label()
		}
		def.Pos = v.Pos()
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadDir loads every .yaml, .yml and .cue definition under dir. CUE files
// are evaluated together as one package per directory. Definition names
// must be unique across the whole tree.
func LoadDir(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("definitions directory: %w", err)}
	}
	if !info.IsDir() {
		return nil, []error{fmt.Errorf("not a directory: %s", dir)}
	}

	yamlFiles, cueDirs, err := findDefinitionFiles(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("error scanning directory: %w", err)}
	}

	result := &LoadResult{FileCount: len(yamlFiles)}
	var errs []error
	seen := make(map[string]string)

	add := func(source string, defs []Definition) bool {
		for _, def := range defs {
			if prev, dup := seen[def.Name]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate query name %q (first defined in %s)", source, def.Name, prev))
				if mode == LoadModeFailFast {
					return false
				}
				continue
			}
			seen[def.Name] = source
			result.Definitions = append(result.Definitions, def)
		}
		return true
	}

	for _, path := range yamlFiles {
		defs, err := LoadYAMLFile(path)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		if !add(path, defs) {
			return result, errs
		}
	}

	for _, d := range cueDirs {
		defs, err := LoadCUEDir(d)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d, err))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.FileCount++
		if !add(d, defs) {
			return result, errs
		}
	}

	return result, errs
}

// findDefinitionFiles returns YAML files and the directories holding CUE
// files, both sorted.
func findDefinitionFiles(dir string) ([]string, []string, error) {
	var yamlFiles []string
	cueDirs := make(map[string]bool)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			yamlFiles = append(yamlFiles, path)
		case ".cue":
			cueDirs[filepath.Dir(path)] = true
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	dirs := make([]string, 0, len(cueDirs))
	for d := range cueDirs {
		dirs = append(dirs, d)
	}
	sort.Strings(yamlFiles)
	sort.Strings(dirs)
	return yamlFiles, dirs, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
			Err:     err,
		}
	}
	return err
}
