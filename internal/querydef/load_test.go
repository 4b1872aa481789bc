package querydef

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ordersQuery = `SELECT "order_id", "customer", "subtotal" + "tax" AS "total" FROM "shop"."orders" ` +
		`WHERE "customer" = :"customer" AND ("year","month") > (?,?) LIMIT :"page_size"`
	eventsQuery = `SELECT DISTINCT "device" FROM "events" ` +
		`WHERE token("device") > ? AND "tags" CONTAINS 'alert' AND "reading" IS NOT NULL LIMIT 100 ALLOW FILTERING`
)

func renderAll(t *testing.T, defs []Definition) map[string]string {
	t.Helper()
	out := make(map[string]string, len(defs))
	for _, def := range defs {
		stmt, err := Compile(def)
		require.NoError(t, err, def.Name)
		out[def.Name] = stmt.String()
	}
	return out
}

func TestLoadYAMLFile(t *testing.T) {
	defs, err := LoadYAMLFile(filepath.Join("testdata", "yaml", "orders.yaml"))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "orders_by_customer", defs[0].Name)
	assert.Equal(t, "Latest orders for one customer", defs[0].Description)
	assert.Equal(t, "device_events", defs[1].Name)
	require.NotNil(t, defs[1].Limit)
	assert.Equal(t, 100, *defs[1].Limit)

	rendered := renderAll(t, defs)
	assert.Equal(t, ordersQuery, rendered["orders_by_customer"])
	assert.Equal(t, eventsQuery, rendered["device_events"])
}

func TestLoadCUEDir(t *testing.T) {
	defs, err := LoadCUEDir(filepath.Join("testdata", "cue"))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "orders_by_customer", defs[0].Name)
	assert.True(t, defs[0].Pos.IsValid())

	rendered := renderAll(t, defs)
	assert.Equal(t, ordersQuery, rendered["orders_by_customer"])
	assert.Equal(t, eventsQuery, rendered["device_events"])
}

func TestLoad_YAMLAndCUEAgree(t *testing.T) {
	yamlDefs, err := LoadYAMLFile(filepath.Join("testdata", "yaml", "orders.yaml"))
	require.NoError(t, err)
	cueDefs, err := LoadCUEDir(filepath.Join("testdata", "cue"))
	require.NoError(t, err)

	assert.Equal(t, renderAll(t, yamlDefs), renderAll(t, cueDefs))
}

func TestLoadYAMLFile_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: q\ntable: t\nselector:\n  - column: a\n"), 0644))

	_, err := LoadYAMLFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selector")
}

func TestLoadYAMLFile_RequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table: t\n"), 0644))

	_, err := LoadYAMLFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadYAMLFile_Missing(t *testing.T) {
	_, err := LoadYAMLFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadDir_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	doc := []byte("name: q\ntable: t\nselectors:\n  - all: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), doc, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), doc, 0644))

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `duplicate query name "q"`)
	assert.Len(t, result.Definitions, 1)
	assert.Equal(t, 2, result.FileCount)
}

func TestLoadDir_Modes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("bogus: 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("also_bogus: 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("name: ok\ntable: t\n"), 0644))

	_, errs := LoadDir(dir, LoadModeFailFast)
	assert.Len(t, errs, 1)

	result, errs := LoadDir(dir, LoadModeCollectAll)
	assert.Len(t, errs, 2)
	require.Len(t, result.Definitions, 1)
	assert.Equal(t, "ok", result.Definitions[0].Name)
}

func TestLoadDir_MixedFormats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: from_yaml\ntable: t\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.cue"), []byte("package q\n\nquery: from_cue: table: \"t\"\n"), 0644))

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.Empty(t, errs)
	require.Len(t, result.Definitions, 2)
	assert.Equal(t, "from_yaml", result.Definitions[0].Name)
	assert.Equal(t, "from_cue", result.Definitions[1].Name)
}

func TestLoadDir_NotADirectory(t *testing.T) {
	_, errs := LoadDir(filepath.Join("testdata", "yaml", "orders.yaml"), LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "not a directory")
}
