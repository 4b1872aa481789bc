package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cqlb/internal/catalog"
	"github.com/roach88/cqlb/internal/testutil"
)

// seedCatalog renders the shop definitions into a fresh catalog file.
func seedCatalog(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "statements.db")
	opts := &RenderOptions{
		RootOptions: &RootOptions{Format: "text"},
		Catalog:     dbPath,
		IDGenerator: testutil.NewFixedIDGenerator("seed"),
	}
	_, err := executeRender(t, opts, "testdata/queries/shop.yaml")
	require.NoError(t, err)
	return dbPath
}

func executeCatalog(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewCatalogCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCatalogList(t *testing.T) {
	dbPath := seedCatalog(t)

	out, err := executeCatalog(t, "text", "list", "--db", dbPath)
	require.NoError(t, err)

	ordersID := catalog.StatementID(ordersQuery)[:12]
	assert.Contains(t, out, ordersID+"  orders_by_customer\n")
	assert.Contains(t, out, "raw_scan (unchecked)\n")
}

func TestCatalogListJSONEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	out, err := executeCatalog(t, "json", "list", "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   []catalog.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Data)
}

func TestCatalogShow(t *testing.T) {
	dbPath := seedCatalog(t)

	out, err := executeCatalog(t, "text", "show", "--db", dbPath, "orders_by_customer")
	require.NoError(t, err)
	assert.Equal(t, ordersQuery+"\n", out)

	out, err = executeCatalog(t, "text", "show", "--db", dbPath, "--pretty", "raw_scan")
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n  *\nFROM \"logs\"\nWHERE ts > now()\n", out)
}

func TestCatalogShowJSON(t *testing.T) {
	dbPath := seedCatalog(t)

	out, err := executeCatalog(t, "json", "show", "--db", dbPath, "orders_by_customer")
	require.NoError(t, err)

	var resp struct {
		Data catalog.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "seed", resp.Data.BuildID)
	assert.Equal(t, "shop", resp.Data.Keyspace)
	assert.Equal(t, "orders", resp.Data.Table)
}

func TestCatalogShowUnknown(t *testing.T) {
	dbPath := seedCatalog(t)

	_, err := executeCatalog(t, "text", "show", "--db", dbPath, "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestCatalogDelete(t *testing.T) {
	dbPath := seedCatalog(t)

	out, err := executeCatalog(t, "text", "delete", "--db", dbPath, "raw_scan")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Deleted raw_scan")

	_, err = executeCatalog(t, "text", "delete", "--db", dbPath, "raw_scan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestCatalogRequiresDB(t *testing.T) {
	_, err := executeCatalog(t, "text", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"db" not set`)
}
