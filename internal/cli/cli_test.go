package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/existflow/taskapi/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree with args and returns stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-console=false"))
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) (string, string) {
	t.Helper()
	dbPath := filepath.Join(dir, "data", "taskapi.db")
	cfgPath := filepath.Join(dir, "taskapi.yaml")
	content := "db_driver: sqlite\ndatabase_url: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath, dbPath
}

func TestMigrateCreatesDatabase(t *testing.T) {
	cfgPath, dbPath := writeConfig(t, t.TempDir())

	out, err := runCLI(t, "--config", cfgPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date (sqlite)")

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	cfgPath, dbPath := writeConfig(t, t.TempDir())

	out, err := runCLI(t, "--config", cfgPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Demo data inserted")

	out, err = runCLI(t, "--config", cfgPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to seed")

	store, err := db.Open(db.DriverSQLite, dbPath)
	require.NoError(t, err)
	defer store.Close()

	var count int
	require.NoError(t, store.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestConfigShowsEffectiveSettings(t *testing.T) {
	cfgPath, dbPath := writeConfig(t, t.TempDir())

	out, err := runCLI(t, "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "database_url: "+dbPath)
	assert.Contains(t, out, "db_driver: sqlite")
}

func TestConfigInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.yaml")

	out, err := runCLI(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "addr:")
	assert.Contains(t, string(data), "8080")
}

func TestUnknownDriverFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "taskapi.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("db_driver: oracle\n"), 0644))

	_, err := runCLI(t, "--config", cfgPath, "migrate")
	assert.ErrorContains(t, err, "unsupported db_driver")
}
