package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_rates.sql", "001_ledger.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	files, err := discoverMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_ledger.sql", "002_rates.sql"}, files)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_again.sql"), []byte("SELECT 1;"), 0o644))
	_, err = discoverMigrations(dir)
	assert.ErrorContains(t, err, "duplicate")
}

func TestExtractVersion(t *testing.T) {
	v, err := extractVersion("001_ledger.sql")
	require.NoError(t, err)
	assert.Equal(t, "001", v)

	_, err = extractVersion("ledger.sql")
	assert.Error(t, err)
}

func TestDiscoverMigrationsInRepo(t *testing.T) {
	files, err := discoverMigrations(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	assert.Contains(t, files, "001_ledger.sql")
}
