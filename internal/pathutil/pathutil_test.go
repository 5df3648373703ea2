package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentOverride(t *testing.T) {
	testCases := []struct {
		env    string
		config string
		db     string
		log    string
	}{
		{env: "", config: "config.yml", db: "pagetime.db", log: "pagetime.log"},
		{env: " test ", config: "config_test.yml", db: "pagetime_test.db", log: "pagetime_test.log"},
	}

	for _, tc := range testCases {
		p := newPaths(tc.env)

		assert.Equal(t, tc.config, p.configFileName)
		assert.Equal(t, tc.db, p.dbFileName)
		assert.Equal(t, tc.log, p.logFileName)
	}
}

func TestComputePaths(t *testing.T) {
	dir := t.TempDir()

	// registered first so it runs after the environment is restored
	t.Cleanup(xdg.Reload)

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	xdg.Reload()

	p := newPaths("dev")
	require.NoError(t, p.computePaths())

	assert.Equal(t, filepath.Join(dir, "config", "pagetime", "config_dev.yml"), p.configFilePath)
	assert.Equal(t, filepath.Join(dir, "data", "pagetime", "pagetime_dev.db"), p.dbFilePath)
	assert.Equal(t, filepath.Join(dir, "data", "pagetime", "log", "pagetime_dev.log"), p.logFilePath)
	assert.DirExists(t, filepath.Join(dir, "data", "pagetime", "log"))
}
