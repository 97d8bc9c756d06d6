package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andrew-torda/pdbstruct/internal/config"
	"github.com/andrew-torda/pdbstruct/pdb"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValid(t *testing.T) {
	d := config.Defaults()
	require.NoError(t, d.Validate())
	assert.Equal(t, pdb.RCSB, d.Site())
	assert.False(t, d.ReadOptions().AllAltLocs)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdbstruct.yaml")
	content := `log:
  level: debug
  format: json
jobs: 3
reader:
  all_alternate_locations: true
fetch:
  site: pdbj
  timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
	assert.Equal(t, 3, cfg.Jobs)
	assert.True(t, cfg.ReadOptions().AllAltLocs)
	assert.Equal(t, pdb.PDBj, cfg.Site())
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "pdbstruct.sqlite", cfg.Index.Path)
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PDBSTRUCT_JOBS", "7")
	t.Setenv("PDBSTRUCT_INDEX_PATH", "/tmp/x.sqlite")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Jobs)
	assert.Equal(t, "/tmp/x.sqlite", cfg.Index.Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: 0\n"), 0o600))
	_, err = config.Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  site: mars\n"), 0o600))
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestBindFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().Int("jobs", 1, "")
	cmd.Flags().String("site", "rcsb", "")
	cmd.Flags().Bool("all-altlocs", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--site", "pdbe"}))

	cfg := config.Defaults()
	jobs := cfg.Jobs
	require.NoError(t, config.BindFlags(cmd, cfg))
	assert.Equal(t, pdb.PDBe, cfg.Site())
	assert.Equal(t, jobs, cfg.Jobs)
	assert.False(t, cfg.Reader.AllAltLocs)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := config.Defaults()
	cfg.Jobs = 2
	b, err := cfg.YAML()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
