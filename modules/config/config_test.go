package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/config"
)

func TestLoadRepoAbsentReturnsZeroValue(t *testing.T) {
	cfg, err := config.LoadRepo(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.User.Name)
}

func TestLoadRepoDecodesTOML(t *testing.T) {
	repoDir := t.TempDir()
	content := "[user]\nname = \"Ada\"\nemail = \"ada@example.com\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "config.toml"), []byte(content), 0o644))

	cfg, err := config.LoadRepo(repoDir)
	require.NoError(t, err)
	assert.Equal(t, "Ada", cfg.User.Name)
	assert.Equal(t, "ada@example.com", cfg.User.Email)
}

func TestLoadBaselineRepoWinsOverGlobal(t *testing.T) {
	repoDir := t.TempDir()
	content := "[init]\ndefault_branch = \"trunk\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "config.toml"), []byte(content), 0o644))

	cfg, err := config.LoadBaseline(repoDir)
	require.NoError(t, err)
	assert.Equal(t, "trunk", cfg.Init.DefaultBranch)
}

func TestLoadBaselineDefaultsToMaster(t *testing.T) {
	cfg, err := config.LoadBaseline(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "master", cfg.Init.DefaultBranch)
}
