// Package config loads the ambient TOML configuration: a
// repository-local config.toml layered over a user-global file, decoded
// with github.com/BurntSushi/toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the decoded shape of both config.toml files. None of its
// values participate in any OID computation — they steer only ambient
// behavior.
type Config struct {
	User struct {
		Name  string `toml:"name,omitempty"`
		Email string `toml:"email,omitempty"`
	} `toml:"user,omitempty"`
	Init struct {
		DefaultBranch string `toml:"default_branch,omitempty"`
	} `toml:"init,omitempty"`
	Diff struct {
		Tool string `toml:"tool,omitempty"`
	} `toml:"diff,omitempty"`
	Reflog struct {
		Enabled bool `toml:"enabled,omitempty"`
	} `toml:"reflog,omitempty"`
}

const userConfigName = ".agitconfig.toml"

// defaults returns a Config with every ambient default value set
// explicitly (the "master" default branch).
func defaults() Config {
	var c Config
	c.Init.DefaultBranch = "master"
	return c
}

// LoadGlobal decodes $HOME/.agitconfig.toml over the built-in defaults
// (default branch "master"), returning those defaults if it is absent.
func LoadGlobal() (Config, error) {
	cfg := defaults()
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(home, userConfigName)
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadRepo decodes <repoDir>/config.toml, returning zero-value defaults
// if it is absent.
func LoadRepo(repoDir string) (Config, error) {
	var cfg Config
	path := filepath.Join(repoDir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadBaseline layers the global config under the repository config.
// Every non-empty repository string value wins over the global one. The
// reflog switch is combined with OR: the repository config can turn it
// on, but a repository "enabled = false" does not turn off a global true.
func LoadBaseline(repoDir string) (Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return Config{}, err
	}
	repo, err := LoadRepo(repoDir)
	if err != nil {
		return Config{}, err
	}
	merged := global
	if repo.User.Name != "" {
		merged.User.Name = repo.User.Name
	}
	if repo.User.Email != "" {
		merged.User.Email = repo.User.Email
	}
	if repo.Init.DefaultBranch != "" {
		merged.Init.DefaultBranch = repo.Init.DefaultBranch
	}
	if repo.Diff.Tool != "" {
		merged.Diff.Tool = repo.Diff.Tool
	}
	if repo.Reflog.Enabled {
		merged.Reflog.Enabled = true
	}
	return merged, nil
}
