// Package config provides the configuration loader for weld.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Weldfile represents the structure of the weld.yaml configuration file.
type Weldfile struct {
	Version    string   `yaml:"version"`
	SearchPath []string `yaml:"searchPath"`
	CacheDir   string   `yaml:"cacheDir"`
}

// Load reads the configuration from the given working directory. A missing
// file yields the default configuration: search path containing only the
// working directory, no cache-directory override.
func (l *FileConfigLoader) Load(cwd string) (domain.Config, error) {
	path := filepath.Join(cwd, l.Filename)
	return Load(path)
}

// Load reads a configuration file from the given path.
func Load(path string) (domain.Config, error) {
	//nolint:gosec // path is provided by user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Config{SearchPath: []string{"."}}, nil
		}
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var weldfile Weldfile
	if err := yaml.Unmarshal(data, &weldfile); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	cfg := domain.Config{
		SearchPath: weldfile.SearchPath,
		CacheDir:   weldfile.CacheDir,
	}
	if len(cfg.SearchPath) == 0 {
		cfg.SearchPath = []string{"."}
	}
	return cfg, nil
}
