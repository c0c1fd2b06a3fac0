// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the user-level filmr configuration file and merges
// any loose preset files it points to, following nightlight's pattern of
// small structs decoded directly with encoding/json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mlnoga/filmr/internal/filmrerr"
	"github.com/mlnoga/filmr/internal/filmstock"
)

// FileName is the config file name inside the user's home directory.
const FileName = ".filmr/config.json"

// Config is the on-disk user configuration.
type Config struct {
	// CustomStocksDir, if set, is scanned for additional *.json preset
	// files (single-stock or {"stocks": {...}} shape) to merge into the
	// built-in library.
	CustomStocksDir string `json:"customStocksDir,omitempty"`

	// DefaultBackend records "cpu" or "gpu" and is saved with the config;
	// nothing reads it when choosing a backend (that comes from
	// simconfig.Config.UseGPU).
	DefaultBackend string `json:"defaultBackend,omitempty"`

	// MaxConcurrentJobs bounds internal/worker.Manager's concurrency for
	// the serve command.
	MaxConcurrentJobs int `json:"maxConcurrentJobs,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		DefaultBackend:    "cpu",
		MaxConcurrentJobs: 2,
	}
}

// Path returns the absolute path to the user's config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", filmrerr.Wrapf(err, "resolving home directory")
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the user config file, returning Default() if it does not
// exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, filmrerr.Wrapf(err, "reading config %s", path)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, filmrerr.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to the user's config file, creating the parent
// directory if necessary.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return filmrerr.Wrapf(err, "creating config directory")
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return filmrerr.Wrapf(err, "encoding config")
	}
	return os.WriteFile(path, data, 0644)
}

// LoadStockLibrary returns the built-in film stock presets merged with any
// loose *.json files found in cfg.CustomStocksDir. Later files win on name
// collisions.
func LoadStockLibrary(cfg Config) (map[string]filmstock.Stock, error) {
	library := filmstock.Library()
	if cfg.CustomStocksDir == "" {
		return library, nil
	}

	entries, err := os.ReadDir(cfg.CustomStocksDir)
	if os.IsNotExist(err) {
		return library, nil
	}
	if err != nil {
		return nil, filmrerr.Wrapf(err, "reading custom stocks dir %s", cfg.CustomStocksDir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(cfg.CustomStocksDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, filmrerr.Wrapf(err, "reading preset %s", path)
		}
		decoded, err := filmstock.DecodeLibrary(data)
		if err != nil {
			return nil, filmrerr.Wrapf(err, "parsing preset %s", path)
		}
		for name, stock := range decoded {
			library[name] = stock
		}
	}
	return library, nil
}
