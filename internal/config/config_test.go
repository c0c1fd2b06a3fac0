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

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlnoga/filmr/internal/filmstock"
)

func TestDefaultHasSaneBackendAndConcurrency(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "cpu", cfg.DefaultBackend)
	assert.Equal(t, 2, cfg.MaxConcurrentJobs)
}

func TestLoadStockLibraryWithoutCustomDirReturnsBuiltins(t *testing.T) {
	lib, err := LoadStockLibrary(Default())
	require.NoError(t, err)
	assert.Contains(t, lib, "Kodak Portra 400")
}

func TestLoadStockLibraryMergesCustomPresetDir(t *testing.T) {
	dir := t.TempDir()
	custom := filmstock.StandardDaylight()
	custom.Name = "Studio Special"
	data, err := filmstock.EncodeSingle(custom)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "studio.json"), data, 0644))

	lib, err := LoadStockLibrary(Config{CustomStocksDir: dir})
	require.NoError(t, err)
	assert.Contains(t, lib, "Studio Special")
	assert.Contains(t, lib, "Kodak Portra 400")
}

func TestLoadStockLibraryMissingCustomDirIsNotAnError(t *testing.T) {
	_, err := LoadStockLibrary(Config{CustomStocksDir: "/no/such/directory"})
	assert.NoError(t, err)
}

func TestConfigRoundTripsThroughJSON(t *testing.T) {
	cfg := Config{CustomStocksDir: "/tmp/stocks", DefaultBackend: "gpu", MaxConcurrentJobs: 4}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	var back Config
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}
