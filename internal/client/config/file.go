package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/flagx"
	"gopkg.in/yaml.v3"
)

// parseFile overlays cfg with values loaded from the file named by -c or
// -config. Files ending in .yaml or .yml are read as YAML, anything else as
// JSON. Keys missing from the file keep their current value.
//
// Panics on read or unmarshal errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}
	merge(cfg, fc)
}

func decodeFile(path string, data []byte) (Config, error) {
	var fc Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err := yaml.Unmarshal(data, &fc)
		return fc, err
	default:
		err := json.Unmarshal(data, &fc)
		return fc, err
	}
}
