// Package config builds Loaders from TOML or YAML files.
//
// A configuration file names the sources and overrides loading options:
//
//	# harvest.toml
//	dir = "results"
//	filter = "wheat*.out"
//	fill = true
//	continue_on_error = true
//
// or, the same in YAML:
//
//	dir: results
//	filter: wheat*.out
//	fill: true
//	continue_on_error: true
//
// Keys that are absent keep their defaults, so a file holding nothing but
// "dir" loads every *.out file in that directory with constants attached.
// Explicit files can be listed instead of, or alongside, a directory:
//
//	files = ["a.out", "results/b.out"]
//
// Explicitly listed files load first, in the order given, then the
// directory scan.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/harvest"
)

// fileConfig is the on-disk shape: sources plus the loader options inlined
// at the top level.
type fileConfig struct {
	Dir   string   `toml:"dir" yaml:"dir"`
	Files []string `toml:"files" yaml:"files"`

	harvest.Options `yaml:",inline"`
}

// Load reads a configuration file and returns the Loader it describes. The
// format is decided by extension: .toml, .yaml, or .yml.
//
// Example:
//
//	loader, err := config.Load("harvest.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, warnings, err := loader.Table()
func Load(path string) (*harvest.Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parse(data, toml.Unmarshal)
	case ".yaml", ".yml":
		return parse(data, yaml.Unmarshal)
	default:
		return nil, fmt.Errorf("config: %s: unsupported extension (want .toml, .yaml, or .yml)", path)
	}
}

// LoadReader reads a configuration document from r. The format argument
// names the syntax: "toml" or "yaml".
func LoadReader(r io.Reader, format string) (*harvest.Loader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch strings.ToLower(format) {
	case "toml":
		return parse(data, toml.Unmarshal)
	case "yaml", "yml":
		return parse(data, yaml.Unmarshal)
	default:
		return nil, fmt.Errorf("config: unsupported format %q (want toml or yaml)", format)
	}
}

// parse overlays the document onto the default options and builds the
// Loader. Absent keys keep their defaults.
func parse(data []byte, unmarshal func([]byte, any) error) (*harvest.Loader, error) {
	cfg := fileConfig{Options: harvest.DefaultOptions()}
	if err := unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Dir == "" && len(cfg.Files) == 0 {
		return nil, fmt.Errorf("config: no sources: set dir or files")
	}

	sources := append([]string(nil), cfg.Files...)
	if cfg.Dir != "" {
		sources = append(sources, cfg.Dir)
	}
	return harvest.New(cfg.Options, sources...), nil
}
