// Package config loads grovel project configuration.
//
// Configuration lives in .grovel.yaml at the project root:
//
//	extensions: [.c, .h]
//	suffix: .snip
//	keyword: USER CODE
//	skipDirs: [.git, Debug, Release]
//	filter: '!(dir startsWith "Drivers/")'
//
// The environment variable GROVEL_CONFIG_PATCH may hold a JSON merge patch
// (written as JSON or YAML) applied on top of the file, for example
// GROVEL_CONFIG_PATCH='{filter: null}'.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/signadot/grovel/debug"
	"github.com/signadot/grovel/marker"
	"github.com/signadot/grovel/snipfile"
	"github.com/signadot/grovel/walk"
)

const (
	FileName = ".grovel.yaml"
	PatchEnv = "GROVEL_CONFIG_PATCH"
)

type Config struct {
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Suffix     string   `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Keyword    string   `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	SkipDirs   []string `json:"skipDirs,omitempty" yaml:"skipDirs,omitempty"`
	Filter     string   `json:"filter,omitempty" yaml:"filter,omitempty"`
}

func Default() *Config {
	return &Config{
		Extensions: append([]string(nil), walk.DefaultExtensions...),
		Suffix:     snipfile.DefaultSuffix,
		Keyword:    marker.DefaultKeyword,
		SkipDirs:   append([]string(nil), walk.DefaultSkipDirs...),
	}
}

// Load reads the configuration at path. When path is empty, dir/.grovel.yaml
// is used if it exists and the defaults otherwise.
func Load(path, dir string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	d, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		d = nil
	default:
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	cfg, err := Parse(d, os.Getenv(PatchEnv))
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration document over the defaults, after
// applying patch as a merge patch when it is not empty.
func Parse(d []byte, patch string) (*Config, error) {
	js := []byte("{}")
	if len(bytes.TrimSpace(d)) != 0 {
		var err error
		js, err = yaml.YAMLToJSON(d)
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(patch) != "" {
		pjs, err := yaml.YAMLToJSON([]byte(patch))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", PatchEnv, err)
		}
		js, err = jsonpatch.MergePatch(js, pjs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", PatchEnv, err)
		}
	}
	if debug.Config() {
		debug.Logf("config %s\n", js)
	}
	cfg := Default()
	if err := json.Unmarshal(js, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	for i, e := range c.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		c.Extensions[i] = e
	}
}

// YAML renders c as a configuration document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Naming() snipfile.Naming {
	return snipfile.Naming{Suffix: c.Suffix}
}

func (c *Config) ScanOpts() []marker.ScanOption {
	return []marker.ScanOption{marker.ScanKeyword(c.Keyword)}
}

// Walker builds the file selection described by c.
func (c *Config) Walker() (*walk.Walker, error) {
	w := &walk.Walker{
		Extensions: c.Extensions,
		SkipDirs:   c.SkipDirs,
		Naming:     c.Naming(),
	}
	if c.Filter != "" {
		f, err := walk.NewFilter(c.Filter)
		if err != nil {
			return nil, err
		}
		w.Filter = f
	}
	return w, nil
}
