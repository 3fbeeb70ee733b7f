// SPDX-License-Identifier: GPL-2.0-or-later

// Package config combines registered option defaults, an optional yaml
// file and command line overrides into the settings of one session.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"bspdecomp/bsp"
	"bspdecomp/correlate"
	"bspdecomp/cvar"
	"bspdecomp/cvars"
	"bspdecomp/texture"
	"bspdecomp/vmf"
)

// FileName is looked up next to the input file when no config is given.
const FileName = "bspdecomp.yaml"

// File is the content of a yaml config file.
type File struct {
	// Options maps option names to values
	Options map[string]string `yaml:"options"`
	// FixedTextures replaces materials by their texdata name index
	FixedTextures map[int]string `yaml:"fixed_textures"`
	// ToolRules replaces the built in tool texture rules if not empty
	ToolRules []Rule `yaml:"tool_rules"`
}

// Rule is a tool texture rule with flags written as in "PLAYERCLIP|MONSTERCLIP".
type Rule struct {
	Contents string `yaml:"contents,omitempty"`
	Surface  string `yaml:"surface,omitempty"`
	Texture  string `yaml:"texture"`
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return &f, nil
}

// Load reads the config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return f, nil
}

// Find returns the default config file next to input if there is one.
func Find(input string) (string, bool) {
	p := filepath.Join(filepath.Dir(input), FileName)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// Apply sets the options of the file. Unknown option names are an error.
func (f *File) Apply() error {
	names := make([]string, 0, len(f.Options))
	for n := range f.Options {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if err := cvar.Set(n, f.Options[n]); err != nil {
			return err
		}
	}
	return nil
}

// Rules converts the tool rules into matcher rules.
func (f *File) Rules() ([]texture.Rule, error) {
	rules := make([]texture.Rule, 0, len(f.ToolRules))
	for i, r := range f.ToolRules {
		if r.Texture == "" {
			return nil, errors.Errorf("tool rule %d has no texture", i)
		}
		var tr texture.Rule
		tr.Texture = r.Texture
		if r.Contents != "" {
			c, ok := bsp.ParseBrushFlags(r.Contents)
			if !ok {
				return nil, errors.Errorf("tool rule %d: invalid contents %q", i, r.Contents)
			}
			tr.Contents = c
		}
		if r.Surface != "" {
			s, ok := bsp.ParseSurfaceFlags(r.Surface)
			if !ok {
				return nil, errors.Errorf("tool rule %d: invalid surface flags %q", i, r.Surface)
			}
			tr.Surface = s
		}
		if tr.Contents == 0 && tr.Surface == 0 {
			return nil, errors.Errorf("tool rule %d matches nothing", i)
		}
		rules = append(rules, tr)
	}
	return rules, nil
}

// SetOverrides applies "name=value" pairs given on the command line.
func SetOverrides(kvs []string) error {
	for _, kv := range kvs {
		n, v, ok := strings.Cut(kv, "=")
		if !ok {
			return errors.Errorf("invalid option %q, want name=value", kv)
		}
		if err := cvar.Set(strings.TrimSpace(n), strings.TrimSpace(v)); err != nil {
			return err
		}
	}
	return nil
}

// Config holds the settings of one decompiler session.
type Config struct {
	Source    *texture.Source
	Correlate correlate.Options
	Precision vmf.Precision
	Workers   int
}

// Build reads the current option values. f may be nil.
func Build(f *File) (*Config, error) {
	src := texture.DefaultSource()
	src.FixToolTextures = cvars.TextureFixTools.Bool()
	src.FixPerpendicular = cvars.TextureFixPerpendicular.Bool()
	if f != nil {
		for k, v := range f.FixedTextures {
			src.FixedNames[k] = v
		}
		rules, err := f.Rules()
		if err != nil {
			return nil, err
		}
		if len(rules) != 0 {
			src.Matcher = texture.NewMatcher(rules)
		}
	}
	workers := max(cvars.Workers.Int(), 0)
	return &Config{
		Source: src,
		Correlate: correlate.Options{
			Workers:     workers,
			Occluders:   cvars.CorrelateOccluders.Bool(),
			Areaportals: cvars.CorrelateAreaportals.Bool(),
		},
		Precision: vmf.Precision{
			Float:        cvars.VmfPrecision.Int(),
			TextureAxis:  cvars.VmfPrecisionAxes.Int(),
			TextureScale: cvars.VmfPrecisionScale.Int(),
		},
		Workers: workers,
	}, nil
}
