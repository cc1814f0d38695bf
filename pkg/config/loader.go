// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📄 FileConfig holds defaults read from a config file.
// Flags given on the command line take precedence.
type FileConfig struct {
	Backup     bool     `json:"backup" yaml:"backup" toml:"backup" hcl:"backup,optional"`
	Verbose    bool     `json:"verbose" yaml:"verbose" toml:"verbose" hcl:"verbose,optional"`
	DryRun     bool     `json:"dry_run" yaml:"dry_run" toml:"dry_run" hcl:"dry_run,optional"`
	SkipBinary bool     `json:"skip_binary" yaml:"skip_binary" toml:"skip_binary" hcl:"skip_binary,optional"`
	Ignore     []string `json:"ignore" yaml:"ignore" toml:"ignore" hcl:"ignore,optional"`
	LogDir     string   `json:"log_dir" yaml:"log_dir" toml:"log_dir" hcl:"log_dir,optional"`
}

// LoadFile loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .toml for TOML
// - .hcl for HCL, with the process environment available as env.NAME
//
// Failures are returned as a *ConfigError of kind InvalidConfigFile.
func LoadFile(path string) (*FileConfig, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, newConfigError(InvalidConfigFile, fmt.Sprintf("Config file %s could not be loaded", path), err)
	}
	return cfg, nil
}

func loadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadJSON(data)
	case ".yaml", ".yml":
		return loadYAML(data)
	case ".toml":
		return loadTOML(data)
	case ".hcl":
		return loadHCL(data, path, os.Environ())
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
}

// Apply layers the command line flags over the file values.
// Boolean flags can only switch a feature on; ignore patterns are appended
// and a non-empty log directory replaces the file value.
func (f *FileConfig) Apply(opts Options) Options {
	if f == nil {
		return opts
	}

	merged := Options{
		Backup:     f.Backup || opts.Backup,
		Verbose:    f.Verbose || opts.Verbose,
		DryRun:     f.DryRun || opts.DryRun,
		SkipBinary: f.SkipBinary || opts.SkipBinary,
		Ignore:     append(append([]string(nil), f.Ignore...), opts.Ignore...),
		LogDir:     f.LogDir,
	}
	if opts.LogDir != "" {
		merged.LogDir = opts.LogDir
	}
	return merged
}

func loadJSON(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

func loadYAML(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

func loadTOML(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing TOML: %w", err)
	}
	return &cfg, nil
}

func loadHCL(data []byte, filename string, environ []string) (*FileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(environ),
		},
	}

	var cfg FileConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// envObject exposes KEY=VALUE pairs as a cty object.
func envObject(environ []string) cty.Value {
	vals := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	if len(vals) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vals)
}
