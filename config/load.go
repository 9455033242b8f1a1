package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/swl/errors"
)

// LoadConfig reads the YAML file at path, applies defaults and validates
// the result. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseConfig, "configuration file", path)
		}
		return nil, errors.New(errors.PhaseConfig, errors.KindIO).
			Path(path).
			Cause(err).
			Detail("read configuration").
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithPath(path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a configuration document, applies defaults and validates
// it. An empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Cause(err).
			Detail("parse configuration").
			Build()
	}

	ApplyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads path, or starts from the defaults when
// path is empty, then applies SWL_* environment overrides and validates
// again. Environment variables take precedence over the file.
//
//	SWL_ROOT                  root
//	SWL_FEATURES              features, comma separated
//	SWL_OUTPUT                output
//	SWL_PRETTY                pretty
//	SWL_EMIT_BINARY           emit_binary
//	SWL_WAT2WASM              wat2wasm.command
//	SWL_REJECT_IMPORT_CYCLES  reject_import_cycles
//	SWL_WATCH_DEBOUNCE        watch.debounce
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("SWL_ROOT"); val != "" {
		cfg.Root = val
	}
	if val, ok := os.LookupEnv("SWL_FEATURES"); ok {
		cfg.Features = splitList(val)
	}
	if val := os.Getenv("SWL_OUTPUT"); val != "" {
		cfg.Output = val
	}
	if val := os.Getenv("SWL_WAT2WASM"); val != "" {
		cfg.Wat2Wasm.Command = val
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"SWL_PRETTY", &cfg.Pretty},
		{"SWL_EMIT_BINARY", &cfg.EmitBinary},
		{"SWL_REJECT_IMPORT_CYCLES", &cfg.RejectImportCycles},
	}
	for _, b := range bools {
		val := os.Getenv(b.name)
		if val == "" {
			continue
		}
		v, err := strconv.ParseBool(val)
		if err != nil {
			return envError(b.name, val, err)
		}
		*b.dst = v
	}

	if val := os.Getenv("SWL_WATCH_DEBOUNCE"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return envError("SWL_WATCH_DEBOUNCE", val, err)
		}
		cfg.Watch.Debounce = d
	}
	return nil
}

func envError(name, val string, cause error) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
		Value(val).
		Cause(cause).
		Detail("environment variable %s", name).
		Build()
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
