package config

import (
	"slices"
	"time"

	"github.com/wippyai/swl/features"
)

// Default values for configuration fields.
const (
	DefaultRoot          = "."
	DefaultOutput        = "-"
	DefaultWat2Wasm      = "wat2wasm"
	BuiltinAssembler     = "builtin"
	DefaultWatchDebounce = 100 * time.Millisecond

	// DefaultFile is the project file looked up when none is given.
	DefaultFile = "swl.yaml"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Features == nil {
		cfg.Features = slices.Clone(features.Names())
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Wat2Wasm.Command == "" {
		cfg.Wat2Wasm.Command = DefaultWat2Wasm
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
