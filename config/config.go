package config

import "time"

// Config is the project configuration.
type Config struct {
	// Root is the directory relative import paths resolve against.
	// Default: "."
	Root string `yaml:"root"`

	// Features lists the link passes in run order.
	// Default: every registered feature in registry order.
	Features []string `yaml:"features"`

	// Output is the output path, "-" for stdout.
	// Default: "-"
	Output string `yaml:"output"`

	// Pretty formats the linked text before writing it.
	Pretty bool `yaml:"pretty"`

	// EmitBinary pipes the linked text through wat2wasm and writes the
	// binary instead.
	EmitBinary bool `yaml:"emit_binary"`

	Wat2Wasm Wat2WasmConfig `yaml:"wat2wasm"`

	// RejectImportCycles turns a file importing one of its own importers
	// into an error instead of an empty module.
	RejectImportCycles bool `yaml:"reject_import_cycles"`

	Watch WatchConfig `yaml:"watch"`
}

// Wat2WasmConfig configures the external text to binary assembler.
type Wat2WasmConfig struct {
	// Command is the executable name or path. "builtin" assembles in
	// process instead of running an external tool.
	// Default: "wat2wasm"
	Command string `yaml:"command"`

	// Flags are passed before the input arguments.
	Flags []string `yaml:"flags"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is how long the watcher waits for more events before
	// relinking.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}
