// Package config loads swl project configuration.
//
// A project file (swl.yaml by convention) looks like:
//
//	root: ./src
//	features: [import, data_import, numerals, constexpr, size_adjust, start_merge, sort]
//	output: build/out.wat
//	pretty: true
//	emit_binary: false
//	wat2wasm:
//	  command: wat2wasm
//	  flags: [--enable-multi-memory]
//	reject_import_cycles: true
//	watch:
//	  debounce: 200ms
//
// Loading applies defaults, then SWL_* environment overrides, then
// validation. Command line flags are applied by the caller on top.
package config
