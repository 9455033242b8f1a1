// Command swl links WebAssembly text modules.
//
// Usage:
//
//	# Link main.wat and print the result
//	swl main.wat
//
//	# Read from stdin, pretty print, write to a file
//	cat main.wat | swl -p -o out.wat
//
//	# Compile straight to a binary with wat2wasm
//	swl -c --wat2wasm-flags "--enable-threads" -o out.wasm main.wat
//
//	# Run a subset of the passes
//	swl --features import,sort main.wat
//
//	# Relink on every change
//	swl --watch -o out.wat main.wat
//
//	# Toggle passes interactively
//	swl -i main.wat
//
//	# Only reformat
//	swl fmt main.wat
package main

func main() {
	Execute()
}
