package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/features"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
root: ./src
features: [import, constexpr, sort]
output: build/out.wat
pretty: true
emit_binary: true
wat2wasm:
  command: /opt/wabt/bin/wat2wasm
  flags: [--enable-multi-memory]
reject_import_cycles: true
watch:
  debounce: 250ms
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Root != "./src" {
		t.Errorf("Root = %q, want %q", cfg.Root, "./src")
	}
	if want := []string{"import", "constexpr", "sort"}; !slices.Equal(cfg.Features, want) {
		t.Errorf("Features = %v, want %v", cfg.Features, want)
	}
	if cfg.Output != "build/out.wat" || !cfg.Pretty || !cfg.EmitBinary || !cfg.RejectImportCycles {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Wat2Wasm.Command != "/opt/wabt/bin/wat2wasm" || !slices.Equal(cfg.Wat2Wasm.Flags, []string{"--enable-multi-memory"}) {
		t.Errorf("Wat2Wasm = %+v", cfg.Wat2Wasm)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, content := range []string{"", "pretty: true\n"} {
		cfg, err := LoadConfig(writeConfig(t, content))
		if err != nil {
			t.Fatalf("failed to load config %q: %v", content, err)
		}
		if cfg.Root != DefaultRoot || cfg.Output != DefaultOutput {
			t.Errorf("Root, Output = %q, %q", cfg.Root, cfg.Output)
		}
		if !slices.Equal(cfg.Features, features.Names()) {
			t.Errorf("Features = %v, want %v", cfg.Features, features.Names())
		}
		if cfg.Wat2Wasm.Command != DefaultWat2Wasm {
			t.Errorf("Wat2Wasm.Command = %q", cfg.Wat2Wasm.Command)
		}
		if cfg.Watch.Debounce != DefaultWatchDebounce {
			t.Errorf("Debounce = %v", cfg.Watch.Debounce)
		}
	}
}

func TestLoadConfig_EmptyFeatureList(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "features: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Features) != 0 {
		t.Errorf("Features = %v, want none", cfg.Features)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		message string
	}{
		{"unknown key", "roots: x\n", errors.ErrInvalidConfig, "roots"},
		{"bad yaml", "features: [import\n", errors.ErrInvalidConfig, "parse configuration"},
		{"bad duration", "watch:\n  debounce: soon\n", errors.ErrInvalidConfig, "parse configuration"},
		{"unknown feature", "features: [imports]\n", errors.ErrInvalidConfig, `did you mean "import"`},
		{"duplicate feature", "features: [sort, sort]\n", errors.ErrInvalidConfig, "listed twice"},
		{"negative debounce", "watch:\n  debounce: -1s\n", errors.ErrInvalidConfig, "watch.debounce"},
		{"blank root", "root: \"  \"\n", errors.ErrInvalidConfig, "root is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Root = ""
	cfg.Features = []string{"nope"}
	cfg.EmitBinary = true
	cfg.Wat2Wasm.Command = ""

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	var fields []string
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	if want := []string{"root", "features[0]", "wat2wasm.command"}; !slices.Equal(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
	if !strings.HasPrefix(err.Error(), "3 errors:") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "root: ./src\npretty: false\n")
	t.Setenv("SWL_ROOT", "/srv/modules")
	t.Setenv("SWL_FEATURES", "import, sort")
	t.Setenv("SWL_PRETTY", "true")
	t.Setenv("SWL_OUTPUT", "out.wat")
	t.Setenv("SWL_WAT2WASM", "wat2wasm-1.0.34")
	t.Setenv("SWL_WATCH_DEBOUNCE", "1s")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "/srv/modules" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if want := []string{"import", "sort"}; !slices.Equal(cfg.Features, want) {
		t.Errorf("Features = %v, want %v", cfg.Features, want)
	}
	if !cfg.Pretty || cfg.Output != "out.wat" || cfg.Wat2Wasm.Command != "wat2wasm-1.0.34" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Debounce = %v", cfg.Watch.Debounce)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("SWL_REJECT_IMPORT_CYCLES", "1")
	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.RejectImportCycles || cfg.Root != DefaultRoot {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigWithEnvOverrides_Invalid(t *testing.T) {
	tests := []struct {
		env, val string
	}{
		{"SWL_PRETTY", "maybe"},
		{"SWL_WATCH_DEBOUNCE", "later"},
		{"SWL_FEATURES", "import,constexp"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := LoadConfigWithEnvOverrides("")
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("error = %v, want invalid config", err)
			}
		})
	}
}
