package config

import (
	"fmt"
	"strings"

	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/features"
)

// FieldError is a validation failure of one configuration field.
type FieldError struct {
	// Field is the dotted YAML path, e.g. "watch.debounce".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field error of a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate checks cfg and returns a ValidationError listing every problem,
// or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if strings.TrimSpace(cfg.Root) == "" {
		errs = append(errs, FieldError{Field: "root", Message: "root is required"})
	}
	if cfg.Output == "" {
		errs = append(errs, FieldError{Field: "output", Message: `output is required, use "-" for stdout`})
	}

	seen := make(map[string]bool, len(cfg.Features))
	for i, name := range cfg.Features {
		field := fmt.Sprintf("features[%d]", i)
		if _, err := features.Lookup(name); err != nil {
			msg := err.Error()
			if e, ok := err.(*errors.Error); ok {
				msg = e.Detail
			}
			errs = append(errs, FieldError{Field: field, Message: msg})
			continue
		}
		if seen[name] {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("feature %q listed twice", name)})
		}
		seen[name] = true
	}

	if cfg.EmitBinary && cfg.Wat2Wasm.Command == "" {
		errs = append(errs, FieldError{Field: "wat2wasm.command", Message: "command is required when emit_binary is set"})
	}
	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{Field: "watch.debounce", Message: "debounce must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// validate is Validate wrapped in an invalid_config error.
func validate(cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Cause(err).
			Detail("validate configuration").
			Build()
	}
	return nil
}
