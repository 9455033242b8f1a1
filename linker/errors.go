package linker

import (
	"strings"
)

// FeatureError provides context when a feature pass fails.
type FeatureError struct {
	Cause   error
	Feature string
	Path    string
}

func (e *FeatureError) Error() string {
	var b strings.Builder
	b.WriteString("feature ")
	b.WriteString(e.Feature)
	b.WriteString(" failed")

	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *FeatureError) Unwrap() error {
	return e.Cause
}

func featureError(feature, path string, cause error) *FeatureError {
	return &FeatureError{
		Feature: feature,
		Path:    path,
		Cause:   cause,
	}
}
