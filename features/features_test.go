package features

import (
	"context"
	"strconv"
	"testing"

	"github.com/wippyai/swl/linker"
	"github.com/wippyai/swl/loader"
	"github.com/wippyai/swl/parser"
)

// files maps "0", "1", ... to the given sources; "0" is the entry.
func files(sources ...string) map[string]string {
	m := make(map[string]string, len(sources))
	for i, s := range sources {
		m[strconv.Itoa(i)] = s
	}
	return m
}

func newLinker(t *testing.T, m map[string]string, opts linker.Options) *linker.Linker {
	t.Helper()
	l := linker.New(loader.NewMemoryLoader(m), opts)
	t.Cleanup(func() { l.Close(context.Background()) })
	return l
}

// run links file "0" with the given features and returns the canonical text.
func run(t *testing.T, sources []string, feats ...linker.Feature) (string, error) {
	t.Helper()
	l := newLinker(t, files(sources...), linker.Options{Features: feats})
	m, err := l.LinkFile(context.Background(), "0")
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// mustRun is run for inputs expected to link.
func mustRun(t *testing.T, sources []string, feats ...linker.Feature) string {
	t.Helper()
	got, err := run(t, sources, feats...)
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	return got
}

func feature(t *testing.T, name string) linker.Feature {
	t.Helper()
	f, err := Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// canonical parses want so expectations can be written with any layout.
func canonical(t *testing.T, want string) string {
	t.Helper()
	n, err := parser.Parse(want)
	if err != nil {
		t.Fatalf("parse expectation: %v", err)
	}
	return n.String()
}

func optsWith(t *testing.T, names ...string) linker.Options {
	t.Helper()
	feats, err := Resolve(names)
	if err != nil {
		t.Fatal(err)
	}
	return linker.Options{Features: feats}
}
