package features

import (
	"fmt"
	"slices"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/wippyai/swl/errors"
	"github.com/wippyai/swl/linker"
)

var registry = []linker.Feature{
	{Name: "import", Apply: Import},
	{Name: "data_import", Apply: DataImport},
	{Name: "numerals", Apply: Numerals},
	{Name: "constexpr", Apply: ConstExpr},
	{Name: "size_adjust", Apply: SizeAdjust},
	{Name: "start_merge", Apply: StartMerge},
	{Name: "sort", Apply: Sort},
}

// Names returns every feature name in default order.
func Names() []string {
	names := make([]string, len(registry))
	for i, f := range registry {
		names[i] = f.Name
	}
	return names
}

// Default returns every feature in default order.
func Default() []linker.Feature {
	return slices.Clone(registry)
}

// Lookup returns the feature called name. Unknown names fail with an
// unknown_feature error suggesting the closest known name.
func Lookup(name string) (linker.Feature, error) {
	for _, f := range registry {
		if f.Name == name {
			return f, nil
		}
	}
	b := errors.New(errors.PhaseConfig, errors.KindUnknownFeature).Value(name)
	if s := suggest(name); s != "" {
		b.Detail("unknown feature %q, did you mean %q?", name, s)
	} else {
		b.Detail("unknown feature %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return linker.Feature{}, b.Build()
}

// Resolve looks up names in the given order. Empty names are skipped.
func Resolve(names []string) ([]linker.Feature, error) {
	out := make([]linker.Feature, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Parse resolves a comma separated feature list such as
// "import,constexpr,sort".
func Parse(list string) ([]linker.Feature, error) {
	return Resolve(strings.Split(list, ","))
}

// suggest returns the known name closest to name, or "" when nothing is
// close enough to be a plausible typo.
func suggest(name string) string {
	best, bestDist := "", -1
	for _, known := range Names() {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(known), levenshtein.DefaultOptions)
		if bestDist < 0 || d < bestDist {
			best, bestDist = known, d
		}
	}
	if bestDist < 0 || bestDist > len(name)/2+1 {
		return ""
	}
	return best
}

func notAModule(feature string, n fmt.Stringer) error {
	return errors.NotAModule(feature, n.String())
}
