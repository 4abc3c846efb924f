package validator

import (
	"math"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/pjv/pkg/format"
	"github.com/matzehuels/pjv/pkg/manifest"
)

// ValidateDependencies checks a map of package name to version range, as
// found in dependencies, devDependencies, peerDependencies and
// optionalDependencies. Errors follow the order of the entries in the
// document. Values that are not objects have no entries to check.
func ValidateDependencies(field string, value any) []string {
	var errs []string
	eachEntry(value, func(pkg string, v any) {
		if !format.Package.MatchString(pkg) {
			errs = append(errs, "Invalid dependency package name: "+pkg)
		}
		if !validRange(v) {
			errs = append(errs, "Invalid version range for dependency "+pkg+": "+looseText(v))
		}
	})
	return errs
}

// validRange checks a dependency version. Strings use the full range
// grammar. Other values are matched by their loose string form against the
// pattern-based forms only, and an array also passes when its first element
// is exactly "git", "catalog:" or "npm:".
func validRange(v any) bool {
	if s, ok := v.(string); ok {
		return format.IsValidVersionRange(s)
	}
	text := looseText(v)
	if format.MatchesRangePattern(text) {
		return true
	}
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	if text == "*" {
		return true
	}
	if len(arr) > 0 {
		switch arr[0] {
		case "git", "catalog:", "npm:":
			return true
		}
	}
	return false
}

// looseText renders a value the way string concatenation would: numbers by
// their value, objects as "[object Object]" and arrays as their elements
// joined by commas with null left empty.
func looseText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return string(t)
		}
		return formatNumber(f)
	case float64:
		return formatNumber(t)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = looseText(e)
			}
		}
		return strings.Join(parts, ",")
	case *manifest.Object, map[string]any:
		return "[object Object]"
	}
	return manifest.Text(v)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// eachEntry visits object entries in document order. Plain maps have no
// order of their own and are visited by sorted key.
func eachEntry(value any, fn func(key string, v any)) {
	switch m := value.(type) {
	case *manifest.Object:
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			fn(k, v)
		}
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fn(k, m[k])
		}
	}
}

// truthy reports whether v would count as set: not null, not false, not an
// empty string and not zero.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return true
}
