// Package clauses holds the static drafting-text catalog: a fixed ordered
// base library plus per-jurisdiction override and extension sets. Both are
// compiled in, loaded once, and never mutated at runtime.
package clauses

// Entry is one unit of drafting text, addressed by a stable library key.
type Entry struct {
	Key   string
	Title string
	Body  string
}

// Resolve merges the base library with the jurisdiction set for code.
// Base entries keep their base order; a jurisdiction entry whose key matches
// a base key replaces it in place; jurisdiction-only keys are appended in
// the jurisdiction's own order. Unknown codes resolve to the base library
// unchanged — that is not an error.
func Resolve(code string) []Entry {
	base := baseClauses()
	overrides, ok := jurisdictions[code]
	if !ok {
		return base
	}

	byKey := make(map[string]Entry, len(overrides))
	for _, e := range overrides {
		byKey[e.Key] = e
	}

	out := make([]Entry, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(base))
	for _, e := range base {
		if o, ok := byKey[e.Key]; ok {
			out = append(out, o)
		} else {
			out = append(out, e)
		}
		seen[e.Key] = true
	}
	for _, e := range overrides {
		if !seen[e.Key] {
			out = append(out, e)
		}
	}
	return out
}

// Jurisdictions lists the codes with a dedicated clause set, in no
// particular order.
func Jurisdictions() []string {
	codes := make([]string, 0, len(jurisdictions))
	for code := range jurisdictions {
		codes = append(codes, code)
	}
	return codes
}

// Known reports whether code has a dedicated clause set.
func Known(code string) bool {
	_, ok := jurisdictions[code]
	return ok
}

// jurisdictions maps a jurisdiction code to its ordered override/extension
// set. Adding a jurisdiction means adding a file defining its entries and
// registering it here.
var jurisdictions = map[string][]Entry{
	"US-CA": californiaClauses(),
}
