package clauses

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Override pairs a base entry with the jurisdiction entry that replaces it.
type Override struct {
	Key  string
	Base Entry
	Over Entry
}

// Overrides returns the base entries that the jurisdiction set for code
// replaces, in base order. An empty result means code either is unknown or
// only extends the base library.
func Overrides(code string) []Override {
	set, ok := jurisdictions[code]
	if !ok {
		return nil
	}
	byKey := make(map[string]Entry, len(set))
	for _, e := range set {
		byKey[e.Key] = e
	}

	var out []Override
	for _, b := range baseClauses() {
		if o, ok := byKey[b.Key]; ok {
			out = append(out, Override{Key: b.Key, Base: b, Over: o})
		}
	}
	return out
}

// DiffText renders a patch-format diff of every override for code against
// the base entry it replaces. Used by the clauses CLI for reviewing what a
// jurisdiction actually changes.
func DiffText(code string) string {
	overrides := Overrides(code)
	if len(overrides) == 0 {
		return ""
	}

	dmp := diffmatchpatch.New()
	var out strings.Builder
	for _, o := range overrides {
		before := o.Base.Title + "\n" + o.Base.Body
		after := o.Over.Title + "\n" + o.Over.Body

		diffs := dmp.DiffMain(before, after, false)
		patches := dmp.PatchMake(before, diffs)
		text := dmp.PatchToText(patches)
		if text == "" {
			continue
		}

		out.WriteString(fmt.Sprintf("# override for clause %q\n", o.Key))
		out.WriteString(text)
		out.WriteString("\n")
	}
	return out.String()
}
