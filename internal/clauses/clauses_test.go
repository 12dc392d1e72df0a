package clauses

import (
	"strings"
	"testing"
)

func indexOf(entries []Entry, key string) int {
	for i, e := range entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func TestResolve_UnknownCodeReturnsBase(t *testing.T) {
	base := baseClauses()
	got := Resolve("XX-ZZ")

	if len(got) != len(base) {
		t.Fatalf("unknown jurisdiction: got %d entries, want %d", len(got), len(base))
	}
	for i := range base {
		if got[i] != base[i] {
			t.Errorf("entry %d differs: got %q, want %q", i, got[i].Key, base[i].Key)
		}
	}
}

func TestResolve_USCA_OverrideInPlace(t *testing.T) {
	base := baseClauses()
	got := Resolve("US-CA")

	// habitability is overridden; it must keep its base position.
	basePos := indexOf(base, "habitability")
	gotPos := indexOf(got, "habitability")
	if gotPos != basePos {
		t.Errorf("habitability moved: base position %d, resolved position %d", basePos, gotPos)
	}
	if !strings.Contains(got[gotPos].Title, "California") {
		t.Errorf("habitability not overridden: title %q", got[gotPos].Title)
	}
}

func TestResolve_USCA_ExtensionsAppendAfterBase(t *testing.T) {
	base := baseClauses()
	got := Resolve("US-CA")

	if len(got) <= len(base) {
		t.Fatalf("expected extensions beyond %d base entries, got %d total", len(base), len(got))
	}

	for _, key := range []string{"ab1482Disclosure", "rentControl", "justCause", "leadPaint"} {
		pos := indexOf(got, key)
		if pos < 0 {
			t.Errorf("missing CA extension %q", key)
			continue
		}
		if pos < len(base) {
			t.Errorf("extension %q at position %d, must come after all %d base entries", key, pos, len(base))
		}
	}

	// Extensions keep jurisdiction-defined relative order.
	if indexOf(got, "ab1482Disclosure") > indexOf(got, "rentControl") {
		t.Error("CA extensions out of jurisdiction-defined order")
	}
}

func TestResolve_DoesNotMutateLibraries(t *testing.T) {
	first := Resolve("US-CA")
	second := Resolve("US-CA")
	if len(first) != len(second) {
		t.Fatalf("repeated resolve changed length: %d vs %d", len(first), len(second))
	}
	baseAgain := Resolve("XX-ZZ")
	if indexOf(baseAgain, "ab1482Disclosure") >= 0 {
		t.Error("base library polluted by jurisdiction resolve")
	}
	if e := baseAgain[indexOf(baseAgain, "habitability")]; strings.Contains(e.Title, "California") {
		t.Error("base habitability clause was overwritten")
	}
}

func TestOverrides_USCA(t *testing.T) {
	overrides := Overrides("US-CA")
	if len(overrides) == 0 {
		t.Fatal("expected at least one US-CA override")
	}
	found := false
	for _, o := range overrides {
		if o.Key == "habitability" {
			found = true
			if o.Base.Title == o.Over.Title {
				t.Error("override title identical to base")
			}
		}
	}
	if !found {
		t.Error("habitability not reported as overridden")
	}
}

func TestDiffText(t *testing.T) {
	text := DiffText("US-CA")
	if !strings.Contains(text, `override for clause "habitability"`) {
		t.Errorf("diff output missing habitability header: %q", text)
	}
	if DiffText("XX-ZZ") != "" {
		t.Error("unknown jurisdiction should produce empty diff")
	}
}
