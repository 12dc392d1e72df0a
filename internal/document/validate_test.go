package document

import (
	"errors"
	"strings"
	"testing"
)

const validOutput = `{
  "parties": {
    "landlord": {"name": "Jane Owner", "address": "100 Main St"},
    "tenant": {"name": "Tom Renter"},
    "property": {"address": "200 Elm St Apt 4", "type": "apartment"}
  },
  "economics": {
    "termLabel": "12 months beginning 2026-09-01",
    "rent": {"monthly": 2500, "prorationMethod": "actual_days"},
    "deposits": {"security": 2500},
    "lateFees": "$50 after 5 days",
    "utilities": "Water and trash included"
  },
  "clauses": [
    {"title": "Parties to Agreement", "body": "This lease is between..."},
    {"title": "Rent Payment", "body": "Tenant agrees to pay..."},
    {"title": "Signatures", "body": "Binding upon execution."}
  ],
  "signatures": {
    "method": "e-sign",
    "parties": [
      {"role": "Landlord", "name": "Jane Owner"},
      {"role": "Tenant", "name": "Tom Renter"}
    ]
  },
  "disclaimer": "This document is for informational purposes only and is not legal advice."
}`

func TestParse_ValidOutput(t *testing.T) {
	l, err := Parse(validOutput)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.Parties.Landlord.Name != "Jane Owner" {
		t.Errorf("landlord name: got %q", l.Parties.Landlord.Name)
	}
	if l.Economics.Rent.Monthly != 2500 {
		t.Errorf("monthly rent: got %v", l.Economics.Rent.Monthly)
	}
	if len(l.Clauses) != 3 {
		t.Errorf("clauses: got %d, want 3", len(l.Clauses))
	}
}

func TestParse_StripsFences(t *testing.T) {
	fenced := "```json\n" + validOutput + "\n```"
	if _, err := Parse(fenced); err != nil {
		t.Fatalf("Parse with fences: %v", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	raw := "I am sorry, I cannot generate that document."
	_, err := Parse(raw)
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedError, got %T: %v", err, err)
	}
	if malformed.Raw != raw {
		t.Error("malformed error should carry the raw text for diagnostics")
	}
}

func TestParse_MissingDisclaimer(t *testing.T) {
	raw := strings.Replace(validOutput,
		`,
  "disclaimer": "This document is for informational purposes only and is not legal advice."`,
		"", 1)

	_, err := Parse(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	found := false
	for _, p := range schemaErr.Paths {
		if p == "disclaimer" {
			found = true
		}
	}
	if !found {
		t.Errorf("disclaimer not listed among offending paths: %v", schemaErr.Paths)
	}
}

func TestParse_CollectsAllMissingPaths(t *testing.T) {
	raw := `{"parties": {"landlord": {"name": "Jane Owner", "address": "100 Main St"},
		"tenant": {"name": "Tom Renter"}, "property": {"address": "200 Elm St"}},
		"economics": {"termLabel": "12 months", "rent": {"monthly": 2500, "prorationMethod": "actual_days"}, "utilities": "None"}}`

	_, err := Parse(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	want := map[string]bool{"clauses": false, "signatures": false, "disclaimer": false}
	for _, p := range schemaErr.Paths {
		if _, ok := want[p]; ok {
			want[p] = true
		}
	}
	for path, seen := range want {
		if !seen {
			t.Errorf("path %q not collected (got %v)", path, schemaErr.Paths)
		}
	}
}

func TestParse_EmptyClausesRejected(t *testing.T) {
	raw := strings.Replace(validOutput, `"clauses": [
    {"title": "Parties to Agreement", "body": "This lease is between..."},
    {"title": "Rent Payment", "body": "Tenant agrees to pay..."},
    {"title": "Signatures", "body": "Binding upon execution."}
  ]`, `"clauses": []`, 1)

	_, err := Parse(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
}

func TestParse_ClauseOrderPreserved(t *testing.T) {
	raw := `{
	  "parties": {"landlord": {"name": "L Owner", "address": "1 St"}, "tenant": {"name": "T Renter"}, "property": {"address": "2 Ave"}},
	  "economics": {"termLabel": "month to month", "rent": {"monthly": 1, "prorationMethod": "actual_days"}, "utilities": "None"},
	  "clauses": [
	    {"title": "A", "body": "first"},
	    {"title": "B", "body": "second"},
	    {"title": "C", "body": "third"}
	  ],
	  "signatures": {"method": "wet", "parties": [{"role": "Landlord", "name": "L Owner"}]},
	  "disclaimer": "Not legal advice."
	}`
	l, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := []string{l.Clauses[0].Title, l.Clauses[1].Title, l.Clauses[2].Title}
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("clause order changed: got %v, want %v", got, want)
		}
	}
}

func TestParse_NumericStringRejected(t *testing.T) {
	raw := strings.Replace(validOutput, `"monthly": 2500`, `"monthly": "2500"`, 1)
	_, err := Parse(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("numeric string must fail schema validation, got %T: %v", err, err)
	}
	joined := strings.Join(schemaErr.Paths, ",")
	if !strings.Contains(joined, "monthly") {
		t.Errorf("offending path should name the monthly field: %v", schemaErr.Paths)
	}
}

func TestParse_NegativeNumberRejected(t *testing.T) {
	raw := strings.Replace(validOutput, `"monthly": 2500`, `"monthly": -10`, 1)
	_, err := Parse(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
}

func TestLease_Validate_RequiresMetadata(t *testing.T) {
	l, err := Parse(validOutput)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Validate(); err == nil {
		t.Error("Validate should fail before metadata is stamped")
	}

	l.Metadata = Metadata{
		Jurisdiction: "US-CA",
		Version:      "1.0",
		GeneratedAt:  "2026-08-31T12:00:00Z",
		Model:        "openai:gpt-4o-mini",
	}
	if err := l.Validate(); err != nil {
		t.Errorf("Validate after stamping: %v", err)
	}
}
