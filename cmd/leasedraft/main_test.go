package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validSpecJSON = `{
  "jurisdiction": {"country": "US", "state": "CA"},
  "landlord": {"name": "Jane Owner", "address": "100 Main St, Oakland, CA"},
  "tenant": {"name": "Tom Renter"},
  "property": {"address": "200 Elm St Apt 4, Oakland, CA"},
  "term": {"startDate": "2026-09-01"},
  "financials": {"monthlyRent": 2500}
}`

func writeTempSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunGenerate_StubProducesDocx(t *testing.T) {
	out := filepath.Join(t.TempDir(), "lease.docx")
	flags := generateFlags{out: out, format: "docx", stub: true, maxTokens: 3000}

	if err := runGenerate(writeTempSpec(t, validSpecJSON), flags); err != nil {
		t.Fatalf("runGenerate: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("PK")) {
		t.Error("output is not a zip-packaged document")
	}
}

func TestRunGenerate_InvalidSpec(t *testing.T) {
	flags := generateFlags{out: filepath.Join(t.TempDir(), "lease.docx"), format: "docx", stub: true}

	err := runGenerate(writeTempSpec(t, `{"financials": {"monthlyRent": 0}}`), flags)
	var ee *exitErr
	if !errors.As(err, &ee) || ee.code != 3 {
		t.Errorf("expected exit code 3 for invalid spec, got %v", err)
	}
}

func TestRunGenerate_NoModelConfigured(t *testing.T) {
	t.Setenv("LEASEDRAFT_MODEL", "")
	flags := generateFlags{out: filepath.Join(t.TempDir(), "lease.docx"), format: "docx"}

	err := runGenerate(writeTempSpec(t, validSpecJSON), flags)
	var ee *exitErr
	if !errors.As(err, &ee) || ee.code != 3 {
		t.Errorf("expected exit code 3 when no model configured, got %v", err)
	}
}

func TestRunGenerate_BadFormat(t *testing.T) {
	flags := generateFlags{out: filepath.Join(t.TempDir(), "lease.odt"), format: "odt", stub: true, maxTokens: 3000}

	err := runGenerate(writeTempSpec(t, validSpecJSON), flags)
	var ee *exitErr
	if !errors.As(err, &ee) || ee.code != 3 {
		t.Errorf("expected exit code 3 for unsupported format, got %v", err)
	}
}
