package generate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dshills/leasedraft/internal/budget"
	"github.com/dshills/leasedraft/internal/document"
	"github.com/dshills/leasedraft/internal/llm"
	"github.com/dshills/leasedraft/internal/spec"
)

func sampleSpec() *spec.Specification {
	return &spec.Specification{
		Jurisdiction: spec.Jurisdiction{Country: "US", State: "CA"},
		Landlord:     spec.Landlord{Name: "Jane Owner", Address: "100 Main St, Oakland, CA"},
		Tenant:       spec.Tenancy{Single: &spec.Party{Name: "Tom Renter"}},
		Property:     spec.Property{Address: "200 Elm St Apt 4, Oakland, CA"},
		Term:         spec.Term{StartDate: "2026-09-01", Renewal: spec.RenewalNone},
		Financials: spec.Financials{
			MonthlyRent:     2500,
			ProrationMethod: spec.ProrationActualDays,
		},
		Rules: spec.Rules{
			Smoking:     spec.SmokingProhibited,
			Subletting:  spec.ConsentWithConsent,
			Alterations: spec.ConsentWithConsent,
		},
		Notices:    spec.Notices{Delivery: spec.DeliveryBoth},
		Signatures: spec.Signatures{Method: spec.SignatureESign},
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	g := New(&llm.StubProvider{ModelName: "canned"}, budget.NewDailyTracker(10, nil), nil)
	g.Version = "1.0"
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	lease, usage, err := g.Generate(context.Background(), sampleSpec())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if usage == nil || usage.Total != 2000 {
		t.Errorf("usage: got %+v", usage)
	}

	md := lease.Metadata
	if md.DocumentID == "" {
		t.Error("metadata missing document ID")
	}
	if md.Jurisdiction != "US-CA" {
		t.Errorf("metadata jurisdiction: got %q", md.Jurisdiction)
	}
	if md.Model != "stub:canned" {
		t.Errorf("metadata model: got %q", md.Model)
	}
	if md.GeneratedAt != "2026-08-31T12:00:00Z" {
		t.Errorf("metadata generatedAt: got %q", md.GeneratedAt)
	}
	if md.TokenUsage == nil || md.TokenUsage.Total != 2000 {
		t.Errorf("metadata token usage: got %+v", md.TokenUsage)
	}
	if len(lease.Clauses) == 0 {
		t.Error("expected drafted clauses")
	}
	if lease.Disclaimer == "" {
		t.Error("expected a disclaimer")
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	g := New(&llm.StubProvider{Err: errors.New("connection refused")}, nil, nil)

	_, usage, err := g.Generate(context.Background(), sampleSpec())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
	if usage != nil {
		t.Error("usage should be nil when the provider call never succeeded")
	}
}

func TestGenerate_EmptyResponse(t *testing.T) {
	g := New(&llm.StubProvider{Err: fmt.Errorf("openai: %w", llm.ErrNoContent)}, nil, nil)

	_, _, err := g.Generate(context.Background(), sampleSpec())
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerate_CeilingExceeded(t *testing.T) {
	tracker := budget.NewDailyTracker(10, nil)
	tracker.Add(11) // already over

	g := New(&llm.StubProvider{ModelName: "canned"}, tracker, nil)
	_, usage, err := g.Generate(context.Background(), sampleSpec())
	if !errors.Is(err, budget.ErrCeilingExceeded) {
		t.Errorf("expected ErrCeilingExceeded, got %v", err)
	}
	// The provider call succeeded before the gate, so usage is reported.
	if usage == nil {
		t.Error("usage should be returned for a budget-rejected draft")
	}
}

func TestGenerate_SchemaViolation(t *testing.T) {
	g := New(&llm.StubProvider{Content: `{"clauses": []}`}, nil, nil)

	_, usage, err := g.Generate(context.Background(), sampleSpec())
	var schemaErr *document.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if usage == nil {
		t.Error("usage should be returned even when validation fails")
	}
}

func TestGenerate_MalformedOutput(t *testing.T) {
	g := New(&llm.StubProvider{Content: "I am sorry, I cannot"}, nil, nil)

	_, _, err := g.Generate(context.Background(), sampleSpec())
	var malformed *document.MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
}
