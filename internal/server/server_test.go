package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/leasedraft/internal/budget"
	"github.com/dshills/leasedraft/internal/config"
	"github.com/dshills/leasedraft/internal/document"
	"github.com/dshills/leasedraft/internal/generate"
	"github.com/dshills/leasedraft/internal/leads"
	"github.com/dshills/leasedraft/internal/llm"
	"github.com/dshills/leasedraft/internal/ratelimit"
	"github.com/dshills/leasedraft/internal/spec"
)

// fakeGenerator satisfies LeaseGenerator without touching a provider.
type fakeGenerator struct {
	lease *document.Lease
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, s *spec.Specification) (*document.Lease, *llm.Usage, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.lease, &llm.Usage{Prompt: 100, Completion: 50, Total: 150}, nil
}

func validLease() *document.Lease {
	return &document.Lease{
		Metadata: document.Metadata{
			Jurisdiction: "US-CA",
			Version:      "1.0",
			GeneratedAt:  "2026-08-31T12:00:00Z",
			Model:        "stub:canned",
		},
		Parties: document.Parties{
			Landlord: document.NamedParty{Name: "Jane Owner", Address: "100 Main St"},
			Tenant:   document.TenantParty{Name: "Tom Renter"},
			Property: document.PropertyRef{Address: "200 Elm St Apt 4"},
		},
		Economics: document.Economics{
			TermLabel: "12-month fixed term",
			Rent:      document.Rent{Monthly: 2500, ProrationMethod: "actual_days"},
			Utilities: "Tenant pays all utilities",
		},
		Clauses: []document.Clause{
			{Title: "Premises", Body: "Landlord leases the premises to Tenant."},
		},
		Signatures: document.SignatureBlock{
			Method:  "e-sign",
			Parties: []document.SignatureParty{{Role: "Landlord", Name: "Jane Owner"}},
		},
		Disclaimer: "Not legal advice.",
	}
}

func validInput() map[string]any {
	return map[string]any{
		"jurisdiction": map[string]any{"country": "US", "state": "CA"},
		"landlord":     map[string]any{"name": "Jane Owner", "address": "100 Main St, Oakland, CA"},
		"tenant":       map[string]any{"name": "Tom Renter"},
		"property":     map[string]any{"address": "200 Elm St Apt 4, Oakland, CA"},
		"term":         map[string]any{"startDate": "2026-09-01"},
		"financials":   map[string]any{"monthlyRent": 2500},
	}
}

func newTestServer(t *testing.T, gen LeaseGenerator, cfg config.Config) *Server {
	t.Helper()
	store := leads.NewStore(filepath.Join(t.TempDir(), "leads.csv"), "", nil)
	return New(cfg, gen, nil, nil, store, nil)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleLease_Success(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{lease: validLease()}, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lease", validInput())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "wordprocessingml")
	cd := rec.Header().Get("Content-Disposition")
	assert.Contains(t, cd, "attachment")
	assert.Contains(t, cd, ".docx")
	// Rendered bytes are a zip container.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "expected zip magic")
}

func TestHandleLease_InvalidInput(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{lease: validLease()}, config.Default())

	input := validInput()
	delete(input, "landlord")
	input["financials"] = map[string]any{"monthlyRent": 0}
	rec := postJSON(t, s.Router(), "/api/v1/lease", input)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid input data", resp.Error)
	// Every violation is reported, not just the first.
	details := fmt.Sprintf("%v", resp.Details)
	assert.Contains(t, details, "landlord.name")
	assert.Contains(t, details, "financials.monthlyRent")
}

func TestHandleLease_OriginForbidden(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOrigins = []string{"https://app.example.com"}
	s := newTestServer(t, &fakeGenerator{lease: validLease()}, cfg)

	b, _ := json.Marshal(validInput())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lease", bytes.NewReader(b))
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleLease_AllowedOriginPasses(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOrigins = []string{"https://app.example.com"}
	s := newTestServer(t, &fakeGenerator{lease: validLease()}, cfg)

	b, _ := json.Marshal(validInput())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lease", bytes.NewReader(b))
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleLease_RateLimited(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{lease: validLease()}, config.Default())
	s.limiter = ratelimit.New(time.Hour, 2)
	router := s.Router()

	for i := 0; i < 2; i++ {
		rec := postJSON(t, router, "/api/v1/lease", validInput())
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
	rec := postJSON(t, router, "/api/v1/lease", validInput())
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Rate-Limit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-Rate-Limit-Reset"))
}

func TestHandleLease_CostCeiling(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{err: budget.ErrCeilingExceeded}, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lease", validInput())

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Daily cost limit exceeded", resp.Error)
}

func TestHandleLease_SchemaViolation(t *testing.T) {
	err := &document.SchemaError{Paths: []string{"clauses", "disclaimer"}}
	s := newTestServer(t, &fakeGenerator{err: err}, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lease", validInput())

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "clauses, disclaimer")
}

func TestHandleLease_MalformedOutput(t *testing.T) {
	err := &document.MalformedError{Raw: "not json", Err: fmt.Errorf("invalid character")}
	s := newTestServer(t, &fakeGenerator{err: err}, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lease", validInput())

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	// Raw model output never leaks into the response.
	assert.NotContains(t, rec.Body.String(), "not json")
}

func TestHandleLease_ProviderUnavailable(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{err: fmt.Errorf("%w: dial tcp refused", generate.ErrProviderUnavailable)}, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lease", validInput())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleLease_BadFormat(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{lease: validLease()}, config.Default())
	input := validInput()
	input["format"] = "odt"
	rec := postJSON(t, s.Router(), "/api/v1/lease", input)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLead_CaptureAndDuplicate(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, config.Default())
	router := s.Router()

	rec := postJSON(t, router, "/api/v1/lead", map[string]any{
		"email": "visitor@example.com", "consent": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lead captured successfully")

	rec = postJSON(t, router, "/api/v1/lead", map[string]any{
		"email": "VISITOR@example.com", "consent": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lead already captured")
}

func TestHandleLead_ConsentRequired(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lead", map[string]any{
		"email": "visitor@example.com", "consent": false,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Consent required")
}

func TestHandleLead_InvalidEmail(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lead", map[string]any{
		"email": "not-an-email", "consent": true,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{}, config.Default())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestFullPipeline_StubProvider(t *testing.T) {
	// End to end: HTTP request through the real generator with the stub
	// provider, out to docx bytes.
	gen := generate.New(&llm.StubProvider{ModelName: "canned"}, budget.NewDailyTracker(10, nil), nil)
	s := newTestServer(t, gen, config.Default())
	rec := postJSON(t, s.Router(), "/api/v1/lease", validInput())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}
