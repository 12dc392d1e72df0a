// Package generate runs the lease drafting pipeline: resolve the
// jurisdiction clause set, build prompts, call the model, account for
// cost, and validate the output into a document model. Each call is
// independent; nothing about a request outlives its response.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/leasedraft/internal/budget"
	"github.com/dshills/leasedraft/internal/clauses"
	"github.com/dshills/leasedraft/internal/document"
	"github.com/dshills/leasedraft/internal/llm"
	"github.com/dshills/leasedraft/internal/prompt"
	"github.com/dshills/leasedraft/internal/spec"
)

// ErrProviderUnavailable wraps transport-level provider failures.
var ErrProviderUnavailable = errors.New("lease generation service unavailable")

// ErrEmptyResponse is returned when the provider answered with no text.
var ErrEmptyResponse = errors.New("empty response from provider")

// DefaultTemperature keeps drafting conservative and repeatable.
const DefaultTemperature = 0.2

// Generator holds the pipeline collaborators. Construct once, share
// across requests.
type Generator struct {
	Provider llm.Provider
	Tracker  *budget.DailyTracker
	Reporter *budget.Reporter

	// Model overrides the provider's configured model when non-empty.
	Model       string
	MaxTokens   int
	Temperature float64
	WordCeiling int
	// Version is stamped into document metadata.
	Version string

	Log *zap.Logger

	now func() time.Time
}

// New returns a Generator with sane defaults filled in.
func New(provider llm.Provider, tracker *budget.DailyTracker, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		Provider:    provider,
		Tracker:     tracker,
		Temperature: DefaultTemperature,
		Version:     "1.0",
		Log:         log,
		now:         time.Now,
	}
}

// Generate drafts one lease from a validated specification. The returned
// usage is non-nil whenever the provider call itself succeeded, even if a
// later stage fails, so callers can log spend for rejected drafts.
func (g *Generator) Generate(ctx context.Context, s *spec.Specification) (*document.Lease, *llm.Usage, error) {
	docID := uuid.NewString()
	code := s.Jurisdiction.Code()
	entries := clauses.Resolve(code)

	req := &llm.Request{
		SystemPrompt: prompt.BuildSystemPrompt(g.WordCeiling),
		UserPrompt:   prompt.BuildUserPrompt(s, entries),
		Temperature:  g.Temperature,
		MaxTokens:    g.MaxTokens,
		Model:        g.Model,
	}

	start := g.clock()()
	resp, err := g.Provider.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			return nil, nil, fmt.Errorf("%w: %v", ErrEmptyResponse, err)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	usage := resp.Usage

	cost := budget.Cost(usage, resp.Model)
	g.Reporter.Report(usage, resp.Model, cost)
	g.Log.Info("lease drafted",
		zap.String("documentId", docID),
		zap.String("jurisdiction", code),
		zap.String("model", resp.Model),
		zap.Int("tokens", usage.Total),
		zap.Float64("cost", cost),
		zap.Duration("elapsed", g.clock()().Sub(start)))

	if g.Tracker != nil {
		if err := g.Tracker.Add(cost); err != nil {
			return nil, &usage, err
		}
	}

	lease, err := document.Parse(resp.Content)
	if err != nil {
		return nil, &usage, err
	}

	lease.Metadata = document.Metadata{
		DocumentID:   docID,
		Jurisdiction: code,
		Version:      g.Version,
		GeneratedAt:  g.clock()().UTC().Format(time.RFC3339),
		Model:        resp.Model,
		TokenUsage: &document.TokenUsage{
			Prompt:     usage.Prompt,
			Completion: usage.Completion,
			Total:      usage.Total,
		},
	}

	if err := lease.Validate(); err != nil {
		return nil, &usage, err
	}
	return lease, &usage, nil
}

func (g *Generator) clock() func() time.Time {
	if g.now != nil {
		return g.now
	}
	return time.Now
}
