// Package budget tracks per-call LLM cost and enforces a daily spending
// ceiling. Tracking is best-effort accounting, not billing: prices are
// list prices per 1K tokens and unknown models cost zero rather than
// blocking generation.
package budget

import (
	"strings"

	"github.com/dshills/leasedraft/internal/llm"
)

// modelPricing holds USD cost per 1K tokens. Update as providers reprice.
var modelPricing = map[string]struct{ input, output float64 }{
	"gpt-4o-mini":       {input: 0.00015, output: 0.0006},
	"gpt-4o":            {input: 0.005, output: 0.015},
	"gpt-3.5-turbo":     {input: 0.0015, output: 0.002},
	"gpt-4":             {input: 0.03, output: 0.06},
	"claude-sonnet-4-6": {input: 0.003, output: 0.015},
	"claude-haiku-4-5":  {input: 0.001, output: 0.005},
	"gemini-2.0-flash":  {input: 0.0001, output: 0.0004},
	"gemini-2.5-pro":    {input: 0.00125, output: 0.01},
}

// Cost estimates the USD cost of one completion call. The model may carry
// a "provider:" prefix, which is stripped before lookup. Unknown models
// return 0.
func Cost(usage llm.Usage, model string) float64 {
	if idx := strings.Index(model, ":"); idx >= 0 {
		model = model[idx+1:]
	}
	pricing, ok := modelPricing[model]
	if !ok {
		return 0
	}
	inputCost := float64(usage.Prompt) / 1000 * pricing.input
	outputCost := float64(usage.Completion) / 1000 * pricing.output
	return inputCost + outputCost
}
