package budget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/leasedraft/internal/llm"
)

// Reporter posts per-call cost records to an external webhook. Reporting
// is fire-and-forget: failures are logged and never surfaced to callers,
// and a nil Reporter is a no-op.
type Reporter struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

// NewReporter returns a Reporter for the given webhook URL, or nil when
// the URL is empty.
func NewReporter(url string, log *zap.Logger) *Reporter {
	if url == "" {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
		Log:    log,
	}
}

type costRecord struct {
	Tokens        llm.Usage `json:"tokens"`
	EstimatedCost float64   `json:"estimatedCost"`
	Model         string    `json:"model"`
	Timestamp     string    `json:"timestamp"`
}

type costEnvelope struct {
	Type      string     `json:"type"`
	Data      costRecord `json:"data"`
	Timestamp string     `json:"timestamp"`
}

// Report sends one cost record in a background goroutine.
func (r *Reporter) Report(usage llm.Usage, model string, cost float64) {
	if r == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	env := costEnvelope{
		Type: "cost_tracking",
		Data: costRecord{
			Tokens:        usage,
			EstimatedCost: cost,
			Model:         model,
			Timestamp:     now,
		},
		Timestamp: now,
	}
	go func() {
		if err := r.post(env); err != nil {
			r.Log.Warn("cost webhook failed", zap.Error(err))
		}
	}()
}

func (r *Reporter) post(env costEnvelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshaling cost record: %w", err)
	}
	resp, err := r.Client.Post(r.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
