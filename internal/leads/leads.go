// Package leads captures visitor contact details: in-memory
// deduplication, CSV append, and an optional webhook. Capture is
// best-effort by design; storage failures are logged and never block the
// visitor's request.
package leads

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultContext labels leads that arrive without an explicit source.
const DefaultContext = "lease_generator"

// ErrConsentRequired is returned when an email arrives without consent.
var ErrConsentRequired = errors.New("consent required to store email address")

// Lead is one captured contact record.
type Lead struct {
	Email     string `json:"email"`
	Consent   bool   `json:"consent"`
	Context   string `json:"context"`
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}

// Store deduplicates and persists leads. Deduplication is in memory only
// and resets on restart; the CSV file is the durable record.
type Store struct {
	mu      sync.Mutex
	seen    map[string]bool
	csvPath string
	webhook string
	client  *http.Client
	log     *zap.Logger
	now     func() time.Time
}

// NewStore returns a Store appending to csvPath. webhookURL may be empty.
func NewStore(csvPath, webhookURL string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		seen:    make(map[string]bool),
		csvPath: csvPath,
		webhook: webhookURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
		now:     time.Now,
	}
}

// Capture records one lead. It returns (false, nil) for a duplicate,
// (true, nil) for a new capture, and an error only for consent
// violations; persistence failures are logged and swallowed.
func (s *Store) Capture(lead Lead) (bool, error) {
	if lead.Email != "" && !lead.Consent {
		return false, ErrConsentRequired
	}
	if lead.Context == "" {
		lead.Context = DefaultContext
	}
	if lead.Timestamp == "" {
		lead.Timestamp = s.now().UTC().Format(time.RFC3339)
	}

	key := strings.ToLower(lead.Email)
	if key == "" {
		key = "anonymous"
	}

	s.mu.Lock()
	if s.seen[key] {
		s.mu.Unlock()
		return false, nil
	}
	s.seen[key] = true
	s.mu.Unlock()

	if err := s.appendCSV(lead); err != nil {
		s.log.Error("failed to save lead to CSV", zap.Error(err))
	}

	if s.webhook != "" {
		go func() {
			if err := s.postWebhook(lead); err != nil {
				s.log.Warn("lead webhook failed", zap.Error(err))
			}
		}()
	}
	return true, nil
}

func (s *Store) appendCSV(lead Lead) error {
	if s.csvPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.csvPath), 0o755); err != nil {
		return fmt.Errorf("creating lead directory: %w", err)
	}

	_, statErr := os.Stat(s.csvPath)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.csvPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening lead CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"timestamp", "email", "consent", "context", "ip", "user_agent"}); err != nil {
			return err
		}
	}
	row := []string{
		lead.Timestamp,
		lead.Email,
		strconv.FormatBool(lead.Consent),
		lead.Context,
		lead.IP,
		lead.UserAgent,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *Store) postWebhook(lead Lead) error {
	body, err := json.Marshal(map[string]any{
		"type":      "lead_capture",
		"data":      lead,
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.webhook, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
