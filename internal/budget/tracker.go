package budget

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrCeilingExceeded is returned when an added cost pushes the daily total
// over the configured ceiling.
var ErrCeilingExceeded = errors.New("daily cost ceiling exceeded")

// DefaultCeiling is the daily spend limit in USD when none is configured.
const DefaultCeiling = 10.0

// DailyTracker accumulates estimated spend for the current local day and
// rejects additions past the ceiling. The total resets lazily on the first
// addition of a new day. Safe for concurrent use.
//
// The cost of a call is counted even when that call breaches the ceiling:
// the tokens were already bought, so the ledger records them and only
// subsequent requests are refused.
type DailyTracker struct {
	mu      sync.Mutex
	day     string
	total   float64
	ceiling float64
	now     func() time.Time
	log     *zap.Logger
}

// NewDailyTracker returns a tracker with the given USD ceiling. A ceiling
// <= 0 selects DefaultCeiling.
func NewDailyTracker(ceiling float64, log *zap.Logger) *DailyTracker {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DailyTracker{
		ceiling: ceiling,
		now:     time.Now,
		log:     log,
	}
}

// Add records cost against today's total and reports whether the ceiling
// has been breached. The cost is recorded either way.
func (t *DailyTracker) Add(cost float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now().Format("2006-01-02")
	if today != t.day {
		t.day = today
		t.total = 0
	}

	t.total += cost

	if t.total > t.ceiling {
		t.log.Error("daily cost ceiling exceeded",
			zap.String("total", fmt.Sprintf("$%.2f", t.total)),
			zap.String("ceiling", fmt.Sprintf("$%.2f", t.ceiling)))
		return ErrCeilingExceeded
	}

	t.log.Info("daily cost updated",
		zap.String("total", fmt.Sprintf("$%.6f", t.total)),
		zap.String("ceiling", fmt.Sprintf("$%.2f", t.ceiling)))
	return nil
}

// Total returns today's accumulated cost. A new day reads as zero even
// before the first Add.
func (t *DailyTracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.now().Format("2006-01-02") != t.day {
		return 0
	}
	return t.total
}
