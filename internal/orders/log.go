package orders

import (
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/metrics"
	"github.com/habistudio/habi-backend/pkg/types"
)

// Log is the append-only record of checked-out purchase lines. Removal is an
// admin cleanup action only and never restores inventory.
type Log struct {
	mu      sync.Mutex
	lines   []types.LineItem
	metrics *metrics.StoreMetrics
}

func NewLog(m *metrics.StoreMetrics) *Log {
	return &Log{metrics: m}
}

// Append adds checked-out lines to the end of the log, preserving order.
func (l *Log) Append(lines ...types.LineItem) {
	if len(lines) == 0 {
		return
	}
	l.mu.Lock()
	l.lines = append(l.lines, lines...)
	l.mu.Unlock()
	l.metrics.AddOrderLines(len(lines))
}

// List returns a copy of the log in append order.
func (l *Log) List() []types.LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]types.LineItem, len(l.lines))
	copy(out, l.lines)
	return out
}

// Remove drops the lines with the given IDs. Unknown IDs are reported, known
// ones are removed regardless; inventory is never touched.
func (l *Log) Remove(ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = false
	}

	l.mu.Lock()
	kept := l.lines[:0]
	for _, line := range l.lines {
		if _, ok := wanted[line.ID]; ok {
			wanted[line.ID] = true
			continue
		}
		kept = append(kept, line)
	}
	l.lines = kept
	l.mu.Unlock()

	var missing []string
	for _, id := range ids {
		if !wanted[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return apperrors.New(apperrors.CodeNotFound, "order line not found").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}

// SetCompleted toggles the fulfilment flag on a single line.
func (l *Log) SetCompleted(id uuid.UUID, completed bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.lines {
		if l.lines[i].ID == id {
			l.lines[i].Completed = completed
			return nil
		}
	}
	return apperrors.New(apperrors.CodeNotFound, "order line not found")
}

// Restore replaces the log contents, as when loading a snapshot.
func (l *Log) Restore(lines []types.LineItem) {
	replacement := make([]types.LineItem, len(lines))
	copy(replacement, lines)
	l.mu.Lock()
	l.lines = replacement
	l.mu.Unlock()
}
