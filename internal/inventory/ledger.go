package inventory

import (
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/metrics"
)

// untrackedMarker matches catalog.UntrackedMarker; products carrying it in
// their name never hold a ledger entry.
const untrackedMarker = "Customized"

// Entry is one tracked product's stock record as persisted in snapshots.
type Entry struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// StockLevel is the result of a stock query.
type StockLevel struct {
	Quantity  int
	Untracked bool
}

// Ledger is the single source of truth for remaining stock. All mutations
// hold the mutex; observers run after the lock is released.
type Ledger struct {
	mu        sync.Mutex
	entries   map[string]Entry
	observers []func(name string)
	metrics   *metrics.StoreMetrics
}

func NewLedger(seed map[string]Entry, m *metrics.StoreMetrics) *Ledger {
	entries := make(map[string]Entry, len(seed))
	for name, entry := range seed {
		entries[name] = entry
	}
	return &Ledger{entries: entries, metrics: m}
}

// SeedEntries returns the stock table a fresh storefront starts with.
func SeedEntries() map[string]Entry {
	return map[string]Entry{
		"CARA":     {Type: "Shoulder Bag", Quantity: 50},
		"LIA":      {Type: "Shoulder Bag", Quantity: 50},
		"QUI":      {Type: "Shoulder Bag", Quantity: 50},
		"ANA":      {Type: "Shoulder Bag", Quantity: 50},
		"HYE":      {Type: "Shoulder Bag", Quantity: 50},
		"BABY":     {Type: "Shoulder Bag", Quantity: 50},
		"BIA":      {Type: "Shoulder Bag", Quantity: 50},
		"NYA":      {Type: "Sling Bag", Quantity: 50},
		"ORA":      {Type: "Sling Bag", Quantity: 50},
		"NORMAL":   {Type: "Tote Bag", Quantity: 50},
		"LARGE":    {Type: "Tote Bag", Quantity: 50},
		"MEG":      {Type: "Coin Purse", Quantity: 50},
		"AURA":     {Type: "Coin Purse", Quantity: 50},
		"EVA":      {Type: "Coin Purse", Quantity: 50},
		"AVA":      {Type: "Coin Purse", Quantity: 50},
		"STANDARD": {Type: "Saddle Bag", Quantity: 50},
	}
}

// OnStockChanged registers a callback fired with the product name after
// every mutation. Callbacks run outside the ledger lock.
func (l *Ledger) OnStockChanged(fn func(name string)) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.observers = append(l.observers, fn)
	l.mu.Unlock()
}

func (l *Ledger) notify(name string) {
	l.mu.Lock()
	observers := make([]func(string), len(l.observers))
	copy(observers, l.observers)
	l.mu.Unlock()
	for _, fn := range observers {
		fn(name)
	}
}

func isUntracked(name string) bool {
	return strings.Contains(name, untrackedMarker)
}

// Stock returns the current quantity for a tracked product. Untracked means
// the name carries the made-to-order marker or has no ledger entry.
func (l *Ledger) Stock(name string) StockLevel {
	if isUntracked(name) {
		return StockLevel{Untracked: true}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[name]
	if !ok {
		return StockLevel{Untracked: true}
	}
	return StockLevel{Quantity: entry.Quantity}
}

// Reserve decrements stock for a cart addition. Untracked products succeed
// without touching the ledger. A shortfall rejects the whole reservation.
func (l *Ledger) Reserve(name string, qty int) error {
	if qty <= 0 {
		return apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
	}
	if isUntracked(name) {
		return nil
	}

	l.mu.Lock()
	entry, ok := l.entries[name]
	if !ok {
		l.mu.Unlock()
		return nil
	}
	if entry.Quantity < qty {
		available := entry.Quantity
		l.mu.Unlock()
		l.metrics.IncReservationRejected(name)
		return apperrors.New(apperrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{"available": available})
	}
	entry.Quantity -= qty
	l.entries[name] = entry
	l.mu.Unlock()

	l.metrics.AddReserved(name, qty)
	l.notify(name)
	return nil
}

// Release returns previously reserved units, as when a cart line is removed.
func (l *Ledger) Release(name string, qty int) {
	if qty <= 0 || isUntracked(name) {
		return
	}

	l.mu.Lock()
	entry, ok := l.entries[name]
	if !ok {
		l.mu.Unlock()
		return
	}
	entry.Quantity += qty
	l.entries[name] = entry
	l.mu.Unlock()

	l.metrics.AddReleased(name, qty)
	l.notify(name)
}

// Restock raises a product's quantity to the target level. Raising to a
// level at or below the current count is rejected so an admin typo cannot
// silently shrink stock.
func (l *Ledger) Restock(name string, target int) error {
	if isUntracked(name) {
		return apperrors.New(apperrors.CodeValidation, "made-to-order products carry no stock count")
	}

	l.mu.Lock()
	entry, ok := l.entries[name]
	if !ok {
		l.mu.Unlock()
		return apperrors.New(apperrors.CodeNotFound, "product not found")
	}
	if entry.Quantity >= target {
		current := entry.Quantity
		l.mu.Unlock()
		return apperrors.New(apperrors.CodeStateConflict, "restock target not above current stock").
			WithDetails(map[string]any{"current": current})
	}
	entry.Quantity = target
	l.entries[name] = entry
	l.mu.Unlock()

	l.notify(name)
	return nil
}

// SetQuantity overwrites a product's count from a raw admin-entered string.
// Unparseable input and negative values clamp to zero.
func (l *Ledger) SetQuantity(name string, raw string) error {
	if isUntracked(name) {
		return apperrors.New(apperrors.CodeValidation, "made-to-order products carry no stock count")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 0 {
		qty = 0
	}

	l.mu.Lock()
	entry, ok := l.entries[name]
	if !ok {
		l.mu.Unlock()
		return apperrors.New(apperrors.CodeNotFound, "product not found")
	}
	entry.Quantity = qty
	l.entries[name] = entry
	l.mu.Unlock()

	l.notify(name)
	return nil
}

// Remove deletes a product row entirely, the admin table's row delete.
func (l *Ledger) Remove(name string) error {
	l.mu.Lock()
	_, ok := l.entries[name]
	if !ok {
		l.mu.Unlock()
		return apperrors.New(apperrors.CodeNotFound, "product not found")
	}
	delete(l.entries, name)
	l.mu.Unlock()

	l.notify(name)
	return nil
}

// Entries returns a copy of the current stock table for snapshots.
func (l *Ledger) Entries() map[string]Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]Entry, len(l.entries))
	for name, entry := range l.entries {
		out[name] = entry
	}
	return out
}

// Restore replaces the entire stock table, as when loading a snapshot.
func (l *Ledger) Restore(entries map[string]Entry) {
	replacement := make(map[string]Entry, len(entries))
	for name, entry := range entries {
		if entry.Quantity < 0 {
			entry.Quantity = 0
		}
		replacement[name] = entry
	}

	l.mu.Lock()
	l.entries = replacement
	l.mu.Unlock()

	l.notify("")
}
