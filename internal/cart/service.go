package cart

import (
	"sync"

	"github.com/google/uuid"

	"github.com/habistudio/habi-backend/internal/catalog"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/internal/orders"
	"github.com/habistudio/habi-backend/internal/pricing"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/metrics"
	"github.com/habistudio/habi-backend/pkg/types"
)

// UserSource resolves the customer whose purchase details are stamped onto
// new cart lines.
type UserSource interface {
	ActiveUser() (types.User, bool)
}

// Service holds the pending purchase lines for the active session. Stock is
// reserved when a line is added and returned when it is removed; checkout
// moves the lines into the order log without touching inventory again.
type Service struct {
	mu       sync.Mutex
	lines    []types.LineItem
	catalog  *catalog.Service
	ledger   *inventory.Ledger
	orderLog *orders.Log
	users    UserSource
	badgeFns []func(count int)
	metrics  *metrics.StoreMetrics
}

func NewService(cat *catalog.Service, ledger *inventory.Ledger, orderLog *orders.Log, users UserSource, m *metrics.StoreMetrics) *Service {
	return &Service{
		catalog:  cat,
		ledger:   ledger,
		orderLog: orderLog,
		users:    users,
		metrics:  m,
	}
}

// OnBadgeChanged registers a callback fired with the total item count after
// every cart mutation. Callbacks run outside the cart lock.
func (s *Service) OnBadgeChanged(fn func(count int)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.badgeFns = append(s.badgeFns, fn)
	s.mu.Unlock()
}

func (s *Service) notifyBadge() {
	s.mu.Lock()
	count := s.badgeLocked()
	fns := make([]func(int), len(s.badgeFns))
	copy(fns, s.badgeFns)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(count)
	}
}

func (s *Service) badgeLocked() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Add reserves stock and appends a new line. Equal lines are never merged;
// each add is its own line. A failed reservation leaves the cart untouched.
func (s *Service) Add(productName string, qty int, color string) (types.LineItem, error) {
	product, err := s.catalog.Get(productName)
	if err != nil {
		return types.LineItem{}, err
	}
	if qty < 1 {
		return types.LineItem{}, apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
	}
	if !product.HasColor(color) {
		return types.LineItem{}, apperrors.New(apperrors.CodeValidation, "color not available for this product").
			WithDetails(map[string]any{"colors": product.Colors})
	}
	user, ok := s.users.ActiveUser()
	if !ok {
		return types.LineItem{}, apperrors.New(apperrors.CodeUnauthorized, "no customer is logged in")
	}

	if err := s.ledger.Reserve(product.Name, qty); err != nil {
		return types.LineItem{}, err
	}

	line := types.LineItem{
		ID:          uuid.New(),
		Buyer:       types.BuyerFromUser(user),
		ProductName: product.Name,
		Category:    product.Category,
		Quantity:    qty,
		Color:       color,
		UnitPrice:   product.Price,
		LineTotal:   pricing.CalculateTotal(product.Price, qty),
	}

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()

	s.notifyBadge()
	return line, nil
}

// Remove drops the line with the given ID and returns its stock.
func (s *Service) Remove(id uuid.UUID) error {
	s.mu.Lock()
	idx := -1
	for i, line := range s.lines {
		if line.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperrors.New(apperrors.CodeNotFound, "cart line not found")
	}
	removed := s.lines[idx]
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.mu.Unlock()

	s.ledger.Release(removed.ProductName, removed.Quantity)
	s.notifyBadge()
	return nil
}

// Checkout moves every line into the order log in cart order and empties the
// cart. Stock was already reserved at add time, so inventory is untouched.
func (s *Service) Checkout() ([]types.LineItem, error) {
	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return nil, apperrors.New(apperrors.CodeValidation, "cart is empty")
	}
	moved := s.lines
	s.lines = nil
	s.mu.Unlock()

	s.orderLog.Append(moved...)
	s.metrics.IncCheckout()
	s.notifyBadge()
	return moved, nil
}

// Items returns a copy of the pending lines in add order.
func (s *Service) Items() []types.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// Badge returns the total quantity across all pending lines.
func (s *Service) Badge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.badgeLocked()
}

// Restore replaces the cart contents, as when loading a snapshot. Restored
// lines are assumed to have their stock already reserved in the snapshot's
// inventory table.
func (s *Service) Restore(lines []types.LineItem) {
	replacement := make([]types.LineItem, len(lines))
	copy(replacement, lines)
	s.mu.Lock()
	s.lines = replacement
	s.mu.Unlock()
	s.notifyBadge()
}
