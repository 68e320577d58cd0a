package cart

import (
	"testing"

	"github.com/google/uuid"

	"github.com/habistudio/habi-backend/internal/catalog"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/internal/orders"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/types"
)

type fakeUsers struct {
	user   types.User
	active bool
}

func (f *fakeUsers) ActiveUser() (types.User, bool) {
	return f.user, f.active
}

func newFixture() (*Service, *inventory.Ledger, *orders.Log) {
	ledger := inventory.NewLedger(inventory.SeedEntries(), nil)
	log := orders.NewLog(nil)
	users := &fakeUsers{
		user:   types.User{Username: "maria", Name: "Maria Santos", Address: "Cebu", Age: 28},
		active: true,
	}
	svc := NewService(catalog.NewService(), ledger, log, users, nil)
	return svc, ledger, log
}

func TestAddReservesStock(t *testing.T) {
	svc, ledger, _ := newFixture()

	line, err := svc.Add("CARA", 3, "Natural")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if line.ID == uuid.Nil {
		t.Fatalf("expected a line id")
	}
	if line.Buyer.Name != "Maria Santos" {
		t.Fatalf("buyer = %+v", line.Buyer)
	}
	if !line.LineTotal.Equal(types.FlatAmount(4350)) {
		t.Fatalf("line total = %s, want 4350", line.LineTotal)
	}
	if got := ledger.Stock("CARA").Quantity; got != 47 {
		t.Fatalf("stock = %d, want 47", got)
	}
	if got := svc.Badge(); got != 3 {
		t.Fatalf("badge = %d, want 3", got)
	}
}

func TestAddDoesNotMergeEqualLines(t *testing.T) {
	svc, _, _ := newFixture()

	if _, err := svc.Add("CARA", 1, "Natural"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add("CARA", 1, "Natural"); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := svc.Items()
	if len(items) != 2 {
		t.Fatalf("lines = %d, want 2 distinct lines", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Fatalf("lines must carry distinct ids")
	}
}

func TestAddValidation(t *testing.T) {
	svc, ledger, _ := newFixture()

	if _, err := svc.Add("GHOST", 1, "Natural"); apperrors.As(err).Code() != apperrors.CodeNotFound {
		t.Fatalf("unknown product: got %v", err)
	}
	if _, err := svc.Add("CARA", 0, "Natural"); apperrors.As(err).Code() != apperrors.CodeValidation {
		t.Fatalf("zero quantity: got %v", err)
	}
	if _, err := svc.Add("CARA", 1, "Neon"); apperrors.As(err).Code() != apperrors.CodeValidation {
		t.Fatalf("bad color: got %v", err)
	}

	if got := ledger.Stock("CARA").Quantity; got != 50 {
		t.Fatalf("failed adds must not touch stock, got %d", got)
	}
	if len(svc.Items()) != 0 {
		t.Fatalf("failed adds must leave the cart empty")
	}
}

func TestAddInsufficientStockLeavesCartUntouched(t *testing.T) {
	svc, ledger, _ := newFixture()

	if err := ledger.SetQuantity("CARA", "2"); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	_, err := svc.Add("CARA", 3, "Natural")
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(svc.Items()) != 0 {
		t.Fatalf("cart must stay empty after rejected reservation")
	}
	if got := ledger.Stock("CARA").Quantity; got != 2 {
		t.Fatalf("stock = %d, want 2", got)
	}
}

func TestAddRequiresActiveUser(t *testing.T) {
	ledger := inventory.NewLedger(inventory.SeedEntries(), nil)
	svc := NewService(catalog.NewService(), ledger, orders.NewLog(nil), &fakeUsers{}, nil)

	_, err := svc.Add("CARA", 1, "Natural")
	if apperrors.As(err).Code() != apperrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAddUntrackedProduct(t *testing.T) {
	svc, _, _ := newFixture()

	line, err := svc.Add("Customized Shoulder Bag", 2, "Any")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !line.LineTotal.Equal(types.RawAmount("11000 - 12000")) {
		t.Fatalf("line total = %s, want 11000 - 12000", line.LineTotal)
	}
}

func TestRemoveReleasesStock(t *testing.T) {
	svc, ledger, _ := newFixture()

	line, err := svc.Add("CARA", 3, "Natural")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(line.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := ledger.Stock("CARA").Quantity; got != 50 {
		t.Fatalf("stock = %d, want 50", got)
	}
	if got := svc.Badge(); got != 0 {
		t.Fatalf("badge = %d, want 0", got)
	}

	if err := svc.Remove(line.ID); apperrors.As(err).Code() != apperrors.CodeNotFound {
		t.Fatalf("double remove: got %v", err)
	}
}

func TestCheckout(t *testing.T) {
	svc, ledger, log := newFixture()

	first, _ := svc.Add("CARA", 2, "Natural")
	second, _ := svc.Add("MEG", 1, "Indigo")

	moved, err := svc.Checkout()
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(moved) != 2 {
		t.Fatalf("moved = %d lines, want 2", len(moved))
	}

	logged := log.List()
	if len(logged) != 2 || logged[0].ID != first.ID || logged[1].ID != second.ID {
		t.Fatalf("order log = %+v", logged)
	}
	if len(svc.Items()) != 0 {
		t.Fatalf("cart must be empty after checkout")
	}
	if got := svc.Badge(); got != 0 {
		t.Fatalf("badge = %d, want 0", got)
	}
	// Reservation already happened at add time.
	if got := ledger.Stock("CARA").Quantity; got != 48 {
		t.Fatalf("stock = %d, want 48", got)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, log := newFixture()

	_, err := svc.Checkout()
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(log.List()) != 0 {
		t.Fatalf("order log must stay empty")
	}
}

func TestBadgeObserver(t *testing.T) {
	svc, _, _ := newFixture()

	var counts []int
	svc.OnBadgeChanged(func(count int) {
		counts = append(counts, count)
	})

	line, _ := svc.Add("CARA", 2, "Natural")
	_, _ = svc.Add("MEG", 1, "Indigo")
	_ = svc.Remove(line.ID)
	_, _ = svc.Checkout()

	want := []int{2, 3, 1, 0}
	if len(counts) != len(want) {
		t.Fatalf("badge calls = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("badge calls = %v, want %v", counts, want)
		}
	}
}

func TestRestore(t *testing.T) {
	svc, _, _ := newFixture()

	svc.Restore([]types.LineItem{
		{ID: uuid.New(), ProductName: "CARA", Quantity: 4},
	})
	if got := svc.Badge(); got != 4 {
		t.Fatalf("badge = %d, want 4", got)
	}

	svc.Restore(nil)
	if got := svc.Badge(); got != 0 {
		t.Fatalf("badge = %d, want 0", got)
	}
}
