package state

import (
	"context"
	"testing"
	"time"

	"github.com/habistudio/habi-backend/internal/cart"
	"github.com/habistudio/habi-backend/internal/catalog"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/internal/orders"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/types"
)

type fakeSession struct {
	user *types.User
}

func (f *fakeSession) ActiveUser() (types.User, bool) {
	if f.user == nil {
		return types.User{}, false
	}
	return *f.user, true
}

func (f *fakeSession) SetActiveUser(user *types.User) error {
	f.user = user
	return nil
}

func newManagerFixture(t *testing.T) (*Manager, *inventory.Ledger, *cart.Service, *orders.Log, *fakeSession) {
	t.Helper()
	store := newTestStore(t)
	session := &fakeSession{user: &types.User{Username: "maria", Name: "Maria Santos", Address: "Cebu", Age: 28}}
	ledger := inventory.NewLedger(inventory.SeedEntries(), nil)
	log := orders.NewLog(nil)
	cartSvc := cart.NewService(catalog.NewService(), ledger, log, session, nil)
	return NewManager(store, ledger, cartSvc, log, session, nil), ledger, cartSvc, log, session
}

func TestSaveAndRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mgr, ledger, cartSvc, orderLog, _ := newManagerFixture(t)

	if _, err := cartSvc.Add("CARA", 2, "Natural"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := cartSvc.Add("MEG", 1, "Indigo"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := cartSvc.Checkout(); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if _, err := cartSvc.Add("NYA", 1, "Natural"); err != nil {
		t.Fatalf("add: %v", err)
	}

	name, err := mgr.Save(ctx, time.Now())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutate everything, then restore the saved snapshot.
	if err := ledger.SetQuantity("CARA", "0"); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	cartSvc.Restore(nil)
	orderLog.Restore(nil)

	if err := mgr.RestoreFrom(ctx, name); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if got := ledger.Stock("CARA").Quantity; got != 48 {
		t.Fatalf("stock = %d, want 48", got)
	}
	if got := cartSvc.Badge(); got != 1 {
		t.Fatalf("badge = %d, want 1", got)
	}
	if got := len(orderLog.List()); got != 2 {
		t.Fatalf("order lines = %d, want 2", got)
	}
}

func TestRestoreMissingSnapshot(t *testing.T) {
	ctx := context.Background()
	mgr, _, _, _, _ := newManagerFixture(t)

	err := mgr.RestoreFrom(ctx, "file_state_19990101_000000.json")
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRestoreLatest(t *testing.T) {
	ctx := context.Background()
	mgr, ledger, _, _, session := newManagerFixture(t)

	restored, err := mgr.RestoreLatest(ctx)
	if err != nil {
		t.Fatalf("restore latest: %v", err)
	}
	if restored {
		t.Fatalf("empty save dir must not restore")
	}

	session.user = nil
	if _, err := mgr.Save(ctx, time.Now()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ledger.SetQuantity("CARA", "1"); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	restored, err = mgr.RestoreLatest(ctx)
	if err != nil {
		t.Fatalf("restore latest: %v", err)
	}
	if !restored {
		t.Fatalf("expected a snapshot to restore")
	}
	if got := ledger.Stock("CARA").Quantity; got != 50 {
		t.Fatalf("stock = %d, want 50", got)
	}
	if _, ok := session.ActiveUser(); ok {
		t.Fatalf("restore must clear the active user when the snapshot had none")
	}
}

func TestCaptureActiveUser(t *testing.T) {
	mgr, _, _, _, session := newManagerFixture(t)

	snap := mgr.Capture()
	if snap.ActiveUser == nil || snap.ActiveUser.Username != "maria" {
		t.Fatalf("active user = %+v", snap.ActiveUser)
	}

	session.user = nil
	snap = mgr.Capture()
	if snap.ActiveUser != nil {
		t.Fatalf("active user = %+v, want nil", snap.ActiveUser)
	}
}
