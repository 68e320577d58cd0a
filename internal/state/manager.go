package state

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/habistudio/habi-backend/internal/cart"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/internal/orders"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/logger"
	"github.com/habistudio/habi-backend/pkg/types"
)

// Session is the login-state surface the manager captures and restores.
type Session interface {
	ActiveUser() (types.User, bool)
	SetActiveUser(user *types.User) error
}

// Manager captures the live services into snapshots and pushes loaded
// snapshots back into them.
type Manager struct {
	store    *Store
	ledger   *inventory.Ledger
	cart     *cart.Service
	orderLog *orders.Log
	session  Session
	log      *logger.Logger
}

func NewManager(store *Store, ledger *inventory.Ledger, cartSvc *cart.Service, orderLog *orders.Log, session Session, log *logger.Logger) *Manager {
	return &Manager{
		store:    store,
		ledger:   ledger,
		cart:     cartSvc,
		orderLog: orderLog,
		session:  session,
		log:      log,
	}
}

// Capture collects the current state of every service.
func (m *Manager) Capture() Snapshot {
	snap := Snapshot{
		Inventory: m.ledger.Entries(),
		Orders:    m.orderLog.List(),
		CartItems: m.cart.Items(),
	}
	if user, ok := m.session.ActiveUser(); ok {
		snap.ActiveUser = &user
	}
	return snap
}

// Save captures and persists the current state, returning the filename.
func (m *Manager) Save(ctx context.Context, now time.Time) (string, error) {
	return m.store.Save(ctx, m.Capture(), now)
}

// Restore pushes a loaded snapshot into every service. Errors from
// individual sections are aggregated; the remaining sections still restore.
func (m *Manager) Restore(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return apperrors.New(apperrors.CodeNotFound, "snapshot not found")
	}

	var errs error

	if snap.Inventory != nil {
		m.ledger.Restore(snap.Inventory)
	} else {
		m.ledger.Restore(inventory.SeedEntries())
		if m.log != nil {
			m.log.Warn(ctx, "snapshot has no inventory table, reseeding")
		}
	}
	m.orderLog.Restore(snap.Orders)
	m.cart.Restore(snap.CartItems)
	if err := m.session.SetActiveUser(snap.ActiveUser); err != nil {
		errs = multierr.Append(errs, err)
	}

	return errs
}

// RestoreFrom loads and restores the named snapshot.
func (m *Manager) RestoreFrom(ctx context.Context, name string) error {
	return m.Restore(ctx, m.store.Load(ctx, name))
}

// RestoreLatest restores the newest snapshot. It reports false without
// error when no snapshot exists, so a fresh boot keeps its seed state.
func (m *Manager) RestoreLatest(ctx context.Context) (bool, error) {
	snap := m.store.LoadLatest(ctx)
	if snap == nil {
		return false, nil
	}
	if err := m.Restore(ctx, snap); err != nil {
		return true, err
	}
	return true, nil
}
