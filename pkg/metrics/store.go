package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records counters for the storefront's stock and order flow.
type StoreMetrics struct {
	reservations  *prometheus.CounterVec
	releases      *prometheus.CounterVec
	stockRejected *prometheus.CounterVec
	checkouts     prometheus.Counter
	orderLines    prometheus.Counter
	snapshotSaves *prometheus.CounterVec
	snapshotLoads *prometheus.CounterVec
	logins        *prometheus.CounterVec
}

// NewStoreMetrics registers the storefront metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	reservations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_reservations_total",
		Help: "Units reserved from inventory when items enter a cart.",
	}, []string{"product"})
	releases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_releases_total",
		Help: "Units returned to inventory when cart lines are removed.",
	}, []string{"product"})
	stockRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_reservation_rejections_total",
		Help: "Reservation attempts rejected for insufficient stock.",
	}, []string{"product"})
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_total",
		Help: "Completed cart checkouts.",
	})
	orderLines := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_lines_total",
		Help: "Order lines appended to the order log.",
	})
	snapshotSaves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_snapshot_saves_total",
		Help: "State snapshot save attempts.",
	}, []string{"outcome"})
	snapshotLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_snapshot_loads_total",
		Help: "State snapshot load attempts.",
	}, []string{"outcome"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Login attempts by role and outcome.",
	}, []string{"role", "outcome"})
	reg.MustRegister(reservations, releases, stockRejected, checkouts, orderLines, snapshotSaves, snapshotLoads, logins)
	return &StoreMetrics{
		reservations:  reservations,
		releases:      releases,
		stockRejected: stockRejected,
		checkouts:     checkouts,
		orderLines:    orderLines,
		snapshotSaves: snapshotSaves,
		snapshotLoads: snapshotLoads,
		logins:        logins,
	}
}

// AddReserved records units reserved for the named product.
func (s *StoreMetrics) AddReserved(product string, units int) {
	if s == nil || s.reservations == nil || units <= 0 {
		return
	}
	s.reservations.WithLabelValues(normalizeLabel(product)).Add(float64(units))
}

// AddReleased records units returned for the named product.
func (s *StoreMetrics) AddReleased(product string, units int) {
	if s == nil || s.releases == nil || units <= 0 {
		return
	}
	s.releases.WithLabelValues(normalizeLabel(product)).Add(float64(units))
}

// IncReservationRejected increments the insufficient-stock counter.
func (s *StoreMetrics) IncReservationRejected(product string) {
	if s == nil || s.stockRejected == nil {
		return
	}
	s.stockRejected.WithLabelValues(normalizeLabel(product)).Inc()
}

// IncCheckout increments the checkout counter.
func (s *StoreMetrics) IncCheckout() {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.Inc()
}

// AddOrderLines records how many lines a checkout appended.
func (s *StoreMetrics) AddOrderLines(count int) {
	if s == nil || s.orderLines == nil || count <= 0 {
		return
	}
	s.orderLines.Add(float64(count))
}

// IncSnapshotSave records a snapshot save attempt.
func (s *StoreMetrics) IncSnapshotSave(outcome string) {
	if s == nil || s.snapshotSaves == nil {
		return
	}
	s.snapshotSaves.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncSnapshotLoad records a snapshot load attempt.
func (s *StoreMetrics) IncSnapshotLoad(outcome string) {
	if s == nil || s.snapshotLoads == nil {
		return
	}
	s.snapshotLoads.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncLogin records a login attempt for the role and outcome.
func (s *StoreMetrics) IncLogin(role, outcome string) {
	if s == nil || s.logins == nil {
		return
	}
	s.logins.WithLabelValues(normalizeLabel(role), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
