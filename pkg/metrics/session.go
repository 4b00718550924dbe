package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics records storefront session activity.
type SessionMetrics struct {
	events    *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	cartOps   *prometheus.CounterVec
	checkouts prometheus.Counter
	active    prometheus.Gauge
}

// NewSessionMetrics registers the session metrics on the provided registerer.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	if reg == nil {
		return &SessionMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ui_events_total",
		Help: "Dispatched UI events by name.",
	}, []string{"event"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ui_events_rejected_total",
		Help: "UI events that produced no screen transition.",
	}, []string{"event"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_total",
		Help: "Successfully placed orders.",
	})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_sessions",
		Help: "Storefront sessions currently held in memory.",
	})
	reg.MustRegister(events, rejected, cartOps, checkouts, active)
	return &SessionMetrics{
		events:    events,
		rejected:  rejected,
		cartOps:   cartOps,
		checkouts: checkouts,
		active:    active,
	}
}

// IncEvent counts a dispatched event.
func (s *SessionMetrics) IncEvent(event string) {
	if s == nil || s.events == nil {
		return
	}
	s.events.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncRejected counts an event that left the screen unchanged.
func (s *SessionMetrics) IncRejected(event string) {
	if s == nil || s.rejected == nil {
		return
	}
	s.rejected.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncCartOp counts a cart mutation.
func (s *SessionMetrics) IncCartOp(op string) {
	if s == nil || s.cartOps == nil {
		return
	}
	s.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckout counts a placed order.
func (s *SessionMetrics) IncCheckout() {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.Inc()
}

// SetActiveSessions records the in-memory session count.
func (s *SessionMetrics) SetActiveSessions(count int) {
	if s == nil || s.active == nil {
		return
	}
	s.active.Set(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
