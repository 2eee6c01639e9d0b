package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records business-level counters for the portal.
type APIMetrics struct {
	ordersCreated  prometheus.Counter
	ordersRejected *prometheus.CounterVec
	mailsSent      *prometheus.CounterVec
	proxyRequests  *prometheus.CounterVec
}

// NewAPIMetrics registers the portal metrics on the provided registerer.
// A nil registerer yields a no-op instance, which keeps tests quiet.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted by the checkout pipeline.",
	})
	ordersRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Orders rejected before persistence.",
	}, []string{"reason"})
	mailsSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mails_total",
		Help: "Confirmation mails by delivery outcome.",
	}, []string{"outcome"})
	proxyRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fabrica_proxy_requests_total",
		Help: "Requests relayed to the factory service.",
	}, []string{"method", "outcome"})
	reg.MustRegister(ordersCreated, ordersRejected, mailsSent, proxyRequests)
	return &APIMetrics{
		ordersCreated:  ordersCreated,
		ordersRejected: ordersRejected,
		mailsSent:      mailsSent,
		proxyRequests:  proxyRequests,
	}
}

// IncOrderCreated counts a persisted order.
func (m *APIMetrics) IncOrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncOrderRejected counts a rejected order with the given reason label.
func (m *APIMetrics) IncOrderRejected(reason string) {
	if m == nil || m.ordersRejected == nil {
		return
	}
	m.ordersRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncMail counts a confirmation mail outcome: sent, simulated or failed.
func (m *APIMetrics) IncMail(outcome string) {
	if m == nil || m.mailsSent == nil {
		return
	}
	m.mailsSent.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncProxyRequest counts a relayed factory request.
func (m *APIMetrics) IncProxyRequest(method, outcome string) {
	if m == nil || m.proxyRequests == nil {
		return
	}
	m.proxyRequests.WithLabelValues(normalizeLabel(method), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
