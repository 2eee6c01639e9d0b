package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAPIMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)

	m.IncOrderCreated()
	m.IncOrderRejected("stock")
	m.IncMail("simulated")
	m.IncProxyRequest("GET", "ok")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"orders_created_total",
		"orders_rejected_total",
		"mails_total",
		"fabrica_proxy_requests_total",
	} {
		if !names[want] {
			t.Errorf("metric %q not registered", want)
		}
	}

	if got := counterValue(mfs, "orders_created_total"); got != 1 {
		t.Errorf("expected orders_created_total=1, got %f", got)
	}
}

func TestAPIMetricsNoopWithoutRegistry(t *testing.T) {
	var m *APIMetrics
	m.IncOrderCreated()
	m.IncMail("sent")

	m = NewAPIMetrics(nil)
	m.IncProxyRequest("", "")
}

func counterValue(mfs []*dto.MetricFamily, name string) float64 {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
		}
	}
	return -1
}
