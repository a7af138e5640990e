package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the distribution and attribution paths. The delivery log in
// Postgres stays the source of truth; these only feed dashboards.
var (
	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adlinker_deliveries_total",
		Help: "Webhook delivery attempts by outcome.",
	}, []string{"status"})

	ClicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adlinker_clicks_total",
		Help: "Attributed click redirects, split by first vs repeat.",
	}, []string{"first"})

	CyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adlinker_distribution_cycles_total",
		Help: "Distribution cycles by outcome.",
	}, []string{"outcome"})
)
