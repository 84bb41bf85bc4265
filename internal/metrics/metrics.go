// Package metrics holds the Prometheus collectors shared by the page,
// the page server and the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchTotal counts page fetches by outcome: "ok" or a fetch error reason.
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triptips_fetch_total",
		Help: "Markdown fetches issued by mounted pages, by outcome",
	}, []string{"outcome"})

	// PageRendersTotal counts rendered pages by surface: "html" or "terminal".
	PageRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triptips_page_renders_total",
		Help: "Pages rendered, by surface",
	}, []string{"surface"})

	// BackendRequestsTotal counts /api/markdown responses by status code class.
	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triptips_backend_requests_total",
		Help: "Requests answered by the trip tips backend, by status",
	}, []string{"status"})
)
