package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	ScansTotal               = prometheus.NewCounter(prometheus.CounterOpts{Name: "scans_total", Help: "Total feed scans performed"})
	ScanErrorsTotal          = prometheus.NewCounter(prometheus.CounterOpts{Name: "scan_errors_total", Help: "Scans that failed feed validation or engine contract checks"})
	NegativeCyclesFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{Name: "negative_cycles_found_total", Help: "Scans that detected a reachable negative cycle"})
	ScanLatencyMs            = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "scan_latency_ms", Help: "End-to-end scan latency", Buckets: prometheus.ExponentialBuckets(0.01, 2, 16)})
	GraphVertices            = prometheus.NewGauge(prometheus.GaugeOpts{Name: "graph_vertices", Help: "Vertex count of the last scanned graph"})
	GraphEdges               = prometheus.NewGauge(prometheus.GaugeOpts{Name: "graph_edges", Help: "Edge count of the last scanned graph"})
)

func Init(logger zerolog.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		ScansTotal, ScanErrorsTotal, NegativeCyclesFoundTotal,
		ScanLatencyMs, GraphVertices, GraphEdges,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	logger.Info().Msg("Prometheus metrics initialized")
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
