package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrExporterDisabled names the prometheus_exporter=false case.
// NewPromExporter never returns it; with the exporter disabled the
// router's "metrics" handler answers Locked("Exporter not enabled!")
// instead of collecting anything.
var ErrExporterDisabled = errors.New("exporter not enabled")

// PromExporter implements prometheus.Collector over an AccessCounter and
// a ClickCounter via client_golang's idiomatic Describe/Collect pair.
type PromExporter struct {
	access    *AccessCounter
	clicks    *ClickCounter
	accessDesc *prometheus.Desc
	clickDesc  *prometheus.Desc
}

// NewPromExporter builds a collector. prefix is prepended to every
// metric name (the configured prometheus_exporter_prefix).
func NewPromExporter(prefix string, access *AccessCounter, clicks *ClickCounter) *PromExporter {
	return &PromExporter{
		access: access,
		clicks: clicks,
		accessDesc: prometheus.NewDesc(
			prefix+"api_calls_total",
			"Total number of API calls handled, labeled by the raw AccessCounter key.",
			[]string{"key"}, nil,
		),
		clickDesc: prometheus.NewDesc(
			prefix+"station_clicks_total",
			"Total number of station click/listen events recorded.",
			nil, nil,
		),
	}
}

func (p *PromExporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.accessDesc
	ch <- p.clickDesc
}

func (p *PromExporter) Collect(ch chan<- prometheus.Metric) {
	for k, v := range p.access.Snapshot() {
		ch <- prometheus.MustNewConstMetric(p.accessDesc, prometheus.CounterValue, float64(v), string(k))
	}
	ch <- prometheus.MustNewConstMetric(p.clickDesc, prometheus.CounterValue, float64(p.clicks.Load()))
}
