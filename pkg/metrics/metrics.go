package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HistogramBuckets are millisecond latency buckets. The upper range covers a
// full document generation against a slow model.
var HistogramBuckets = []float64{
	25, 50, 100, 200, 300, 500,
	750, 1000, 1500, 2000, 3000, 5000,
	7500, 10000, 15000, 20000, 30000,
	45000, 60000, 90000, 120000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric builds the collector described by m. Histograms use
// HistogramBuckets. It returns nil for an unknown type.
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case "counter_vec":
		return prometheus.NewCounterVec(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "counter":
		return prometheus.NewCounter(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	case "gauge_vec":
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "histogram_vec":
		return prometheus.NewHistogramVec(histogramOpts(m, subsystem), m.Args)
	case "histogram":
		return prometheus.NewHistogram(histogramOpts(m, subsystem))
	case "summary_vec":
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	}
	return nil
}

func histogramOpts(m *Metric, subsystem string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      m.Name,
		Help:      m.Description,
		Buckets:   HistogramBuckets,
	}
}

var webhookEvents = &Metric{
	ID:          "webhookEvents",
	Name:        "webhook_events_total",
	Description: "Kiwify webhook deliveries partitioned by outcome.",
	Type:        "counter_vec",
	Args:        []string{"outcome"},
}

var comboGenerations = &Metric{
	ID:          "comboGenerations",
	Name:        "combo_generations_total",
	Description: "Combo generation attempts partitioned by result.",
	Type:        "counter_vec",
	Args:        []string{"result"},
}

// MetricsBusinessProcess times external calls in milliseconds.
var MetricsBusinessProcess = &Metric{
	ID:          "bpDur",
	Name:        "bp_dur",
	Description: "process latency in milliseconds",
	Type:        "histogram_vec",
	Args:        []string{"type", "subtype"},
}

const (
	RefererKey = "X-Referer"
)
