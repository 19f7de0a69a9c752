package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const Subsystem = "combo"

// Recorder records business events. A nil *Recorder is a no-op.
type Recorder struct {
	webhookEvents    *prometheus.CounterVec
	comboGenerations *prometheus.CounterVec
	process          *prometheus.HistogramVec
}

// NewRecorder registers the business collectors on reg.
func NewRecorder(reg prometheus.Registerer, log Logger) *Recorder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	register := func(m *Metric) prometheus.Collector {
		return registerOrReuse(reg, NewMetric(m, Subsystem), log, m.Name)
	}
	return &Recorder{
		webhookEvents:    register(webhookEvents).(*prometheus.CounterVec),
		comboGenerations: register(comboGenerations).(*prometheus.CounterVec),
		process:          register(MetricsBusinessProcess).(*prometheus.HistogramVec),
	}
}

// WebhookEvent counts one webhook delivery with its outcome
// (grant, revoke, ignore, ping, rejected, failed).
func (r *Recorder) WebhookEvent(outcome string) {
	if r == nil {
		return
	}
	r.webhookEvents.WithLabelValues(outcome).Inc()
}

// ComboGeneration counts one generation attempt with its result.
func (r *Recorder) ComboGeneration(result string) {
	if r == nil {
		return
	}
	r.comboGenerations.WithLabelValues(result).Inc()
}

// ObserveSince records the latency of a process step started at start.
func (r *Recorder) ObserveSince(kind, subtype string, start time.Time) {
	if r == nil {
		return
	}
	r.process.WithLabelValues(kind, subtype).Observe(MillisecondsSince(start))
}

func newDefaultRecorder(log *zap.SugaredLogger) *Recorder {
	return NewRecorder(prometheus.DefaultRegisterer, log)
}

// Module provides the process-wide *Recorder.
var Module = fx.Options(
	fx.Provide(newDefaultRecorder),
)
