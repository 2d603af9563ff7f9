package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pscheid92/moodreact/internal/domain"
)

// ReactionMetrics holds Prometheus metrics for the event-to-reaction pipeline.
type ReactionMetrics struct {
	EventsHandled    *prometheus.CounterVec
	ClassesAssigned  *prometheus.CounterVec
	OutboundCalls    *prometheus.CounterVec
	HandlingDuration prometheus.Histogram
}

// NewReactionMetrics creates and registers reaction pipeline metrics on the given registry.
func NewReactionMetrics(reg prometheus.Registerer) *ReactionMetrics {
	m := &ReactionMetrics{
		EventsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_handled_total",
			Help:      "Total number of inbound events, by outcome.",
		}, []string{"outcome"}),
		ClassesAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiment_classes_total",
			Help:      "Total number of classified messages, by sentiment class.",
		}, []string{"class"}),
		OutboundCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "calls_total",
			Help:      "Total number of chat platform calls, by call and result.",
		}, []string{"call", "result"}),
		HandlingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_handling_duration_seconds",
			Help:      "Duration of inbound event handling in seconds, including outbound calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	// pre-create series so dashboards show zeros before the first event
	for _, class := range domain.SentimentClasses {
		m.ClassesAssigned.WithLabelValues(string(class))
	}

	reg.MustRegister(m.EventsHandled, m.ClassesAssigned, m.OutboundCalls, m.HandlingDuration)
	return m
}

func (m *ReactionMetrics) EventHandled(outcome string) {
	m.EventsHandled.WithLabelValues(outcome).Inc()
}

func (m *ReactionMetrics) ClassAssigned(class domain.SentimentClass) {
	m.ClassesAssigned.WithLabelValues(string(class)).Inc()
}

func (m *ReactionMetrics) CallCompleted(call, result string) {
	m.OutboundCalls.WithLabelValues(call, result).Inc()
}

func (m *ReactionMetrics) ObserveHandling(d time.Duration) {
	m.HandlingDuration.Observe(d.Seconds())
}
