package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	turnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_turns_total",
			Help: "Conversation turns handled, labelled by routed intent",
		},
		[]string{"intent"},
	)

	turnDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbot_turn_duration_seconds",
			Help:    "End-to-end latency of one conversation turn",
			Buckets: prometheus.DefBuckets,
		},
	)

	admissionWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbot_admission_wait_seconds",
			Help:    "Delay imposed by the upstream call-rate limiter",
			Buckets: []float64{.01, .1, .5, 1, 2, 5, 10, 30, 60},
		},
	)

	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_orders_created_total",
			Help: "Orders committed by the order transaction manager",
		},
	)
)

func init() {
	prometheus.MustRegister(turnsTotal, turnDuration, admissionWait, ordersCreated)
}

// ObserveTurn records a handled turn in the prometheus collectors
func ObserveTurn(intent string, duration time.Duration) {
	turnsTotal.WithLabelValues(intent).Inc()
	turnDuration.Observe(duration.Seconds())
}

// ObserveAdmissionWait records a rate-limiter delay. Wired into the limiter's
// OnWait hook at startup.
func ObserveAdmissionWait(d time.Duration) {
	admissionWait.Observe(d.Seconds())
}
