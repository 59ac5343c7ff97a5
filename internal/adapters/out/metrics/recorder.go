// Package metrics exports fulfillment counters to Prometheus.
package metrics

import (
	"cafeteria/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cafeteria"

// Recorder implements ports.MetricsRecorder and ports.CodeAttemptsObserver.
type Recorder struct {
	submitted    prometheus.Counter
	rejected     *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	codeAttempts prometheus.Histogram
}

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Orders persisted by checkout.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_submissions_rejected_total",
			Help:      "Checkouts that did not produce an order, by reason.",
		}, []string{"reason"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order status changes, by status entered.",
		}, []string{"status"}),
		codeAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_code_attempts",
			Help:      "Candidates drawn per order code, collisions included.",
			Buckets:   []float64{1, 2, 5, 10, 50, 100, 500, 1000},
		}),
	}

	for _, c := range []prometheus.Collector{r.submitted, r.rejected, r.transitions, r.codeAttempts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) OrderSubmitted() {
	r.submitted.Inc()
}

func (r *Recorder) SubmissionRejected(reason string) {
	r.rejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) OrderTransitioned(to order.Status) {
	r.transitions.WithLabelValues(to.String()).Inc()
}

func (r *Recorder) CodeAttempts(n int) {
	r.codeAttempts.Observe(float64(n))
}
