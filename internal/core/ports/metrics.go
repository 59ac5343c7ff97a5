package ports

import "cafeteria/internal/core/domain/model/order"

// MetricsRecorder counts fulfillment outcomes.
type MetricsRecorder interface {
	OrderSubmitted()
	SubmissionRejected(reason string)
	OrderTransitioned(to order.Status)
}

// CodeAttemptsObserver receives how many candidates one code generation drew,
// including the exhausted ones.
type CodeAttemptsObserver interface {
	CodeAttempts(n int)
}
