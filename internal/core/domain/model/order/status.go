package order

import (
	"fmt"

	"cafeteria/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It is a plain tag: display
// names, badge colours and icons belong to the presentation layer.
//
// State transitions:
//
//	Pending ──> InPreparation ──> Ready ──> Delivered
//	   │              │
//	   └──────────────┴──> Cancelled
//
// Delivered and Cancelled are final.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota

	// Pending is the initial status of a submitted order.
	Pending

	// InPreparation means the kitchen has started on the order.
	InPreparation

	// Ready means the order is waiting at the counter for pickup.
	Ready

	// Delivered means the customer collected the order. Final.
	Delivered

	// Cancelled means the order was withdrawn before it was ready. Final.
	Cancelled
)

var statusTags = map[Status]string{
	Pending:       "PENDING",
	InPreparation: "IN_PREPARATION",
	Ready:         "READY",
	Delivered:     "DELIVERED",
	Cancelled:     "CANCELLED",
}

// transitions is the source of truth for allowed status changes.
var transitions = map[Status][]Status{
	Pending:       {InPreparation, Cancelled},
	InPreparation: {Ready, Cancelled},
	Ready:         {Delivered},
	Delivered:     nil,
	Cancelled:     nil,
}

// AllStatuses returns every valid status in flow order. Callers that group
// orders by status use it so that empty groups are still present.
func AllStatuses() []Status {
	return []Status{Pending, InPreparation, Ready, Delivered, Cancelled}
}

// ParseStatus converts a persisted or transported tag such as "IN_PREPARATION"
// back into a Status.
func ParseStatus(tag string) (Status, error) {
	for status, s := range statusTags {
		if s == tag {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", tag))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusTags[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stable tag used in storage, JSON and logs.
func (s Status) String() string {
	if tag, ok := statusTags[s]; ok {
		return tag
	}
	return "UNKNOWN"
}

// IsFinal reports whether no transition leaves s.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Next returns the following status in the linear flow
// Pending -> InPreparation -> Ready -> Delivered. Final and invalid
// statuses return themselves.
func (s Status) Next() Status {
	switch s {
	case Pending:
		return InPreparation
	case InPreparation:
		return Ready
	case Ready:
		return Delivered
	default:
		return s
	}
}
