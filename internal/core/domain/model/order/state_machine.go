package order

// StateMachine is the only component allowed to change an order's status.
// It never fails: a refused transition is reported as false and leaves the
// order untouched.
//
// Example:
//
//	sm := order.NewStateMachine()
//	if !sm.Advance(o) {
//	    // o is Delivered or Cancelled; nothing changed
//	}
//
// StateMachine holds no state and is safe for concurrent use, but the
// orders it mutates are not; callers serialise access per order.
type StateMachine struct{}

// NewStateMachine creates a StateMachine.
func NewStateMachine() StateMachine {
	return StateMachine{}
}

// CanTransition reports whether from -> to is in the transition table.
func (StateMachine) CanTransition(from, to Status) bool {
	return from.CanTransitionTo(to)
}

// Advance moves o to the next status of the linear flow. It returns false,
// without mutating o, when o is final.
func (m StateMachine) Advance(o *Order) bool {
	if o == nil {
		return false
	}

	next := o.status.Next()
	if next == o.status || !m.CanTransition(o.status, next) {
		return false
	}

	o.status = next
	return true
}

// Cancel moves o to Cancelled. Only Pending and InPreparation orders can be
// cancelled; for any other status Cancel returns false and o is unchanged.
func (m StateMachine) Cancel(o *Order) bool {
	if o == nil || !m.CanTransition(o.status, Cancelled) {
		return false
	}

	o.status = Cancelled
	return true
}
