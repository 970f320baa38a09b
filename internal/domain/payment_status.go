package domain

import "errors"

type PaymentStatus string

// remember to add new statuses to the validPaymentStatuses map
const (
	PaymentStatusPending        PaymentStatus = "pending"
	PaymentStatusRequiresAction PaymentStatus = "requires_action"
	PaymentStatusSucceeded      PaymentStatus = "succeeded"
	PaymentStatusFailed         PaymentStatus = "failed"
	PaymentStatusCancelled      PaymentStatus = "cancelled"
)

var validPaymentStatuses = map[PaymentStatus]struct{}{
	PaymentStatusPending:        {},
	PaymentStatusRequiresAction: {},
	PaymentStatusSucceeded:      {},
	PaymentStatusFailed:         {},
	PaymentStatusCancelled:      {},
}

// paymentTransitions: pending -> {requires_action} -> succeeded | failed,
// cancelled reachable from any non-terminal state. Terminal states have no
// outgoing edges.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:        {PaymentStatusRequiresAction, PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusRequiresAction: {PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusSucceeded:      {},
	PaymentStatusFailed:         {},
	PaymentStatusCancelled:      {},
}

func ToPaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if _, ok := validPaymentStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid payment status")
}

func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s PaymentStatus) IsTerminal() bool {
	return len(paymentTransitions[s]) == 0
}

// Confirmable reports whether a confirm outcome may still be applied.
func (s PaymentStatus) Confirmable() bool {
	return s == PaymentStatusPending || s == PaymentStatusRequiresAction
}
