package enums

import "fmt"

// PaymentAction names the operations the orchestrator accepts from callers.
type PaymentAction string

const (
	PaymentActionApprove     PaymentAction = "approve"
	PaymentActionReject      PaymentAction = "reject"
	PaymentActionPay         PaymentAction = "pay"
	PaymentActionViewDetails PaymentAction = "view_details"
)

var validPaymentActions = []PaymentAction{
	PaymentActionApprove,
	PaymentActionReject,
	PaymentActionPay,
	PaymentActionViewDetails,
}

// String implements fmt.Stringer.
func (a PaymentAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known PaymentAction.
func (a PaymentAction) IsValid() bool {
	for _, candidate := range validPaymentActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// Mutates reports whether the action changes record state.
func (a PaymentAction) Mutates() bool {
	return a == PaymentActionApprove || a == PaymentActionReject || a == PaymentActionPay
}

// ParsePaymentAction converts raw input into a PaymentAction.
func ParsePaymentAction(value string) (PaymentAction, error) {
	for _, candidate := range validPaymentActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment action %q", value)
}
