package payments

import (
	"strings"
	"time"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
)

// Lifecycle transitions. Each function takes a record by value and returns a
// new record; callers replace their copy with the result. Nothing here reads
// a wall clock or touches storage.
//
//	pending -> approved | rejected
//	approved -> paid
//	paid, rejected: terminal
//
// A pending record whose due date has passed reads as overdue; that is a
// view over (status, due_date, as-of), not a transition target.

// Approve moves a pending record to approved and stamps the approver.
func Approve(record models.PaymentRecord, approverID string) (models.PaymentRecord, error) {
	approver := strings.TrimSpace(approverID)
	if approver == "" {
		return record, pkgerrors.New(pkgerrors.CodeValidation, "approver id is required")
	}
	if record.Status != enums.PaymentStatusPending {
		return record, transitionError(record, enums.PaymentActionApprove)
	}
	record.Status = enums.PaymentStatusApproved
	record.ApprovedBy = &approver
	return record, nil
}

// Reject moves a pending record to the terminal rejected state.
func Reject(record models.PaymentRecord, reason string) (models.PaymentRecord, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return record, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason is required")
	}
	if record.Status != enums.PaymentStatusPending {
		return record, transitionError(record, enums.PaymentActionReject)
	}
	record.Status = enums.PaymentStatusRejected
	record.RejectionReason = &trimmed
	return record, nil
}

// Pay settles an approved record. No relation between paidOn and the due
// date is enforced, only presence.
func Pay(record models.PaymentRecord, method enums.PaymentMethod, paidOn time.Time) (models.PaymentRecord, error) {
	if !method.IsValid() {
		return record, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	if paidOn.IsZero() {
		return record, pkgerrors.New(pkgerrors.CodeValidation, "paid date is required")
	}
	if record.Status != enums.PaymentStatusApproved {
		return record, transitionError(record, enums.PaymentActionPay)
	}
	paid := paidOn
	record.Status = enums.PaymentStatusPaid
	record.PaymentMethod = &method
	record.PaidDate = &paid
	return record, nil
}

func transitionError(record models.PaymentRecord, action enums.PaymentAction) error {
	return pkgerrors.New(
		pkgerrors.CodeStateConflict,
		"cannot "+action.String()+" a "+record.Status.String()+" payment",
	).WithDetails(map[string]any{
		"status":   record.Status.String(),
		"action":   action.String(),
		"terminal": record.Status.IsTerminal(),
	})
}
