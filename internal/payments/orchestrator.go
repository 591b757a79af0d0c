package payments

import (
	"fmt"
	"time"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
)

// ActionContext carries the caller-supplied inputs for an action. Now is the
// injected clock reading; the orchestrator never consults a wall clock.
type ActionContext struct {
	ActorID string
	Reason  string
	Method  enums.PaymentMethod
	Now     time.Time
}

// SideEffect is an intent for an external system. The orchestrator declares
// it; dispatching belongs to the notification sink.
type SideEffect struct {
	Kind    enums.IntentKind `json:"kind"`
	Message string           `json:"message"`
}

// Receipt describes the outcome of a performed action.
type Receipt struct {
	Record      models.PaymentRecord `json:"record"`
	Summary     string               `json:"summary"`
	SideEffects []SideEffect         `json:"side_effects"`
}

// Perform runs a single action against a single record and returns a
// receipt. State-changing actions delegate to the lifecycle transitions;
// view_details is a read-only projection.
func Perform(action enums.PaymentAction, record models.PaymentRecord, actx ActionContext) (Receipt, error) {
	switch action {
	case enums.PaymentActionApprove:
		updated, err := Approve(record, actx.ActorID)
		if err != nil {
			return Receipt{}, err
		}
		return Receipt{
			Record:  updated,
			Summary: fmt.Sprintf("payment %s to %s approved by %s", updated.PaymentNumber, updated.PayeeName, actx.ActorID),
			SideEffects: []SideEffect{
				{Kind: enums.IntentKindNotifyPayee, Message: fmt.Sprintf("notify %s that payment %s was approved", updated.PayeeName, updated.PaymentNumber)},
				{Kind: enums.IntentKindAlertAccounts, Message: fmt.Sprintf("alert accounts team to schedule payment %s", updated.PaymentNumber)},
			},
		}, nil

	case enums.PaymentActionReject:
		updated, err := Reject(record, actx.Reason)
		if err != nil {
			return Receipt{}, err
		}
		return Receipt{
			Record:  updated,
			Summary: fmt.Sprintf("payment %s to %s rejected: %s", updated.PaymentNumber, updated.PayeeName, actx.Reason),
			SideEffects: []SideEffect{
				{Kind: enums.IntentKindNotifyPayee, Message: fmt.Sprintf("notify %s that payment %s was rejected", updated.PayeeName, updated.PaymentNumber)},
			},
		}, nil

	case enums.PaymentActionPay:
		updated, err := Pay(record, actx.Method, actx.Now)
		if err != nil {
			return Receipt{}, err
		}
		return Receipt{
			Record:  updated,
			Summary: fmt.Sprintf("payment %s of KES %s to %s settled via %s", updated.PaymentNumber, updated.Amount.StringFixed(2), updated.PayeeName, actx.Method),
			SideEffects: []SideEffect{
				{Kind: enums.IntentKindNotifyPayee, Message: fmt.Sprintf("notify %s that payment %s was settled", updated.PayeeName, updated.PaymentNumber)},
				{Kind: enums.IntentKindAlertAccounts, Message: fmt.Sprintf("alert accounts team to reconcile payment %s", updated.PaymentNumber)},
			},
		}, nil

	case enums.PaymentActionViewDetails:
		return Receipt{
			Record:  record,
			Summary: fmt.Sprintf("payment %s to %s (%s, KES %s)", record.PaymentNumber, record.PayeeName, record.Status, record.Amount.StringFixed(2)),
		}, nil

	default:
		return Receipt{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", action))
	}
}
