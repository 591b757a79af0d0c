package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ujenzihq/ujenzipay-backend/api/responses"
	"github.com/ujenzihq/ujenzipay-backend/api/validators"
	"github.com/ujenzihq/ujenzipay-backend/internal/payments"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
	"github.com/ujenzihq/ujenzipay-backend/pkg/logger"
)

type approveRequest struct {
	ApprovedBy string `json:"approved_by" validate:"required,min=1"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

type payRequest struct {
	Method string `json:"method" validate:"required,oneof=mpesa bank_transfer cheque"`
}

// PaymentsApprove moves a pending record to approved.
func PaymentsApprove(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approveRequest
		performAction(svc, logg, w, r, enums.PaymentActionApprove, &req, func() payments.ActionInput {
			return payments.ActionInput{ActorID: req.ApprovedBy}
		})
	}
}

// PaymentsReject moves a pending record to rejected.
func PaymentsReject(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rejectRequest
		performAction(svc, logg, w, r, enums.PaymentActionReject, &req, func() payments.ActionInput {
			return payments.ActionInput{Reason: req.Reason}
		})
	}
}

// PaymentsPay settles an approved record.
func PaymentsPay(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payRequest
		performAction(svc, logg, w, r, enums.PaymentActionPay, &req, func() payments.ActionInput {
			method, _ := enums.ParsePaymentMethod(req.Method)
			return payments.ActionInput{Method: method}
		})
	}
}

func performAction(
	svc payments.Service,
	logg *logger.Logger,
	w http.ResponseWriter,
	r *http.Request,
	action enums.PaymentAction,
	req any,
	input func() payments.ActionInput,
) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
		return
	}

	id, err := validators.UUIDFromPath(chi.URLParam(r, "recordID"), "record id")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	if err := validators.DecodeJSONBody(r, req); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithRecordID(logg.WithAction(ctx, action.String()), id.String())
	}

	receipt, err := svc.Act(ctx, id, action, input())
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}

	if logg != nil {
		logg.Info(ctx, "action.performed")
	}
	responses.WriteSuccess(w, receipt)
}
