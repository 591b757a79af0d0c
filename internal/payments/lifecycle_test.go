package payments

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
)

func newPendingRecord(t *testing.T) models.PaymentRecord {
	t.Helper()
	return models.PaymentRecord{
		ID:            uuid.New(),
		PaymentNumber: "PAY-100",
		InvoiceNumber: "INV-100",
		PayeeName:     "Mombasa Cement Ltd",
		PayeeKind:     enums.PayeeKindVendor,
		ProjectName:   "Riverside Towers",
		Amount:        decimal.RequireFromString("4200000.00"),
		DueDate:       time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Category:      "Materials",
		Status:        enums.PaymentStatusPending,
	}
}

func TestApproveFromPending(t *testing.T) {
	record := newPendingRecord(t)

	updated, err := Approve(record, "grace.kamau")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != enums.PaymentStatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if updated.ApprovedBy == nil || *updated.ApprovedBy != "grace.kamau" {
		t.Fatalf("expected approver to be stamped, got %v", updated.ApprovedBy)
	}
	if record.Status != enums.PaymentStatusPending {
		t.Fatalf("input record mutated: %s", record.Status)
	}
}

func TestApproveRequiresApprover(t *testing.T) {
	record := newPendingRecord(t)
	_, err := Approve(record, "  ")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApproveFromTerminalStatesFails(t *testing.T) {
	for _, status := range []enums.PaymentStatus{
		enums.PaymentStatusApproved,
		enums.PaymentStatusProcessing,
		enums.PaymentStatusPaid,
		enums.PaymentStatusRejected,
	} {
		record := newPendingRecord(t)
		record.Status = status
		_, err := Approve(record, "grace.kamau")
		if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
			t.Fatalf("status %s: expected state conflict, got %v", status, err)
		}
	}
}

func TestApproveOverdueViewOfPending(t *testing.T) {
	// Overdue is a view: the stored status is pending, so approval is legal.
	record := newPendingRecord(t)
	asOf := record.DueDate.AddDate(0, 0, 4)
	if !record.IsOverdue(asOf) {
		t.Fatal("expected record to read as overdue")
	}

	updated, err := Approve(record, "grace.kamau")
	if err != nil {
		t.Fatalf("approve overdue-view record: %v", err)
	}
	if updated.Status != enums.PaymentStatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
}

func TestRejectFromPending(t *testing.T) {
	record := newPendingRecord(t)

	updated, err := Reject(record, "duplicate of INV-099")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if updated.Status != enums.PaymentStatusRejected {
		t.Fatalf("expected rejected, got %s", updated.Status)
	}
	if updated.RejectionReason == nil || *updated.RejectionReason != "duplicate of INV-099" {
		t.Fatalf("expected reason stored, got %v", updated.RejectionReason)
	}
	if updated.ApprovedBy != nil {
		t.Fatal("rejected record must not carry an approver")
	}
}

func TestRejectRequiresReason(t *testing.T) {
	record := newPendingRecord(t)
	_, err := Reject(record, "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRejectFromNonPendingFails(t *testing.T) {
	record := newPendingRecord(t)
	record.Status = enums.PaymentStatusApproved
	_, err := Reject(record, "too late")
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestPayFromPendingFailsThenSucceedsAfterApprove(t *testing.T) {
	record := newPendingRecord(t)
	paidOn := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	_, err := Pay(record, enums.PaymentMethodMpesa, paidOn)
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("pay from pending: expected state conflict, got %v", err)
	}
	if record.Status != enums.PaymentStatusPending {
		t.Fatalf("failed pay mutated the input: %s", record.Status)
	}

	approved, err := Approve(record, "grace.kamau")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	paid, err := Pay(approved, enums.PaymentMethodMpesa, paidOn)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.Status != enums.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", paid.Status)
	}
	if paid.PaymentMethod == nil || *paid.PaymentMethod != enums.PaymentMethodMpesa {
		t.Fatalf("expected M-Pesa method, got %v", paid.PaymentMethod)
	}
	if paid.PaidDate == nil || !paid.PaidDate.Equal(paidOn) {
		t.Fatalf("expected paid date %v, got %v", paidOn, paid.PaidDate)
	}
	if paid.ApprovedBy == nil || *paid.ApprovedBy != "grace.kamau" {
		t.Fatal("approver must carry forward to paid")
	}
}

func TestPayValidatesArguments(t *testing.T) {
	record := newPendingRecord(t)
	record.Status = enums.PaymentStatusApproved
	approver := "grace.kamau"
	record.ApprovedBy = &approver

	if _, err := Pay(record, "cash", time.Now()); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("unknown method: expected validation error, got %v", err)
	}
	if _, err := Pay(record, enums.PaymentMethodCheque, time.Time{}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("zero paid date: expected validation error, got %v", err)
	}
}

func TestPayAllowsAnyPaidDateRelativeToDue(t *testing.T) {
	// Presence is the only requirement; paying long before or after the due
	// date is not an error.
	record := newPendingRecord(t)
	approved, err := Approve(record, "grace.kamau")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	early := record.DueDate.AddDate(0, -2, 0)
	if _, err := Pay(approved, enums.PaymentMethodBankTransfer, early); err != nil {
		t.Fatalf("early payment should be legal: %v", err)
	}
}

func TestPayIsTerminal(t *testing.T) {
	record := newPendingRecord(t)
	approved, _ := Approve(record, "grace.kamau")
	paid, _ := Pay(approved, enums.PaymentMethodMpesa, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC))

	if _, err := Pay(paid, enums.PaymentMethodMpesa, time.Now()); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("double pay: expected state conflict, got %v", err)
	}
	if _, err := Approve(paid, "daniel.mwangi"); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("approve paid: expected state conflict, got %v", err)
	}
}

func TestIsOverdueDerivation(t *testing.T) {
	record := newPendingRecord(t)
	due := record.DueDate

	if record.IsOverdue(due) {
		t.Fatal("due date itself is not overdue (strict before)")
	}
	if !record.IsOverdue(due.AddDate(0, 0, 1)) {
		t.Fatal("day after due date should be overdue")
	}

	record.Status = enums.PaymentStatusApproved
	if record.IsOverdue(due.AddDate(0, 0, 30)) {
		t.Fatal("only pending records read as overdue")
	}
}
