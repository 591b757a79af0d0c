package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

// PaymentRecord is a single payable obligation: a vendor invoice or a worker
// wage line moving through the approval lifecycle.
//
// Invariants the lifecycle engine maintains:
//   - Amount is strictly positive.
//   - ApprovedBy is set iff status is approved, processing, or paid.
//   - PaidDate and PaymentMethod are set iff status is paid.
//
// "Overdue" is never stored; it is derived from (status, due_date, as-of).
type PaymentRecord struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PaymentNumber   string               `gorm:"column:payment_number;not null;unique" json:"payment_number"`
	InvoiceNumber   string               `gorm:"column:invoice_number;not null" json:"invoice_number"`
	PayeeName       string               `gorm:"column:payee_name;not null" json:"payee_name"`
	PayeeKind       enums.PayeeKind      `gorm:"column:payee_kind;not null" json:"payee_kind"`
	ProjectName     string               `gorm:"column:project_name;not null" json:"project_name"`
	Description     string               `gorm:"column:description" json:"description"`
	Amount          decimal.Decimal      `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	DueDate         time.Time            `gorm:"column:due_date;type:date;not null" json:"due_date"`
	Category        string               `gorm:"column:category;not null" json:"category"`
	CostCode        *string              `gorm:"column:cost_code" json:"cost_code,omitempty"`
	Status          enums.PaymentStatus  `gorm:"column:status;not null;default:'pending'" json:"status"`
	ApprovedBy      *string              `gorm:"column:approved_by" json:"approved_by,omitempty"`
	RejectionReason *string              `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	PaidDate        *time.Time           `gorm:"column:paid_date;type:date" json:"paid_date,omitempty"`
	PaymentMethod   *enums.PaymentMethod `gorm:"column:payment_method" json:"payment_method,omitempty"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name for GORM.
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// IsOverdue reports whether the record reads as overdue at the given date.
// Only pending records can be overdue; the due date itself is not late.
func (r PaymentRecord) IsOverdue(asOf time.Time) bool {
	return r.Status == enums.PaymentStatusPending && r.DueDate.Before(asOf)
}
