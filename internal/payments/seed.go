package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
)

// SeedRow is the raw shape a record source delivers. Status arrives as a
// free string because legacy exports sometimes ship "overdue"; ingest
// normalizes that to pending, since overdue is derived, never stored.
type SeedRow struct {
	PaymentNumber string
	InvoiceNumber string
	PayeeName     string
	PayeeKind     string
	ProjectName   string
	Description   string
	Amount        string
	DueDate       string
	Category      string
	CostCode      string
	Status        string
	ApprovedBy    string
	PaidDate      string
	PaymentMethod string
}

// BuildSeedRecords validates rows against the record invariants and
// converts them to models. Unlike the engine, which assumes compliant
// input, ingest is the boundary that rejects violations.
func BuildSeedRecords(rows []SeedRow) ([]models.PaymentRecord, error) {
	records := make([]models.PaymentRecord, 0, len(rows))
	for i, row := range rows {
		record, err := buildSeedRecord(row)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("seed row %d (%s)", i, row.PaymentNumber))
		}
		records = append(records, record)
	}
	return records, nil
}

func buildSeedRecord(row SeedRow) (models.PaymentRecord, error) {
	var record models.PaymentRecord

	if row.PaymentNumber == "" || row.InvoiceNumber == "" {
		return record, fmt.Errorf("payment and invoice numbers are required")
	}
	if row.PayeeName == "" {
		return record, fmt.Errorf("payee name is required")
	}
	if row.ProjectName == "" {
		return record, fmt.Errorf("project name is required")
	}

	kind, err := enums.ParsePayeeKind(row.PayeeKind)
	if err != nil {
		return record, err
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return record, fmt.Errorf("parsing amount %q: %w", row.Amount, err)
	}
	if !amount.IsPositive() {
		return record, fmt.Errorf("amount must be positive, got %s", amount)
	}

	dueDate, err := time.Parse("2006-01-02", row.DueDate)
	if err != nil {
		return record, fmt.Errorf("parsing due date %q: %w", row.DueDate, err)
	}

	status, err := normalizeSeedStatus(row.Status)
	if err != nil {
		return record, err
	}

	record = models.PaymentRecord{
		PaymentNumber: row.PaymentNumber,
		InvoiceNumber: row.InvoiceNumber,
		PayeeName:     row.PayeeName,
		PayeeKind:     kind,
		ProjectName:   row.ProjectName,
		Description:   row.Description,
		Amount:        amount,
		DueDate:       dueDate,
		Category:      row.Category,
		Status:        status,
	}
	if row.CostCode != "" {
		code := row.CostCode
		record.CostCode = &code
	}

	switch status {
	case enums.PaymentStatusApproved, enums.PaymentStatusProcessing, enums.PaymentStatusPaid:
		if row.ApprovedBy == "" {
			return record, fmt.Errorf("status %s requires approved_by", status)
		}
		approver := row.ApprovedBy
		record.ApprovedBy = &approver
	default:
		if row.ApprovedBy != "" {
			return record, fmt.Errorf("status %s must not carry approved_by", status)
		}
	}

	if status == enums.PaymentStatusPaid {
		if row.PaidDate == "" || row.PaymentMethod == "" {
			return record, fmt.Errorf("paid status requires paid_date and payment_method")
		}
		paidDate, err := time.Parse("2006-01-02", row.PaidDate)
		if err != nil {
			return record, fmt.Errorf("parsing paid date %q: %w", row.PaidDate, err)
		}
		method, err := enums.ParsePaymentMethod(row.PaymentMethod)
		if err != nil {
			return record, err
		}
		record.PaidDate = &paidDate
		record.PaymentMethod = &method
	} else if row.PaidDate != "" || row.PaymentMethod != "" {
		return record, fmt.Errorf("status %s must not carry paid_date or payment_method", status)
	}

	return record, nil
}

// normalizeSeedStatus accepts the persisted statuses plus the legacy
// "overdue" shorthand, which reads as pending with a past due date.
func normalizeSeedStatus(raw string) (enums.PaymentStatus, error) {
	if raw == "" || raw == "overdue" {
		return enums.PaymentStatusPending, nil
	}
	return enums.ParsePaymentStatus(raw)
}

// SeedIfEmpty loads the default dataset when the table has no rows yet.
func SeedIfEmpty(ctx context.Context, repo *Repository) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting payment records: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	records, err := BuildSeedRecords(DefaultSeedRows())
	if err != nil {
		return 0, err
	}
	if err := repo.InsertAll(ctx, records); err != nil {
		return 0, fmt.Errorf("inserting seed records: %w", err)
	}
	return len(records), nil
}

// DefaultSeedRows is the mock back-office dataset used for local
// development and demos.
func DefaultSeedRows() []SeedRow {
	return []SeedRow{
		{
			PaymentNumber: "PAY-2025-001",
			InvoiceNumber: "INV-4012",
			PayeeName:     "Mombasa Cement Ltd",
			PayeeKind:     "vendor",
			ProjectName:   "Riverside Towers",
			Description:   "Cement delivery, phase 2 slab",
			Amount:        "4200000.00",
			DueDate:       "2025-02-10",
			Category:      "Materials",
			CostCode:      "MAT-210",
			Status:        "overdue",
		},
		{
			PaymentNumber: "PAY-2025-002",
			InvoiceNumber: "INV-4013",
			PayeeName:     "Kilimani Steel Works",
			PayeeKind:     "vendor",
			ProjectName:   "Riverside Towers",
			Description:   "Rebar bundles, grade 60",
			Amount:        "2750000.00",
			DueDate:       "2025-02-20",
			Category:      "Materials",
			CostCode:      "MAT-215",
			Status:        "pending",
		},
		{
			PaymentNumber: "PAY-2025-003",
			InvoiceNumber: "INV-4014",
			PayeeName:     "Juma Otieno",
			PayeeKind:     "worker",
			ProjectName:   "Riverside Towers",
			Description:   "Masonry crew lead, February",
			Amount:        "185000.00",
			DueDate:       "2025-02-28",
			Category:      "Direct Labor",
			CostCode:      "LAB-101",
			Status:        "pending",
		},
		{
			PaymentNumber: "PAY-2025-004",
			InvoiceNumber: "INV-4015",
			PayeeName:     "Wanjiku Njeri",
			PayeeKind:     "worker",
			ProjectName:   "Thika Road Depot",
			Description:   "Electrical rough-in, February",
			Amount:        "162000.00",
			DueDate:       "2025-02-28",
			Category:      "Direct Labor",
			CostCode:      "LAB-104",
			Status:        "approved",
			ApprovedBy:    "grace.kamau",
		},
		{
			PaymentNumber: "PAY-2025-005",
			InvoiceNumber: "INV-4016",
			PayeeName:     "Nakuru Quarry Co",
			PayeeKind:     "vendor",
			ProjectName:   "Thika Road Depot",
			Description:   "Ballast, 40 tonnes",
			Amount:        "980000.00",
			DueDate:       "2025-03-05",
			Category:      "Materials",
			CostCode:      "MAT-230",
			Status:        "approved",
			ApprovedBy:    "grace.kamau",
		},
		{
			PaymentNumber: "PAY-2025-006",
			InvoiceNumber: "INV-4017",
			PayeeName:     "Mombasa Cement Ltd",
			PayeeKind:     "vendor",
			ProjectName:   "Karen Mall Annex",
			Description:   "Cement delivery, foundation pour",
			Amount:        "3100000.00",
			DueDate:       "2025-03-12",
			Category:      "Materials",
			CostCode:      "MAT-210",
			Status:        "pending",
		},
		{
			PaymentNumber: "PAY-2025-007",
			InvoiceNumber: "INV-4018",
			PayeeName:     "Eldoret Scaffolding",
			PayeeKind:     "vendor",
			ProjectName:   "Karen Mall Annex",
			Description:   "Scaffold hire, six weeks",
			Amount:        "640000.00",
			DueDate:       "2025-01-28",
			Category:      "Equipment",
			CostCode:      "EQP-310",
			Status:        "paid",
			ApprovedBy:    "grace.kamau",
			PaidDate:      "2025-01-27",
			PaymentMethod: "bank_transfer",
		},
		{
			PaymentNumber: "PAY-2025-008",
			InvoiceNumber: "INV-4019",
			PayeeName:     "Hassan Abdi",
			PayeeKind:     "worker",
			ProjectName:   "Karen Mall Annex",
			Description:   "Crane operator, January overtime",
			Amount:        "540000.00",
			DueDate:       "2025-02-07",
			Category:      "Direct Labor",
			CostCode:      "LAB-110",
			Status:        "paid",
			ApprovedBy:    "daniel.mwangi",
			PaidDate:      "2025-02-05",
			PaymentMethod: "mpesa",
		},
		{
			PaymentNumber: "PAY-2025-009",
			InvoiceNumber: "INV-4020",
			PayeeName:     "Kisumu Glass & Glazing",
			PayeeKind:     "vendor",
			ProjectName:   "Riverside Towers",
			Description:   "Curtain wall panels, tower A",
			Amount:        "1850000.00",
			DueDate:       "2025-03-18",
			Category:      "Materials",
			CostCode:      "MAT-260",
			Status:        "pending",
		},
		{
			PaymentNumber: "PAY-2025-010",
			InvoiceNumber: "INV-4021",
			PayeeName:     "Juma Otieno",
			PayeeKind:     "worker",
			ProjectName:   "Thika Road Depot",
			Description:   "Masonry consult, retaining wall",
			Amount:        "95000.00",
			DueDate:       "2025-02-14",
			Category:      "Direct Labor",
			CostCode:      "LAB-101",
			Status:        "rejected",
		},
	}
}
