package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

// Thresholds for the rule catalogue. Tests target these directly; changing
// one changes the contract.
const (
	// UpcomingDueWindow is how far ahead the upcoming-due rule looks.
	UpcomingDueWindow = 3 * 24 * time.Hour
	// DuplicateDueDateWindow is the maximum due-date gap for two otherwise
	// identical records to count as potential duplicates (strict <).
	DuplicateDueDateWindow = 7 * 24 * time.Hour
)

var (
	// VendorConcentrationShare flags a vendor holding more than this share
	// of total vendor spend (strict >).
	VendorConcentrationShare = decimal.NewFromFloat(0.25)
	// ProjectConcentrationShare flags a project holding more than this
	// share of open (pending + approved) spend (strict >).
	ProjectConcentrationShare = decimal.NewFromFloat(0.35)
	// WorkerCostMultiplier flags worker payments exceeding this multiple of
	// the mean worker payment (strict >).
	WorkerCostMultiplier = decimal.NewFromFloat(1.5)
)

// catalogue is the fixed evaluation order. Severity does not reorder it.
var catalogue = []Rule{
	{Name: "overdue_exposure", Eval: overdueExposure},
	{Name: "upcoming_due", Eval: upcomingDue},
	{Name: "vendor_concentration", Eval: vendorConcentration},
	{Name: "worker_cost_outliers", Eval: workerCostOutliers},
	{Name: "potential_duplicate", Eval: potentialDuplicate},
	{Name: "project_concentration", Eval: projectConcentration},
}

func overdueExposure(records []models.PaymentRecord, asOf time.Time) (Insight, bool) {
	var count int
	total := decimal.Zero
	for _, record := range records {
		if record.IsOverdue(asOf) {
			count++
			total = total.Add(record.Amount)
		}
	}
	if count == 0 {
		return Insight{}, false
	}
	return Insight{
		Severity: enums.InsightSeverityCritical,
		Title:    "Overdue payments",
		Message:  fmt.Sprintf("%d payment(s) totaling KES %s are past due.", count, total.StringFixed(2)),
		SuggestedFilter: Filter{
			Tab:     enums.TabFilterPending,
			GroupBy: enums.GroupKeyNone,
		},
	}, true
}

func upcomingDue(records []models.PaymentRecord, asOf time.Time) (Insight, bool) {
	var count int
	total := decimal.Zero
	horizon := asOf.Add(UpcomingDueWindow)
	for _, record := range records {
		open := record.Status == enums.PaymentStatusPending || record.Status == enums.PaymentStatusApproved
		if open && !record.DueDate.Before(asOf) && !record.DueDate.After(horizon) {
			count++
			total = total.Add(record.Amount)
		}
	}
	if count == 0 {
		return Insight{}, false
	}
	return Insight{
		Severity: enums.InsightSeverityWarning,
		Title:    "Payments due soon",
		Message:  fmt.Sprintf("%d payment(s) totaling KES %s fall due within 3 days.", count, total.StringFixed(2)),
		SuggestedFilter: Filter{
			Tab:     enums.TabFilterPending,
			GroupBy: enums.GroupKeyNone,
		},
	}, true
}

func vendorConcentration(records []models.PaymentRecord, _ time.Time) (Insight, bool) {
	label, share, ok := topShare(records,
		func(r models.PaymentRecord) bool { return r.PayeeKind == enums.PayeeKindVendor },
		func(r models.PaymentRecord) string { return r.PayeeName },
		VendorConcentrationShare,
	)
	if !ok {
		return Insight{}, false
	}
	return Insight{
		Severity: enums.InsightSeverityInfo,
		Title:    "Vendor concentration",
		Message:  fmt.Sprintf("%s holds %s%% of total vendor spend.", label, share.Mul(decimal.NewFromInt(100)).StringFixed(1)),
		SuggestedFilter: Filter{
			Tab:     enums.TabFilterAll,
			GroupBy: enums.GroupKeyPayeeKind,
			Search:  label,
		},
	}, true
}

func workerCostOutliers(records []models.PaymentRecord, _ time.Time) (Insight, bool) {
	var workers []models.PaymentRecord
	total := decimal.Zero
	for _, record := range records {
		if record.PayeeKind == enums.PayeeKindWorker {
			workers = append(workers, record)
			total = total.Add(record.Amount)
		}
	}
	if len(workers) == 0 {
		return Insight{}, false
	}

	mean := total.Div(decimal.NewFromInt(int64(len(workers))))
	ceiling := mean.Mul(WorkerCostMultiplier)

	var flagged []string
	seen := make(map[string]bool)
	for _, record := range workers {
		if record.Amount.GreaterThan(ceiling) && !seen[record.PayeeName] {
			seen[record.PayeeName] = true
			flagged = append(flagged, record.PayeeName)
		}
	}
	if len(flagged) == 0 {
		return Insight{}, false
	}
	return Insight{
		Severity: enums.InsightSeverityInfo,
		Title:    "Anomalous labor cost",
		Message:  fmt.Sprintf("Worker payments above 1.5x the mean (KES %s): %s.", mean.StringFixed(2), strings.Join(flagged, ", ")),
		SuggestedFilter: Filter{
			Tab:     enums.TabFilterAll,
			GroupBy: enums.GroupKeyPayeeKind,
			Search:  flagged[0],
		},
	}, true
}

func potentialDuplicate(records []models.PaymentRecord, _ time.Time) (Insight, bool) {
	// Quadratic index-order scan; the first matching pair wins. Data sizes
	// here are dashboard-scale.
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			a, b := records[i], records[j]
			if a.PayeeName != b.PayeeName || a.ProjectName != b.ProjectName {
				continue
			}
			if !a.Amount.Equal(b.Amount) {
				continue
			}
			gap := a.DueDate.Sub(b.DueDate)
			if gap < 0 {
				gap = -gap
			}
			if gap < DuplicateDueDateWindow {
				return Insight{
					Severity: enums.InsightSeverityWarning,
					Title:    "Potential duplicate",
					Message: fmt.Sprintf("%s and %s both pay %s KES %s on %s with due dates %d day(s) apart.",
						a.PaymentNumber, b.PaymentNumber, a.PayeeName, a.Amount.StringFixed(2), a.ProjectName,
						int(gap.Hours()/24)),
					SuggestedFilter: Filter{
						Tab:     enums.TabFilterAll,
						GroupBy: enums.GroupKeyProject,
						Search:  a.PayeeName,
					},
				}, true
			}
		}
	}
	return Insight{}, false
}

func projectConcentration(records []models.PaymentRecord, _ time.Time) (Insight, bool) {
	label, share, ok := topShare(records,
		func(r models.PaymentRecord) bool {
			return r.Status == enums.PaymentStatusPending || r.Status == enums.PaymentStatusApproved
		},
		func(r models.PaymentRecord) string { return r.ProjectName },
		ProjectConcentrationShare,
	)
	if !ok {
		return Insight{}, false
	}
	return Insight{
		Severity: enums.InsightSeverityInfo,
		Title:    "Project concentration",
		Message:  fmt.Sprintf("%s holds %s%% of open payment exposure.", label, share.Mul(decimal.NewFromInt(100)).StringFixed(1)),
		SuggestedFilter: Filter{
			Tab:     enums.TabFilterAll,
			GroupBy: enums.GroupKeyProject,
			Search:  label,
		},
	}, true
}

// topShare sums amounts by label over the records passing include, then
// returns the first-seen label whose sum exceeds threshold x total, picking
// the largest sum among candidates.
func topShare(
	records []models.PaymentRecord,
	include func(models.PaymentRecord) bool,
	labelOf func(models.PaymentRecord) string,
	threshold decimal.Decimal,
) (string, decimal.Decimal, bool) {
	sums := make(map[string]decimal.Decimal)
	var order []string
	total := decimal.Zero
	for _, record := range records {
		if !include(record) {
			continue
		}
		label := labelOf(record)
		if _, seen := sums[label]; !seen {
			order = append(order, label)
		}
		sums[label] = sums[label].Add(record.Amount)
		total = total.Add(record.Amount)
	}
	if total.IsZero() {
		return "", decimal.Zero, false
	}

	ceiling := total.Mul(threshold)
	var top string
	topSum := decimal.Zero
	for _, label := range order {
		sum := sums[label]
		if sum.GreaterThan(ceiling) && sum.GreaterThan(topSum) {
			top = label
			topSum = sum
		}
	}
	if top == "" {
		return "", decimal.Zero, false
	}
	return top, topSum.Div(total), true
}
