package payments

import (
	"strings"
	"time"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

// RecordGroup is one partition of a grouped listing. Groups preserve the
// first-seen order of their labels and every record lands in exactly one.
type RecordGroup struct {
	Label   string                 `json:"label"`
	Records []models.PaymentRecord `json:"records"`
}

// Search returns the records whose payee, project, payment number, or
// invoice number contains the term, case-insensitively. An empty term
// matches everything.
func Search(records []models.PaymentRecord, term string) []models.PaymentRecord {
	needle := strings.ToLower(term)
	matched := make([]models.PaymentRecord, 0, len(records))
	for _, record := range records {
		if needle == "" || matchesTerm(record, needle) {
			matched = append(matched, record)
		}
	}
	return matched
}

func matchesTerm(record models.PaymentRecord, needle string) bool {
	for _, field := range []string{
		record.PayeeName,
		record.ProjectName,
		record.PaymentNumber,
		record.InvoiceNumber,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterByTab scopes records to a dashboard tab. The pending tab includes
// records reading as overdue at asOf, since those are still pending.
func FilterByTab(records []models.PaymentRecord, tab enums.TabFilter, asOf time.Time) []models.PaymentRecord {
	if tab == enums.TabFilterAll {
		return append([]models.PaymentRecord(nil), records...)
	}
	matched := make([]models.PaymentRecord, 0, len(records))
	for _, record := range records {
		var keep bool
		switch tab {
		case enums.TabFilterPending:
			keep = record.Status == enums.PaymentStatusPending || record.IsOverdue(asOf)
		case enums.TabFilterApproved:
			keep = record.Status == enums.PaymentStatusApproved
		case enums.TabFilterPaid:
			keep = record.Status == enums.PaymentStatusPaid
		}
		if keep {
			matched = append(matched, record)
		}
	}
	return matched
}

// GroupBy partitions records by the given key. Group order follows the
// first occurrence of each label; under GroupKeyNone a single "all" group
// holds everything in original order.
func GroupBy(records []models.PaymentRecord, key enums.GroupKey) []RecordGroup {
	if key == enums.GroupKeyNone {
		return []RecordGroup{{Label: "all", Records: append([]models.PaymentRecord(nil), records...)}}
	}

	indexByLabel := make(map[string]int)
	groups := make([]RecordGroup, 0)
	for _, record := range records {
		label := groupLabel(record, key)
		idx, seen := indexByLabel[label]
		if !seen {
			idx = len(groups)
			indexByLabel[label] = idx
			groups = append(groups, RecordGroup{Label: label})
		}
		groups[idx].Records = append(groups[idx].Records, record)
	}
	return groups
}

func groupLabel(record models.PaymentRecord, key enums.GroupKey) string {
	switch key {
	case enums.GroupKeyProject:
		return record.ProjectName
	case enums.GroupKeyCategory:
		return record.Category
	case enums.GroupKeyPayeeKind:
		return record.PayeeKind.String()
	default:
		return "all"
	}
}
