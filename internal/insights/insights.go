// Package insights runs a fixed catalogue of heuristic rules over a payment
// snapshot and surfaces prioritized findings for the dashboard. Rules are
// pure: they read the snapshot and an as-of date, never mutate, and are safe
// to evaluate on every render.
package insights

import (
	"time"

	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

// Filter is the query state that reproduces the view justifying an insight:
// feed it to the query engine (search, then tab, then group) to see exactly
// the records the rule flagged.
type Filter struct {
	Tab     enums.TabFilter `json:"tab"`
	GroupBy enums.GroupKey  `json:"group_by"`
	Search  string          `json:"search"`
}

// Insight is one finding produced by a rule.
type Insight struct {
	Rule            string                `json:"rule"`
	Severity        enums.InsightSeverity `json:"severity"`
	Title           string                `json:"title"`
	Message         string                `json:"message"`
	SuggestedFilter Filter                `json:"suggested_filter"`
}

// Rule is a single analysis pass. It reports whether it fired.
type Rule struct {
	Name string
	Eval func(records []models.PaymentRecord, asOf time.Time) (Insight, bool)
}

// Evaluate runs the catalogue in its fixed priority order and returns every
// insight that fired. When nothing fires, a single all-clear insight is
// returned instead, so callers always have something to show.
func Evaluate(records []models.PaymentRecord, asOf time.Time) []Insight {
	fired := make([]Insight, 0, len(catalogue))
	for _, rule := range catalogue {
		if insight, ok := rule.Eval(records, asOf); ok {
			insight.Rule = rule.Name
			fired = append(fired, insight)
		}
	}
	if len(fired) == 0 {
		return []Insight{allClear()}
	}
	return fired
}

func allClear() Insight {
	return Insight{
		Rule:     "all_clear",
		Severity: enums.InsightSeveritySuccess,
		Title:    "All clear",
		Message:  "No payment risks detected across the current records.",
		SuggestedFilter: Filter{
			Tab:     enums.TabFilterAll,
			GroupBy: enums.GroupKeyNone,
		},
	}
}
