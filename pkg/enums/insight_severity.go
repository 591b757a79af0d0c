package enums

import "fmt"

// InsightSeverity ranks insights for the dashboard. Ordering is
// Critical > Warning > Info > Success.
type InsightSeverity string

const (
	InsightSeverityCritical InsightSeverity = "critical"
	InsightSeverityWarning  InsightSeverity = "warning"
	InsightSeverityInfo     InsightSeverity = "info"
	InsightSeveritySuccess  InsightSeverity = "success"
)

var validInsightSeverities = []InsightSeverity{
	InsightSeverityCritical,
	InsightSeverityWarning,
	InsightSeverityInfo,
	InsightSeveritySuccess,
}

// severityRank orders severities from most to least urgent.
var severityRank = map[InsightSeverity]int{
	InsightSeverityCritical: 0,
	InsightSeverityWarning:  1,
	InsightSeverityInfo:     2,
	InsightSeveritySuccess:  3,
}

// String implements fmt.Stringer.
func (s InsightSeverity) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InsightSeverity.
func (s InsightSeverity) IsValid() bool {
	for _, candidate := range validInsightSeverities {
		if candidate == s {
			return true
		}
	}
	return false
}

// MoreUrgentThan reports whether s outranks other.
func (s InsightSeverity) MoreUrgentThan(other InsightSeverity) bool {
	return severityRank[s] < severityRank[other]
}

// ParseInsightSeverity converts raw input into an InsightSeverity.
func ParseInsightSeverity(value string) (InsightSeverity, error) {
	for _, candidate := range validInsightSeverities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid insight severity %q", value)
}
