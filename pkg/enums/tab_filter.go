package enums

import "fmt"

// TabFilter scopes a payment listing to one of the dashboard tabs.
type TabFilter string

const (
	TabFilterAll      TabFilter = "all"
	TabFilterPending  TabFilter = "pending"
	TabFilterApproved TabFilter = "approved"
	TabFilterPaid     TabFilter = "paid"
)

var validTabFilters = []TabFilter{
	TabFilterAll,
	TabFilterPending,
	TabFilterApproved,
	TabFilterPaid,
}

// String implements fmt.Stringer.
func (t TabFilter) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TabFilter.
func (t TabFilter) IsValid() bool {
	for _, candidate := range validTabFilters {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTabFilter converts raw input into a TabFilter. Empty input selects
// the "all" tab.
func ParseTabFilter(value string) (TabFilter, error) {
	if value == "" {
		return TabFilterAll, nil
	}
	for _, candidate := range validTabFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tab filter %q", value)
}
