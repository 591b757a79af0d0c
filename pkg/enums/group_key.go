package enums

import "fmt"

// GroupKey selects the dimension a payment listing is partitioned by.
type GroupKey string

const (
	GroupKeyNone      GroupKey = "none"
	GroupKeyProject   GroupKey = "project"
	GroupKeyCategory  GroupKey = "category"
	GroupKeyPayeeKind GroupKey = "payee_kind"
)

var validGroupKeys = []GroupKey{
	GroupKeyNone,
	GroupKeyProject,
	GroupKeyCategory,
	GroupKeyPayeeKind,
}

// String implements fmt.Stringer.
func (g GroupKey) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GroupKey.
func (g GroupKey) IsValid() bool {
	for _, candidate := range validGroupKeys {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGroupKey converts raw input into a GroupKey. Empty input selects
// no grouping.
func ParseGroupKey(value string) (GroupKey, error) {
	if value == "" {
		return GroupKeyNone, nil
	}
	for _, candidate := range validGroupKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group key %q", value)
}
