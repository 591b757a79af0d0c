package enums

import "fmt"

// PayeeKind distinguishes vendor payouts from worker wages. It selects the
// category vocabulary and which insight rules consider the record.
type PayeeKind string

const (
	PayeeKindVendor PayeeKind = "vendor"
	PayeeKindWorker PayeeKind = "worker"
)

var validPayeeKinds = []PayeeKind{
	PayeeKindVendor,
	PayeeKindWorker,
}

// String implements fmt.Stringer.
func (p PayeeKind) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PayeeKind.
func (p PayeeKind) IsValid() bool {
	for _, candidate := range validPayeeKinds {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePayeeKind converts raw input into a PayeeKind.
func ParsePayeeKind(value string) (PayeeKind, error) {
	for _, candidate := range validPayeeKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payee kind %q", value)
}
