package enums

import "fmt"

// IntentKind names a side effect the orchestrator declares but does not
// perform. External sinks (notification, accounts) consume these.
type IntentKind string

const (
	IntentKindNotifyPayee   IntentKind = "notify_payee"
	IntentKindAlertAccounts IntentKind = "alert_accounts"
)

var validIntentKinds = []IntentKind{
	IntentKindNotifyPayee,
	IntentKindAlertAccounts,
}

// String implements fmt.Stringer.
func (k IntentKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known IntentKind.
func (k IntentKind) IsValid() bool {
	for _, candidate := range validIntentKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseIntentKind converts raw input into an IntentKind.
func ParseIntentKind(value string) (IntentKind, error) {
	for _, candidate := range validIntentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid intent kind %q", value)
}
