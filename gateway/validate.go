package gateway

import "strings"

// ValidAmount reports whether amount is acceptable for a payment or refund.
// Only positivity is enforced; there is no upper bound and no per-currency
// minor-unit precision check, the provider is the backstop for those.
func ValidAmount(amount int64) bool {
	return amount > 0
}

// SupportedCurrency reports whether code, compared case-insensitively, is in
// the provider's supported set.
func SupportedCurrency(code string, supported []string) bool {
	code = strings.ToUpper(code)
	for _, c := range supported {
		if code == c {
			return true
		}
	}
	return false
}
