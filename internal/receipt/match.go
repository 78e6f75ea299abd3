package receipt

import "strings"

// ContainsPaymentID reports whether the claimed payment id appears in the
// extracted receipt text. The comparison is case-insensitive and strictly
// literal: the id is user-controlled input and must never be treated as a
// pattern, which is why this is a folded substring test and not a regexp.
func ContainsPaymentID(text, paymentID string) bool {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(paymentID))
}
