package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPaymentIDCaseInsensitive(t *testing.T) {
	text := "Payment received.\nTransaction ref: pay_AbC123xyz\nThank you."

	assert.True(t, ContainsPaymentID(text, "pay_AbC123xyz"))
	assert.True(t, ContainsPaymentID(text, "PAY_ABC123XYZ"))
	assert.True(t, ContainsPaymentID(text, "pay_abc123xyz"))
	assert.False(t, ContainsPaymentID(text, "pay_other"))
}

func TestContainsPaymentIDIsLiteral(t *testing.T) {
	// Ids with regex metacharacters must match only their literal text.
	text := "ref PAY.123 done"
	assert.True(t, ContainsPaymentID(text, "PAY.123"))
	assert.False(t, ContainsPaymentID("ref PAYX123 done", "PAY.123"))

	assert.False(t, ContainsPaymentID("ref PAY123 done", "PAY.*"))
	assert.True(t, ContainsPaymentID("ref PAY.* done", "PAY.*"))
}

func TestContainsPaymentIDEmpty(t *testing.T) {
	assert.False(t, ContainsPaymentID("anything", ""))
	assert.False(t, ContainsPaymentID("anything", "   "))
	assert.False(t, ContainsPaymentID("", "PAY123"))
}
