package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	secret := "whsec_testing"

	sig := Sign(body, secret)
	require.NotEmpty(t, sig)

	assert.True(t, VerifySignature(body, sig, secret))
}

func TestVerifySignatureDetectsBodyMutation(t *testing.T) {
	body := []byte(`{"event":"payment.captured","amount":40000}`)
	secret := "whsec_testing"
	sig := Sign(body, secret)

	// flip a single byte anywhere and the signature must fail
	for i := range body {
		mutated := make([]byte, len(body))
		copy(mutated, body)
		mutated[i] ^= 0x01
		assert.False(t, VerifySignature(mutated, sig, secret),
			"mutation at byte %d not detected", i)
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	body := []byte("payload")
	sig := Sign(body, "secret-a")
	assert.False(t, VerifySignature(body, sig, "secret-b"))
}

func TestVerifySignatureEmptySignature(t *testing.T) {
	assert.False(t, VerifySignature([]byte("payload"), "", "secret"))
}
