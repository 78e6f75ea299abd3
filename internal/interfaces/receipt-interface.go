package interfaces

// ReceiptParser pulls the embedded text out of an uploaded receipt.
type ReceiptParser interface {
	ExtractText(b []byte) (string, error)
}

// Mailer dispatches transactional mail. Implementations report success as a
// bool and never fail the caller: account mutations that already committed
// must not be rolled back by a flaky mail provider.
type Mailer interface {
	SendCredentials(to, name, tempPassword string) bool
	SendRejection(to, name, reason string) bool
	SendPasswordReset(to, name, resetLink string) bool
}
