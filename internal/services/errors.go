package services

import "errors"

// Business errors surfaced by the services. Handlers translate these into
// HTTP status codes; anything else is an internal fault.
var (
	ErrValidation         = errors.New("invalid inputs")
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyProcessed   = errors.New("verification already processed")
	ErrPaymentRefTaken    = errors.New("payment id is already used by another registration")
	ErrDocumentUnreadable = errors.New("uploaded file is not a readable PDF receipt")
	ErrPaymentIDNotFound  = errors.New("payment id not found in receipt")
	ErrSignatureMismatch  = errors.New("webhook signature mismatch")
)
