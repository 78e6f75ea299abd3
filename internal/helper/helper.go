package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// IsDuplicatePaymentRef reports whether err is the unique-index violation on
// users.payment_reference. The pre-save duplicate check is not atomic with
// the write, so the save path funnels this into the same conflict outcome.
func IsDuplicatePaymentRef(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation &&
			strings.Contains(pgErr.ConstraintName, "payment_reference")
	}
	return false
}

// IsDuplicateEmail reports whether err is the unique-index violation on
// users.email.
func IsDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation &&
			strings.Contains(pgErr.ConstraintName, "email")
	}
	return false
}
