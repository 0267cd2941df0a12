package zakat

import "errors"

// Sentinel errors returned by the engine. Callers are expected to test them
// with errors.Is; every function wraps them with call-site context.
var (
	// ErrInvalidAmount reports a non-positive amount where a positive one
	// is required (track, subtract, transfer, payment demand).
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidRate reports a non-positive exchange rate or valuation price.
	ErrInvalidRate = errors.New("rate must be positive")

	// ErrInsufficientFunds reports that the payment candidates cannot cover
	// the demanded amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLocked reports that the vault is held by another lock holder.
	ErrLocked = errors.New("vault is locked by another holder")

	// ErrStaleReport reports that a report was already applied, or that the
	// boxes it assessed changed since the assessment.
	ErrStaleReport = errors.New("stale report")

	// ErrInvalidParts reports a payment breakdown that does not balance
	// against the report's due amount, or is structurally broken.
	ErrInvalidParts = errors.New("invalid payment parts")

	// ErrSameAccount reports a transfer whose two endpoints resolve to the
	// same account.
	ErrSameAccount = errors.New("transfer endpoints must differ")

	// ErrUnknownAccount reports a reference to an account in a context where
	// implicit creation is not allowed.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrDuplicateTime reports two box or log entries landing on the very
	// same nanosecond key.
	ErrDuplicateTime = errors.New("duplicate timestamp key")
)
