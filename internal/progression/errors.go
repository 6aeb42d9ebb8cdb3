package progression

import "errors"

var (
	// ErrInvalidInput marks a contract violation in the pure XP rules.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAmount rejects grant requests with a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrUserNotFound means the grant target does not exist.
	ErrUserNotFound = errors.New("user not found")
)
