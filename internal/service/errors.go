package service

import (
	"errors"
	"fmt"
)

// OperationalError indicates a schedule operation failed for infrastructure
// reasons rather than bad input: the scheduler worker was unreachable, the
// user record could not be loaded, or a re-create after removal failed.
// Callers distinguish it from validation outcomes, which surface as plain
// false returns.
type OperationalError struct {
	Op     string
	UserID int64
	Err    error
}

func (e *OperationalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed for user %d: %v", e.Op, e.UserID, e.Err)
	}
	return fmt.Sprintf("%s failed for user %d", e.Op, e.UserID)
}

func (e *OperationalError) Unwrap() error {
	return e.Err
}

// IsOperationalError checks if an error is an operational schedule failure
func IsOperationalError(err error) bool {
	var opErr *OperationalError
	return errors.As(err, &opErr)
}
