package equity

import (
	"fmt"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
)

// ValidateConfiguration checks that authorized > 0, issued > 0 and authorized >= issued.
func ValidateConfiguration(authorized, issued int64) error {
	if authorized <= 0 {
		return fmt.Errorf("%w: authorized shares must be positive, got %d", apperrors.ErrInvalidConfig, authorized)
	}
	if issued <= 0 {
		return fmt.Errorf("%w: issued shares must be positive, got %d", apperrors.ErrInvalidConfig, issued)
	}
	if issued > authorized {
		return fmt.Errorf("%w: issued shares (%d) exceed authorized shares (%d)", apperrors.ErrInvalidConfig, issued, authorized)
	}
	return nil
}

// ValidateAllocationChange fails when currentAllocated + delta would exceed issued.
// It must be called with a currentAllocated read under the configuration row lock.
func ValidateAllocationChange(currentAllocated, delta, issued int64) error {
	if currentAllocated+delta > issued {
		return fmt.Errorf("%w: allocating %d shares would bring the allocated total to %d, above %d issued",
			apperrors.ErrInsufficientCapacity, delta, currentAllocated+delta, issued)
	}
	return nil
}

// ValidateIssuanceCapacity fails when issuing n more shares would exceed the authorized count.
func ValidateIssuanceCapacity(issued, n, authorized int64) error {
	if issued+n > authorized {
		return fmt.Errorf("%w: issuing %d shares would bring issued shares to %d, above %d authorized",
			apperrors.ErrInsufficientCapacity, n, issued+n, authorized)
	}
	return nil
}

// ValidatePositiveShares rejects zero or negative share counts.
func ValidatePositiveShares(field string, shares int64) error {
	if shares <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", apperrors.ErrInvalidInput, field, shares)
	}
	return nil
}
