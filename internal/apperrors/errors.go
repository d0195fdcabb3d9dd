package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidInput indicates that input data failed validation checks
// (non-positive share counts, missing required fields, unknown enum values).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidConfig indicates that the authorized/issued share invariant would be violated.
var ErrInvalidConfig = errors.New("invalid share configuration")

// ErrInsufficientCapacity indicates that an allocation or issuance would exceed issued or authorized shares.
var ErrInsufficientCapacity = errors.New("insufficient share capacity")

// ErrInsufficientShares indicates that a transfer or buyback exceeds the holder's current balance.
var ErrInsufficientShares = errors.New("insufficient shares")

// ErrAlreadyProcessed indicates that an issuance is no longer pending.
var ErrAlreadyProcessed = errors.New("issuance already processed")

// ErrStoreUnavailable indicates that the ledger store could not be reached or the transaction failed.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

var kinds = []struct {
	err    error
	kind   string
	status int
}{
	{ErrInvalidInput, "INVALID_INPUT", http.StatusBadRequest},
	{ErrInvalidConfig, "INVALID_CONFIG", http.StatusUnprocessableEntity},
	{ErrInsufficientCapacity, "INSUFFICIENT_CAPACITY", http.StatusConflict},
	{ErrInsufficientShares, "INSUFFICIENT_SHARES", http.StatusConflict},
	{ErrNotFound, "NOT_FOUND", http.StatusNotFound},
	{ErrAlreadyProcessed, "ALREADY_PROCESSED", http.StatusConflict},
	{ErrStoreUnavailable, "STORE_UNAVAILABLE", http.StatusServiceUnavailable},
	{ErrDuplicate, "DUPLICATE", http.StatusConflict},
	{ErrForbidden, "FORBIDDEN", http.StatusForbidden},
}

// Kind returns the stable error kind for err, or "INTERNAL" when err wraps none of the known sentinels.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "INTERNAL"
}

// HTTPStatus maps err to the status code handlers should answer with.
func HTTPStatus(err error) int {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status
		}
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
