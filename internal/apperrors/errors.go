package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrUnauthorized indicates that the authenticated principal does not own the
// resource it is trying to act on.
var ErrUnauthorized = errors.New("access denied")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInsufficientFunds indicates that an account balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a storage-level conflict (deadlock, serialization
// failure). Callers may retry the whole operation.
var ErrConflict = errors.New("storage conflict")

// ErrIdentifierExhausted indicates the bounded retry budget for generating a
// unique identifier was spent without finding a free value.
var ErrIdentifierExhausted = errors.New("identifier generation exhausted")

// ErrInternal indicates an unexpected failure that should not leak details to
// the caller.
var ErrInternal = errors.New("internal error")
