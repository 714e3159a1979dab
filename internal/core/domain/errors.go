package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedBackend indicates an unknown store backend name.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrUnsupportedLanguage indicates a language outside SupportedLanguages.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Document list errors.

	// ErrFetchFailed indicates the document store could not list documents.
	ErrFetchFailed = errors.New("fetch documents failed")

	// ErrDeleteFailed indicates the document store rejected a delete.
	// Nothing is removed locally when this is returned.
	ErrDeleteFailed = errors.New("delete documents failed")

	// ErrReloadFailed indicates the server-side reload did not complete.
	ErrReloadFailed = errors.New("reload documents failed")

	// ErrUnknownColumn indicates a sort on a column that does not exist.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrOperationInProgress indicates a delete or reload is already in flight.
	ErrOperationInProgress = errors.New("operation in progress")

	// ErrReadOnly indicates a mutating operation in demo mode.
	ErrReadOnly = errors.New("read-only listing")

	// Identity errors.

	// ErrOwnerRequired indicates no owner id is configured.
	ErrOwnerRequired = errors.New("owner id required")

	// ErrAuthInvalid indicates the identity token could not be verified.
	ErrAuthInvalid = errors.New("authentication invalid")
)
