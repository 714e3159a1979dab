package tui

import "errors"

// ErrMissingExplorerService is returned when the explorer service is not provided.
var ErrMissingExplorerService = errors.New("tui: explorer service is required")

// ErrMissingIdentityService is returned when the identity service is not provided.
var ErrMissingIdentityService = errors.New("tui: identity service is required")

// ErrMissingLocalizer is returned when the localizer is not provided.
var ErrMissingLocalizer = errors.New("tui: localizer is required")
