package cli

import "errors"

// Errors returned when a command runs without its service configured.
var (
	ErrMissingExplorerService = errors.New("explorer service not configured")
	ErrMissingLanguageService = errors.New("language service not configured")
	ErrMissingFileService     = errors.New("file service not configured")
	ErrMissingSettingsService = errors.New("settings service not configured")
	ErrMissingIdentityService = errors.New("identity service not configured")
)
