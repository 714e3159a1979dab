// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewExplorer is the document list.
	ViewExplorer ViewType = iota
	// ViewLanguage is the language selector.
	ViewLanguage
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewExplorer:
		return "explorer"
	case ViewLanguage:
		return "language"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DocumentsLoaded reports the end of a fetch. The documents themselves
// stay in the listing controller.
type DocumentsLoaded struct {
	OwnerID string
	Count   int
	Err     error
}

// DocumentsDeleted reports the end of a batch delete.
type DocumentsDeleted struct {
	Count int
	Err   error
}

// ReloadFinished reports the end of a reload request.
type ReloadFinished struct {
	Err error
}

// LanguageLoaded carries the owner's current language.
type LanguageLoaded struct {
	Language domain.Language
	Err      error
}

// LanguageChanged reports the end of a language change.
type LanguageChanged struct {
	Language domain.Language
	Err      error
}

// ConfigChanged signals that the config file changed on disk.
type ConfigChanged struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
