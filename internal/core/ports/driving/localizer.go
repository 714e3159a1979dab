package driving

import "github.com/custodia-labs/docdeck-cli/internal/core/domain"

// Localizer renders user-facing text in a supported language.
type Localizer interface {
	// T renders a message by id.
	T(lang domain.Language, id string, data map[string]any) string

	// Plural renders a counted message by id.
	Plural(lang domain.Language, id string, count int) string

	// Column renders a column heading.
	Column(lang domain.Language, col domain.Column) string

	// SelectionSummary renders the selection line.
	SelectionSummary(lang domain.Language, s domain.SelectionSummary) string

	// Announcement renders a status announcement.
	Announcement(lang domain.Language, a domain.Announcement) string
}
