// Package language provides the language selector view for the TUI.
package language

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

// View lists the supported languages and stores the chosen one.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	service  driving.LanguageService
	identity driving.IdentityService
	loc      driving.Localizer

	items    []domain.Language
	current  domain.Language
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new language view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	service driving.LanguageService,
	identity driving.IdentityService,
	loc driving.Localizer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		service:  service,
		identity: identity,
		loc:      loc,
		items:    service.Supported(),
		current:  domain.DefaultLanguage,
		width:    80,
		height:   24,
	}
}

// SetContext sets the context passed to the language service.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init initialises the language view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetCurrent marks lang as the active language and moves the cursor to it.
func (v *View) SetCurrent(lang domain.Language) {
	v.current = lang
	if i := slices.Index(v.items, lang); i >= 0 {
		v.selected = i
	}
}

// Update handles messages for the language view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case key.Matches(msg, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case key.Matches(msg, v.keymap.Select):
			if len(v.items) == 0 {
				return v, nil
			}
			return v, v.choose(v.items[v.selected])

		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewExplorer}
			}
		}
	}

	return v, nil
}

// choose returns a command that stores lang for the owner.
func (v *View) choose(lang domain.Language) tea.Cmd {
	return func() tea.Msg {
		owner, err := v.identity.Owner(v.ctx)
		if err != nil {
			return messages.LanguageChanged{Err: err}
		}
		if err := v.service.Set(v.ctx, owner, lang); err != nil {
			return messages.LanguageChanged{Err: err}
		}
		return messages.LanguageChanged{Language: lang}
	}
}

// View renders the language list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.loc.T(v.current, domain.MsgLanguage, nil)))
	b.WriteString("\n\n")

	for i, lang := range v.items {
		cursor := "  "
		if i == v.selected {
			cursor = "> "
		}
		label := lang.DisplayName()
		if lang == v.current {
			label += " ✓"
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(cursor + label))
		} else {
			b.WriteString(v.styles.Normal.Render(cursor + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hints := make([]string, 0, 4)
	for _, binding := range v.keymap.ListHelp() {
		h := binding.Help()
		hints = append(hints, "["+h.Key+"] "+h.Desc)
	}
	b.WriteString(v.styles.Help.Render(strings.Join(hints, "  ")))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}

// Current returns the active language.
func (v *View) Current() domain.Language {
	return v.current
}
