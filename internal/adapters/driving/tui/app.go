package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/views/explorer"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/views/language"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// watchCtx and stopWatch scope the config watcher, if one is running.
	watchCtx  context.Context
	stopWatch context.CancelFunc

	// changes receives a value per config change, coalesced.
	changes chan struct{}

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// explorerView is the document list.
	explorerView *explorer.View

	// languageView is the language selector. Nil without a language service.
	languageView *language.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// showHelp expands the full key help below the active view.
	showHelp bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         h,
		explorerView: explorer.NewView(s, km, ports.Explorer, ports.Identity, ports.Localizer),
		currentView:  messages.ViewExplorer,
	}
	if ports.Language != nil {
		a.languageView = language.NewView(s, km, ports.Language, ports.Identity, ports.Localizer)
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.explorerView.SetContext(ctx)
	if a.languageView != nil {
		a.languageView.SetContext(ctx)
	}
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("docdeck"),
		a.explorerView.Init(),
		a.loadLanguage(),
		a.watch(),
	)
}

// loadLanguage returns a command that reads the owner's language.
func (a *App) loadLanguage() tea.Cmd {
	if a.ports.Language == nil {
		return nil
	}
	return func() tea.Msg {
		// Get falls back to the configured language without an owner.
		owner, _ := a.ports.Identity.Owner(a.ctx)
		lang, err := a.ports.Language.Get(a.ctx, owner)
		return messages.LanguageLoaded{Language: lang, Err: err}
	}
}

// watch starts the config watcher once and waits for the first change.
func (a *App) watch() tea.Cmd {
	if a.ports.Watch == nil || a.changes != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(a.ctx)
	a.watchCtx, a.stopWatch = ctx, cancel
	a.changes = make(chan struct{}, 1)

	go func() {
		err := a.ports.Watch(ctx, func() {
			select {
			case a.changes <- struct{}{}:
			default:
			}
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()

	return a.waitForChange(ctx)
}

func (a *App) waitForChange(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.changes:
			return messages.ConfigChanged{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.LanguageLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.applyLanguage(msg.Language)
		return a, nil

	case messages.LanguageChanged:
		a.currentView = messages.ViewExplorer
		if msg.Err != nil {
			a.err = msg.Err
			a.explorerView, cmd = a.explorerView.Update(messages.ErrorOccurred{Err: msg.Err})
			return a, cmd
		}
		a.applyLanguage(msg.Language)
		a.explorerView.Status().Notify(status.StateNotice, a.ports.Localizer.T(
			msg.Language, domain.MsgLanguageChanged,
			map[string]any{"Language": msg.Language.DisplayName()},
		))
		return a, nil

	case messages.ConfigChanged:
		logger.Debug("config changed, re-reading language")
		var wait tea.Cmd
		if a.watchCtx != nil {
			wait = a.waitForChange(a.watchCtx)
		}
		return a, tea.Batch(a.loadLanguage(), wait)

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	// The explorer owns every asynchronous operation, so results and
	// timer ticks go to it whichever view is showing.
	a.explorerView, cmd = a.explorerView.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewLanguage && a.languageView != nil {
		a.languageView, cmd = a.languageView.Update(msg)
		return a, cmd
	}

	// The filter input and delete confirmation take every key.
	if a.explorerView.FilterFocused() || a.explorerView.Confirming() {
		a.explorerView, cmd = a.explorerView.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case key.Matches(msg, a.keymap.Language) && a.languageView != nil:
		a.languageView.SetCurrent(a.explorerView.Language())
		a.currentView = messages.ViewLanguage
		return a, nil
	}

	a.explorerView, cmd = a.explorerView.Update(msg)
	return a, cmd
}

func (a *App) applyLanguage(lang domain.Language) {
	a.explorerView.SetLanguage(lang)
	if a.languageView != nil {
		a.languageView.SetCurrent(lang)
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	if a.currentView == messages.ViewLanguage && a.languageView != nil {
		b.WriteString(a.languageView.View())
	} else {
		b.WriteString(a.explorerView.View())
	}

	if a.showHelp {
		b.WriteString("\n\n")
		b.WriteString(a.help.View(a.keymap))
	}
	return b.String()
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.Close()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close stops the config watcher and ends the listing session.
func (a *App) Close() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	a.explorerView.Close()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Explorer returns the document list view.
func (a *App) Explorer() *explorer.View {
	return a.explorerView
}

// Language returns the display language.
func (a *App) Language() domain.Language {
	return a.explorerView.Language()
}

// ShowingHelp reports whether the full key help is expanded.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.explorerView.SetDimensions(width, height)
	if a.languageView != nil {
		a.languageView.SetDimensions(width, height)
	}
}
