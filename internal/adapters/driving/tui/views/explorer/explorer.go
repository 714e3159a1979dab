// Package explorer provides the document list view for the TUI.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

// reservedLines covers the title, the bordered filter input and the status bar.
const reservedLines = 8

// View is the document list view. It holds one listing session for the
// lifetime of the program.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	list     driving.DocumentList
	identity driving.IdentityService
	loc      driving.Localizer
	lang     domain.Language

	table   *list.DocumentTable
	filter  *input.FilterInput
	status  *status.Bar
	spinner spinner.Model

	owner      string
	loaded     bool
	pending    int
	ticking    bool
	confirming bool
	width      int
	height     int
}

// NewView creates a new explorer view with a fresh listing session.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	explorer driving.ExplorerService,
	identity driving.IdentityService,
	loc driving.Localizer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	v := &View{
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		list:     explorer.NewList(),
		identity: identity,
		loc:      loc,
		lang:     domain.DefaultLanguage,
		table:    list.NewDocumentTable(s),
		filter:   input.NewFilterInput(s),
		status:   status.NewBar(s, km),
		spinner:  sp,
		width:    80,
		height:   24,
	}
	v.relabel()
	return v
}

// SetContext sets the context passed to blocking listing calls.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init starts the first fetch.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// Refresh fetches the listing again.
func (v *View) Refresh() tea.Cmd {
	return v.load()
}

// load returns a command that resolves the owner and fetches the listing.
func (v *View) load() tea.Cmd {
	fetch := func() tea.Msg {
		owner, err := v.identity.Owner(v.ctx)
		if err != nil {
			return messages.DocumentsLoaded{Err: err}
		}
		docs, err := v.list.Load(v.ctx, owner)
		return messages.DocumentsLoaded{OwnerID: owner, Count: len(docs), Err: err}
	}
	return v.start(fetch)
}

func (v *View) deleteSelected() tea.Cmd {
	count := v.list.SelectionSummary().Count
	return v.start(func() tea.Msg {
		err := v.list.DeleteSelected(v.ctx)
		return messages.DocumentsDeleted{Count: count, Err: err}
	})
}

func (v *View) reload() tea.Cmd {
	owner := v.owner
	v.status.Notify(status.StateBusy, v.loc.T(v.lang, domain.MsgReloading, nil))
	return v.start(func() tea.Msg {
		return messages.ReloadFinished{Err: v.list.Reload(v.ctx, owner)}
	})
}

// start counts an operation as pending and keeps the spinner running.
func (v *View) start(cmd tea.Cmd) tea.Cmd {
	v.pending++
	if v.ticking {
		return cmd
	}
	v.ticking = true
	return tea.Batch(cmd, v.spinner.Tick)
}

func (v *View) finish() {
	if v.pending > 0 {
		v.pending--
	}
}

// Update handles messages for the explorer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if v.pending == 0 {
			v.ticking = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.DocumentsLoaded:
		v.finish()
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		v.owner = msg.OwnerID
		v.loaded = true
		v.filter.Reset()
		v.status.Clear()
		v.sync()
		return v, nil

	case messages.DocumentsDeleted:
		v.finish()
		if msg.Err != nil {
			v.showError(msg.Err)
		} else {
			v.status.Notify(status.StateNotice, v.loc.Plural(v.lang, domain.MsgDeleted, msg.Count))
		}
		v.sync()
		return v, nil

	case messages.ReloadFinished:
		v.finish()
		if msg.Err != nil {
			v.showError(msg.Err)
		} else {
			v.status.Notify(status.StateNotice, v.loc.T(v.lang, domain.MsgReloadDone, nil))
		}
		v.sync()
		return v, nil

	case messages.ErrorOccurred:
		v.showError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.filter.Focused() {
		return v.handleFilterKey(msg)
	}
	if v.confirming {
		v.confirming = false
		v.status.Clear()
		if key.Matches(msg, v.keymap.Confirm) {
			return v, v.deleteSelected()
		}
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keymap.Up), key.Matches(msg, v.keymap.Down):
		v.table.Update(msg)
	case msg.String() == "home" || msg.String() == "end" || msg.String() == "g" || msg.String() == "G":
		v.table.Update(msg)
	case key.Matches(msg, v.keymap.Toggle):
		if doc, ok := v.table.Current(); ok {
			v.list.Toggle(doc.Key())
			v.sync()
		}
	case key.Matches(msg, v.keymap.SelectAll):
		v.list.SelectAll(!v.allVisibleSelected())
		v.sync()
	case key.Matches(msg, v.keymap.Filter):
		return v, v.filter.Focus()
	case key.Matches(msg, v.keymap.SortType):
		v.sortBy("type")
	case key.Matches(msg, v.keymap.SortName):
		v.sortBy("name")
	case key.Matches(msg, v.keymap.SortSize):
		v.sortBy("size")
	case key.Matches(msg, v.keymap.Delete):
		v.confirmDelete()
	case key.Matches(msg, v.keymap.Reload):
		if v.guard() {
			return v, v.reload()
		}
	case key.Matches(msg, v.keymap.Refresh):
		return v, v.load()
	case key.Matches(msg, v.keymap.Back):
		v.status.Clear()
	}
	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // only keys that leave the input
	case tea.KeyEsc, tea.KeyEnter:
		v.filter.Blur()
		return v, nil
	}

	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if value := v.filter.Value(); value != before {
		v.list.SetFilter(value)
		v.sync()
		v.announce()
	}
	return v, cmd
}

func (v *View) sortBy(column string) {
	if err := v.list.SortBy(column); err != nil {
		v.showError(err)
		return
	}
	v.sync()
	v.announce()
}

func (v *View) confirmDelete() {
	if !v.guard() {
		return
	}
	summary := v.list.SelectionSummary()
	if summary.Count == 0 {
		v.status.Notify(status.StateBusy, v.loc.SelectionSummary(v.lang, summary))
		return
	}
	v.confirming = true
	v.status.Notify(status.StateBusy, fmt.Sprintf("%s: %s? (y/N)",
		v.loc.T(v.lang, domain.MsgDeleteDoc, nil),
		v.loc.SelectionSummary(v.lang, summary)))
}

// guard reports whether a mutating operation may start, explaining why
// not in the status bar.
func (v *View) guard() bool {
	state := v.list.State()
	switch {
	case state.ReadOnly:
		v.status.Notify(status.StateBusy, v.loc.T(v.lang, domain.MsgDemoMode, nil))
		return false
	case state.Deleting || state.Reloading:
		v.status.Notify(status.StateBusy, v.loc.T(v.lang, domain.MsgOperationBusy, nil))
		return false
	case !v.loaded:
		return false
	}
	return true
}

func (v *View) allVisibleSelected() bool {
	state := v.list.State()
	if len(state.Items) == 0 {
		return false
	}
	for _, doc := range state.Items {
		if !state.IsSelected(doc.Key()) {
			return false
		}
	}
	return true
}

func (v *View) showError(err error) {
	switch {
	case errors.Is(err, domain.ErrOperationInProgress):
		v.status.Notify(status.StateBusy, v.loc.T(v.lang, domain.MsgOperationBusy, nil))
	case errors.Is(err, domain.ErrReadOnly):
		v.status.Notify(status.StateBusy, v.loc.T(v.lang, domain.MsgDemoMode, nil))
	default:
		v.status.Notify(status.StateError, err.Error())
	}
}

func (v *View) announce() {
	if a := v.list.State().Announcement; a != nil {
		v.status.Notify(status.StateNotice, v.loc.Announcement(v.lang, *a))
	}
}

// sync copies the listing snapshot into the table and the status summary.
func (v *View) sync() {
	state := v.list.State()
	headers := make([]string, len(state.Columns))
	for i, col := range state.Columns {
		headers[i] = v.loc.Column(v.lang, col)
	}
	v.table.SetState(state, headers)
	v.status.SetSummary(v.loc.SelectionSummary(v.lang, state.Summary))
}

// relabel re-renders every localised label.
func (v *View) relabel() {
	v.filter.SetLabels(v.loc.T(v.lang, domain.MsgFilterByName, nil), v.loc.T(v.lang, domain.MsgFiles, nil))
	v.table.SetEmptyText(v.loc.T(v.lang, domain.MsgNoDocuments, nil))
	v.sync()
}

// SetLanguage switches every label to lang.
func (v *View) SetLanguage(lang domain.Language) {
	if !lang.IsValid() {
		return
	}
	v.lang = lang
	v.relabel()
}

// Language returns the display language.
func (v *View) Language() domain.Language {
	return v.lang
}

// View renders the explorer view.
func (v *View) View() string {
	var b strings.Builder

	state := v.list.State()
	title := v.styles.Title.Render(v.loc.T(v.lang, domain.MsgUploadedFiles, nil))
	count := v.styles.Muted.Render(fmt.Sprintf(" (%d/%d)", len(state.Items), state.Total))
	b.WriteString(title + count)
	if v.pending > 0 {
		b.WriteString(" " + v.spinner.View())
	}
	b.WriteString("\n\n")

	b.WriteString(v.filter.View())
	b.WriteString("\n\n")

	if !v.loaded && v.pending > 0 {
		b.WriteString(v.styles.Muted.Render(v.loc.T(v.lang, domain.MsgLoading, nil)))
	} else {
		b.WriteString(v.table.View())
	}
	b.WriteString("\n")
	b.WriteString(v.status.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.table.SetDimensions(width, max(height-reservedLines, 1))
	v.filter.SetWidth(width)
	v.status.SetWidth(width)
}

// FilterFocused reports whether keys go to the filter input.
func (v *View) FilterFocused() bool {
	return v.filter.Focused()
}

// Confirming reports whether a delete confirmation is pending.
func (v *View) Confirming() bool {
	return v.confirming
}

// Busy reports whether an operation is in flight.
func (v *View) Busy() bool {
	return v.pending > 0
}

// State returns the listing snapshot.
func (v *View) State() domain.ListState {
	return v.list.State()
}

// Owner returns the owner of the loaded listing.
func (v *View) Owner() string {
	return v.owner
}

// Cursor returns the table cursor.
func (v *View) Cursor() int {
	return v.table.Cursor()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}

// Close ends the listing session.
func (v *View) Close() {
	v.list.Close()
}
