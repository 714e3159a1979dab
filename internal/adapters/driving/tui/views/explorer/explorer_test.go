package explorer

import (
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/i18n"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/services"
)

const testOwner = "auth0|alice"

type stubIdentity struct {
	owner string
	err   error
}

func (s *stubIdentity) Owner(_ context.Context) (string, error) {
	return s.owner, s.err
}

func (s *stubIdentity) Login(_ context.Context, _ string) (*domain.Identity, error) {
	return nil, domain.ErrNotImplemented
}

func newTestView(t *testing.T, readOnly bool) (*View, *memory.DocumentStore) {
	t.Helper()

	store := memory.NewDocumentStore()
	store.Add(
		domain.Document{ID: "1", OwnerID: testOwner, Filename: "report.pdf", FileSize: 2048},
		domain.Document{ID: "2", OwnerID: testOwner, Filename: "notes.txt", FileSize: 10},
		domain.Document{ID: "3", OwnerID: testOwner, Filename: "Budget.xlsx", FileSize: 4096},
	)
	catalog, err := i18n.New()
	require.NoError(t, err)

	v := NewView(nil, nil,
		services.NewExplorerService(store, readOnly),
		&stubIdentity{owner: testOwner},
		catalog,
	)
	v.SetDimensions(120, 30)
	return v, store
}

// drain runs cmd and feeds the resulting messages back into the view.
// Spinner ticks are dropped so the loop ends.
func drain(v *View, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(v, c)
		}
	default:
		_, next := v.Update(msg)
		drain(v, next)
	}
}

func loaded(t *testing.T, readOnly bool) (*View, *memory.DocumentStore) {
	t.Helper()
	v, store := newTestView(t, readOnly)
	drain(v, v.Init())
	require.Equal(t, 3, v.State().Total)
	return v, store
}

func press(v *View, keys string) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return cmd
}

func filenames(docs []domain.Document) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Filename
	}
	return names
}

func TestView_InitLoads(t *testing.T) {
	v, _ := loaded(t, false)

	assert.Equal(t, testOwner, v.Owner())
	assert.False(t, v.Busy())
	assert.Equal(t, []string{"report.pdf", "notes.txt", "Budget.xlsx"}, filenames(v.State().Items))

	view := v.View()
	assert.Contains(t, view, "Uploaded files")
	assert.Contains(t, view, "(3/3)")
	assert.Contains(t, view, "report.pdf")
	assert.Contains(t, view, "No items selected")
}

func TestView_LoadingText(t *testing.T) {
	v, _ := newTestView(t, false)

	v.Init()

	assert.True(t, v.Busy())
	assert.Contains(t, v.View(), "Loading documents...")
}

func TestView_LoadError(t *testing.T) {
	v, _ := newTestView(t, false)
	v.identity = &stubIdentity{err: domain.ErrOwnerRequired}

	drain(v, v.Init())

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.Status().Message(), domain.ErrOwnerRequired.Error())
}

func TestView_Toggle(t *testing.T) {
	v, _ := loaded(t, false)

	v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.True(t, v.State().IsSelected("report.pdf"))
	assert.Equal(t, "Selected: report.pdf", v.Status().Summary())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	press(v, "x")
	assert.Equal(t, "2 items selected", v.Status().Summary())

	v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, v.State().IsSelected("notes.txt"))
}

func TestView_SelectAll(t *testing.T) {
	v, _ := loaded(t, false)

	press(v, "a")
	assert.Equal(t, 3, v.State().Summary.Count)

	press(v, "a")
	assert.Equal(t, 0, v.State().Summary.Count)
}

func TestView_Sort(t *testing.T) {
	v, _ := loaded(t, false)

	press(v, "3")
	assert.Equal(t, []string{"notes.txt", "report.pdf", "Budget.xlsx"}, filenames(v.State().Items))
	assert.Equal(t, status.StateNotice, v.Status().State())
	assert.Equal(t, "File size is sorted ascending", v.Status().Message())

	press(v, "3")
	assert.Equal(t, []string{"Budget.xlsx", "report.pdf", "notes.txt"}, filenames(v.State().Items))
	assert.Equal(t, "File size is sorted descending", v.Status().Message())

	assert.Contains(t, v.View(), "File size ▼")
}

func TestView_Filter(t *testing.T) {
	v, _ := loaded(t, false)

	press(v, "/")
	require.True(t, v.FilterFocused())

	press(v, "r")
	press(v, "e")
	assert.Equal(t, "re", v.State().Filter)
	assert.Equal(t, []string{"report.pdf"}, filenames(v.State().Items))
	assert.Equal(t, "Number of items after filter applied: 1.", v.Status().Message())

	// keys go to the filter while it is focused
	press(v, "d")
	assert.False(t, v.Confirming())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.FilterFocused())
	assert.Equal(t, "red", v.State().Filter)
}

func TestView_DeleteConfirmed(t *testing.T) {
	v, store := loaded(t, false)
	v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	press(v, "d")
	require.True(t, v.Confirming())
	assert.Contains(t, v.Status().Message(), "Delete: Selected: report.pdf?")

	drain(v, press(v, "y"))

	assert.False(t, v.Confirming())
	assert.Equal(t, 2, v.State().Total)
	assert.Equal(t, "Deleted 1 document", v.Status().Message())

	docs, err := store.FetchDocuments(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestView_DeleteCancelled(t *testing.T) {
	v, _ := loaded(t, false)
	press(v, "a")

	press(v, "d")
	require.True(t, v.Confirming())

	cmd := press(v, "n")

	assert.Nil(t, cmd)
	assert.False(t, v.Confirming())
	assert.Equal(t, 3, v.State().Total)
	assert.Equal(t, status.StateReady, v.Status().State())
}

func TestView_DeleteNothingSelected(t *testing.T) {
	v, _ := loaded(t, false)

	press(v, "d")

	assert.False(t, v.Confirming())
	assert.Equal(t, "No items selected", v.Status().Message())
}

func TestView_Reload(t *testing.T) {
	v, store := loaded(t, false)

	cmd := press(v, "r")
	assert.Equal(t, "Reloading...", v.Status().Message())

	drain(v, cmd)

	assert.Equal(t, 1, store.Reloads(testOwner))
	assert.Equal(t, status.StateNotice, v.Status().State())
	assert.Equal(t, "Reload requested. Press R to refresh the list.", v.Status().Message())
}

func TestView_ReadOnly(t *testing.T) {
	v, store := loaded(t, true)
	press(v, "a")

	assert.Nil(t, press(v, "r"))
	assert.Equal(t, "Demo mode: delete and reload are disabled", v.Status().Message())

	press(v, "d")
	assert.False(t, v.Confirming())
	assert.Equal(t, 0, store.Reloads(testOwner))
	assert.Equal(t, 3, v.State().Total)
}

func TestView_Refresh(t *testing.T) {
	v, store := loaded(t, false)
	store.Add(domain.Document{ID: "4", OwnerID: testOwner, Filename: "extra.md", FileSize: 1})

	drain(v, press(v, "R"))

	assert.Equal(t, 4, v.State().Total)
}

func TestView_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		state    status.State
		expected string
	}{
		{"in progress", fmt.Errorf("reload: %w", domain.ErrOperationInProgress), status.StateBusy,
			"Please wait, the previous request is still running"},
		{"read only", domain.ErrReadOnly, status.StateBusy, "Demo mode: delete and reload are disabled"},
		{"other", fmt.Errorf("%w: boom", domain.ErrReloadFailed), status.StateError, "reload documents failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := loaded(t, false)

			v.Update(messages.ReloadFinished{Err: tt.err})

			assert.Equal(t, tt.state, v.Status().State())
			assert.Contains(t, v.Status().Message(), tt.expected)
		})
	}
}

func TestView_SetLanguage(t *testing.T) {
	v, _ := loaded(t, false)

	v.SetLanguage(domain.LanguageGerman)

	assert.Equal(t, domain.LanguageGerman, v.Language())
	view := v.View()
	assert.Contains(t, view, "Hochgeladene Dateien")
	assert.Contains(t, view, "Dateigröße")
	assert.Contains(t, view, "Keine Elemente ausgewählt")

	v.SetLanguage(domain.Language("fr"))
	assert.Equal(t, domain.LanguageGerman, v.Language())
}

func TestView_WindowSize(t *testing.T) {
	v, _ := newTestView(t, false)

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, v.width)
	assert.Equal(t, 40, v.height)
	assert.Equal(t, 100, v.Status().Width())
}

func TestView_SpinnerStopsWhenIdle(t *testing.T) {
	v, _ := loaded(t, false)
	v.ticking = true

	_, cmd := v.Update(spinner.TickMsg{})

	assert.Nil(t, cmd)
	assert.False(t, v.ticking)
}
