// Package search provides the query prompt and result view of the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
)

// View is the search screen: a query prompt, the hit list and a status bar.
// It starts with the prompt focused; a completed query moves focus to the hits.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.HitList
	statusbar *status.Bar

	searchService driving.SearchService
	collection    string
	limit         int
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	lastQuery  string
	focusInput bool
}

// NewView creates a search view querying collection with up to limit hits.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	collection string,
	limit int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s, collection),
		list:          list.NewHitList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		collection:    collection,
		limit:         limit,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for queries.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the prompt cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	cmds = append(cmds, cmd)
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Quit):
		return v, quit
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.Expand):
		v.list.ToggleExpanded()
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.input.SetValue("")
		return v, v.focus()
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, v.focus()
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		// Esc on an empty prompt leaves; otherwise it clears the prompt.
		if v.input.Value() == "" {
			if v.list.Count() > 0 {
				v.blur()
				return v, nil
			}
			return v, quit
		}
		v.input.SetValue("")
		return v, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.lastQuery = query
		v.err = nil
		v.blur()
		return v, tea.Batch(v.statusbar.StartSearching(), v.performSearch(query))
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func quit() tea.Msg {
	return messages.Quit{}
}

func (v *View) focus() tea.Cmd {
	v.focusInput = true
	return v.input.Focus()
}

func (v *View) blur() {
	v.focusInput = false
	v.input.Blur()
}

// performSearch runs the query off the update loop.
func (v *View) performSearch(query string) tea.Cmd {
	ctx, svc, collection, limit := v.ctx, v.searchService, v.collection, v.limit
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		hits, err := svc.Search(ctx, collection, query, limit)
		return messages.SearchCompleted{Query: query, Hits: hits, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Query != v.lastQuery {
		return
	}
	if msg.Err != nil {
		v.err = msg.Err
		v.list.SetHits(nil)
		v.statusbar.SetError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetHits(msg.Hits)
	v.statusbar.SetHitCount(len(msg.Hits))
	if len(msg.Hits) == 0 {
		v.focus()
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("docvec"), "", v.input.View(), "")
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Collection returns the collection queries run against.
func (v *View) Collection() string {
	return v.collection
}

// Limit returns the number of hits requested per query.
func (v *View) Limit() int {
	return v.limit
}

// Query returns the text of the prompt.
func (v *View) Query() string {
	return v.input.Value()
}

// Hits returns the hits of the last query.
func (v *View) Hits() []domain.SearchHit {
	return v.list.Hits()
}

// SelectedHit returns the selected hit, or nil.
func (v *View) SelectedHit() *domain.SearchHit {
	return v.list.SelectedHit()
}

// Err returns the error of the last query, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused reports whether keys go to the prompt.
func (v *View) InputFocused() bool {
	return v.focusInput
}
