package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docvec/internal/core/domain"
)

// Options configures the search session.
type Options struct {
	// Collection is the collection every query runs against.
	Collection string

	// Limit is the maximum number of hits per query.
	Limit int
}

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports      *Ports
	ctx        context.Context
	styles     *styles.Styles
	searchView *search.View

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if opts.Limit <= 0 {
		opts.Limit = domain.DefaultSearchLimit
	}

	s := styles.DefaultStyles()
	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		searchView: search.NewView(s, nil, ports.Search, opts.Collection, opts.Limit),
	}, nil
}

// WithContext sets the context used for queries.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("docvec - "+a.searchView.Collection()),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

// SetDimensions sets the terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// Query returns the text of the prompt.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Hits returns the hits of the last query.
func (a *App) Hits() []domain.SearchHit {
	return a.searchView.Hits()
}

// Err returns the error of the last query, if any.
func (a *App) Err() error {
	return a.searchView.Err()
}
