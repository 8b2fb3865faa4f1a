// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/styles"
)

// State is what the status bar currently reports.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar displays the search state, a spinner while a query runs, and
// keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	spinner  spinner.Model
	state    State
	message  string
	hitCount int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner)),
		state:   StateReady,
		width:   80,
	}
}

// StartSearching switches to the searching state and returns the command
// that animates the spinner.
func (b *Bar) StartSearching() tea.Cmd {
	b.state = StateSearching
	b.message = ""
	return b.spinner.Tick
}

// Update advances the spinner while a query runs.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || b.state != StateSearching {
		return b, nil
	}
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return b, cmd
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateSearching:
		return b.spinner.View() + b.styles.Muted.Render(" Searching...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateResults:
		if b.hitCount == 1 {
			return b.styles.Normal.Render("1 result")
		}
		return b.styles.Normal.Render(fmt.Sprintf("%d results", b.hitCount))
	default:
		return b.styles.Muted.Render("Ready")
	}
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.InputHelp()
	if b.state == StateResults && b.hitCount > 0 {
		bindings = b.keymap.ResultsHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		hints = append(hints, hint(binding))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

func hint(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetError switches to the error state with the error text.
func (b *Bar) SetError(err error) {
	b.state = StateError
	b.message = err.Error()
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetHitCount records the number of hits and switches to the results state.
func (b *Bar) SetHitCount(count int) {
	b.state = StateResults
	b.message = ""
	b.hitCount = count
}

// HitCount returns the number of hits of the last query.
func (b *Bar) HitCount() int {
	return b.hitCount
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to its ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.hitCount = 0
}
