// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docvec/internal/core/domain"
)

// HitList displays search hits in a navigable list. The selected hit can be
// expanded to show its whole chunk; the others show the first summary line.
type HitList struct {
	hits     []domain.SearchHit
	selected int
	expanded bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates an empty hit list.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the visible window of hits.
func (l *HitList) View() string {
	if len(l.hits) == 0 {
		return l.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(l.hits)*2+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(l.hits))), "")

	// Collapsed hits take two lines plus a blank separator.
	visible := (l.height - 4) / 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.hits))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderHit(i, l.hits[i]), "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Header formats the first line of a hit.
func Header(h domain.SearchHit) string {
	header := fmt.Sprintf("%s | chunk %d", h.Payload.Title, h.Payload.ChunkID)
	if page := h.Payload.PageNumber(); page > 0 {
		header += fmt.Sprintf(" | page %d", page)
	}
	return header
}

func (l *HitList) renderHit(index int, h domain.SearchHit) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}
	score := fmt.Sprintf("%.3f", h.Score)

	var head string
	if index == l.selected {
		head = l.styles.Selected.Render(indicator+Header(h)) + "  " + l.styles.Score.Render(score)
	} else {
		head = l.styles.Normal.Render(indicator+Header(h)) + "  " + l.styles.Muted.Render(score)
	}

	body := l.preview(h.Payload.Summary)
	if index == l.selected && l.expanded {
		body = strings.Split(h.Payload.Summary, "\n")
	}

	out := make([]string, 0, len(body)+1)
	out = append(out, head)
	for _, line := range body {
		out = append(out, l.styles.Muted.Render("    "+line))
	}
	return strings.Join(out, "\n")
}

// preview returns the first non-blank summary line cut to the list width.
func (l *HitList) preview(summary string) []string {
	first := ""
	for _, line := range strings.Split(summary, "\n") {
		if strings.TrimSpace(line) != "" {
			first = strings.TrimSpace(line)
			break
		}
	}
	limit := max(l.width-6, 20)
	if runes := []rune(first); len(runes) > limit {
		first = string(runes[:limit-3]) + "..."
	}
	return []string{first}
}

// SetHits replaces the hits and resets the selection.
func (l *HitList) SetHits(hits []domain.SearchHit) {
	l.hits = hits
	l.selected = 0
	l.expanded = false
}

// Hits returns the current hits.
func (l *HitList) Hits() []domain.SearchHit {
	return l.hits
}

// Selected returns the index of the selected hit.
func (l *HitList) Selected() int {
	return l.selected
}

// SelectedHit returns the selected hit, or nil when the list is empty.
func (l *HitList) SelectedHit() *domain.SearchHit {
	if l.selected < 0 || l.selected >= len(l.hits) {
		return nil
	}
	return &l.hits[l.selected]
}

// ToggleExpanded shows or hides the whole chunk of the selected hit.
func (l *HitList) ToggleExpanded() {
	if len(l.hits) > 0 {
		l.expanded = !l.expanded
	}
}

// Expanded reports whether the selected hit shows its whole chunk.
func (l *HitList) Expanded() bool {
	return l.expanded
}

// MoveUp moves the selection up and collapses the previous hit.
func (l *HitList) MoveUp() {
	if l.selected > 0 {
		l.selected--
		l.expanded = false
	}
}

// MoveDown moves the selection down and collapses the previous hit.
func (l *HitList) MoveDown() {
	if l.selected < len(l.hits)-1 {
		l.selected++
		l.expanded = false
	}
}

// SetDimensions sets the component dimensions.
func (l *HitList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of hits.
func (l *HitList) Count() int {
	return len(l.hits)
}
