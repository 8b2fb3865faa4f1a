package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docvec/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, collection, query string, limit int) ([]domain.SearchHit, error)
}

func (m *MockSearchService) Search(ctx context.Context, collection, query string, limit int) ([]domain.SearchHit, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, collection, query, limit)
	}
	return []domain.SearchHit{}, nil
}

func testHits() []domain.SearchHit {
	return []domain.SearchHit{
		{ID: "a", Score: 0.9, Payload: domain.Payload{Title: "cats", ChunkID: 1, Summary: "cats purr"}},
		{ID: "b", Score: 0.2, Payload: domain.Payload{Title: "rockets", ChunkID: 1, Summary: "rockets fly"}},
	}
}

func typeQuery(v *View, query string) *View {
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(query)})
	return v
}

// submit presses enter and returns the message produced by the search command.
func submit(t *testing.T, v *View) (*View, tea.Msg) {
	t.Helper()
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	return v, v.performSearch(v.lastQuery)()
}

func newTestView(svc *MockSearchService) *View {
	v := NewView(nil, nil, svc, "docs", 3)
	v.SetDimensions(100, 40)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &MockSearchService{}, "docs", 5)

	require.NotNil(t, v)
	assert.Equal(t, "docs", v.Collection())
	assert.True(t, v.InputFocused())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_SearchPassesCollectionAndLimit(t *testing.T) {
	var gotCollection, gotQuery string
	var gotLimit int
	svc := &MockSearchService{
		SearchFunc: func(_ context.Context, collection, query string, limit int) ([]domain.SearchHit, error) {
			gotCollection, gotQuery, gotLimit = collection, query, limit
			return testHits(), nil
		},
	}
	v := typeQuery(newTestView(svc), "  cats  ")

	v, msg := submit(t, v)
	v, _ = v.Update(msg)

	assert.Equal(t, "docs", gotCollection)
	assert.Equal(t, "cats", gotQuery)
	assert.Equal(t, 3, gotLimit)
	assert.Len(t, v.Hits(), 2)
	assert.False(t, v.InputFocused())
	assert.Contains(t, v.View(), "cats | chunk 1")
	assert.Contains(t, v.View(), "2 results")
}

func TestView_EmptyQueryIsIgnored(t *testing.T) {
	v := typeQuery(newTestView(&MockSearchService{}), "   ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_SearchError(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, string, int) ([]domain.SearchHit, error) {
			return nil, domain.ErrEmbeddingUnavailable
		},
	}
	v := typeQuery(newTestView(svc), "cats")

	v, msg := submit(t, v)
	v, _ = v.Update(msg)

	assert.ErrorIs(t, v.Err(), domain.ErrEmbeddingUnavailable)
	assert.Empty(t, v.Hits())
	assert.Contains(t, v.View(), "Error: ")
}

func TestView_NoHitsRefocusesPrompt(t *testing.T) {
	v := typeQuery(newTestView(&MockSearchService{}), "nothing")

	v, msg := submit(t, v)
	v, _ = v.Update(msg)

	assert.True(t, v.InputFocused())
	assert.Contains(t, v.View(), "No results")
}

func TestView_StaleResultsAreDropped(t *testing.T) {
	v := newTestView(&MockSearchService{})
	v.lastQuery = "new"

	v, _ = v.Update(messages.SearchCompleted{Query: "old", Hits: testHits()})

	assert.Empty(t, v.Hits())
}

func TestView_ResultNavigation(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, string, int) ([]domain.SearchHit, error) {
			return testHits(), nil
		},
	}
	v := typeQuery(newTestView(svc), "cats")
	v, msg := submit(t, v)
	v, _ = v.Update(msg)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, "b", v.SelectedHit().ID)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "a", v.SelectedHit().ID)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_QuitKeys(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, string, int) ([]domain.SearchHit, error) {
			return testHits(), nil
		},
	}

	t.Run("esc on empty prompt without hits", func(t *testing.T) {
		v := newTestView(svc)
		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.Equal(t, messages.Quit{}, cmd())
	})

	t.Run("esc clears a typed query", func(t *testing.T) {
		v := typeQuery(newTestView(svc), "cats")
		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Nil(t, cmd)
		assert.Empty(t, v.Query())
	})

	t.Run("q in results mode", func(t *testing.T) {
		v := typeQuery(newTestView(svc), "cats")
		v, msg := submit(t, v)
		v, _ = v.Update(msg)
		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.Equal(t, messages.Quit{}, cmd())
	})
}

func TestView_NoSearchService(t *testing.T) {
	v := NewView(nil, nil, nil, "docs", 3)

	msg := v.performSearch("cats")()

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.True(t, errors.Is(errMsg.Err, ErrNoSearchService))
}
