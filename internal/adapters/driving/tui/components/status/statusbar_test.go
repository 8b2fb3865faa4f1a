package status

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil)

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
	assert.Contains(t, b.View(), "Ready")
	assert.Contains(t, b.View(), "enter: search")
}

func TestBar_StartSearching(t *testing.T) {
	b := NewBar(nil, nil)

	cmd := b.StartSearching()

	assert.NotNil(t, cmd)
	assert.Equal(t, StateSearching, b.State())
	assert.Contains(t, b.View(), "Searching...")
}

func TestBar_UpdateIgnoresTicksWhenIdle(t *testing.T) {
	b := NewBar(nil, nil)

	_, cmd := b.Update(spinner.TickMsg{})

	assert.Nil(t, cmd)
}

func TestBar_SetHitCount(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)

	b.SetHitCount(1)
	assert.Contains(t, b.View(), "1 result")
	assert.Contains(t, b.View(), "n: new search")

	b.SetHitCount(4)
	assert.Contains(t, b.View(), "4 results")
	assert.Equal(t, 4, b.HitCount())
}

func TestBar_SetError(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)

	b.SetError(errors.New("embedding unavailable"))

	assert.Equal(t, StateError, b.State())
	assert.Equal(t, "embedding unavailable", b.Message())
	assert.Contains(t, b.View(), "Error: embedding unavailable")

	b.Clear()
	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
}
