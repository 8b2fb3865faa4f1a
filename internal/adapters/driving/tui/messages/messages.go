// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/docvec/internal/core/domain"
)

// SearchCompleted carries the hits of a query back to the model.
type SearchCompleted struct {
	Query string
	Hits  []domain.SearchHit
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
