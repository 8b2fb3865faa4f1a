package domain

// DefaultSearchLimit is used when a caller passes a non-positive limit.
const DefaultSearchLimit = 5

// SearchHit is one result of a similarity query.
type SearchHit struct {
	// ID is the point identifier.
	ID string

	// Payload carries the chunk text and its document metadata.
	Payload Payload

	// Score is the similarity reported by the store. Higher is more similar.
	Score float64
}
