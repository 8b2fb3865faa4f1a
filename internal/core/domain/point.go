package domain

// Payload is the metadata stored with every point.
type Payload struct {
	Title      string `json:"title"`
	ChunkID    int    `json:"chunk_id"`
	Summary    string `json:"summary"`
	Source     string `json:"source"`
	SourceType string `json:"source_type"`
	SourceDir  string `json:"source_dir"`
	Page       *int   `json:"page,omitempty"`
}

// NewPayload builds the payload for one chunk of a document.
func NewPayload(doc Document, chunk Chunk) Payload {
	p := Payload{
		Title:      doc.Title,
		ChunkID:    chunk.Index,
		Summary:    chunk.Text,
		Source:     doc.Source(),
		SourceType: doc.SourceType,
		SourceDir:  doc.SourceDir,
	}
	if chunk.Page > 0 {
		page := chunk.Page
		p.Page = &page
	}
	return p
}

// PageNumber returns the page, or 0 when the payload has none.
func (p Payload) PageNumber() int {
	if p.Page == nil {
		return 0
	}
	return *p.Page
}

// Point is the persisted unit: id, vector and payload.
type Point struct {
	ID      string
	Vector  []float32
	Payload Payload
}

// NewPoint builds the point for one embedded chunk.
func NewPoint(doc Document, chunk Chunk, vector []float32) Point {
	return Point{
		ID:      PointID(doc.Title, chunk.Index),
		Vector:  vector,
		Payload: NewPayload(doc, chunk),
	}
}

// ScoredPoint is a point returned by a similarity search.
// Higher scores are more similar.
type ScoredPoint struct {
	ID      string
	Payload Payload
	Score   float64
}
