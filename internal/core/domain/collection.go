package domain

// Distance is the similarity metric of a collection.
type Distance string

// Supported distance metrics.
const (
	// DistanceCosine is cosine similarity. It is the only metric collections are created with.
	DistanceCosine Distance = "Cosine"
)

// String returns the string representation.
func (d Distance) String() string {
	return string(d)
}

// Collection is a named vector index with a fixed dimension and metric.
type Collection struct {
	Name      string
	Dimension int
	Distance  Distance
}

// CollectionInfo describes a collection together with its approximate size.
type CollectionInfo struct {
	Collection
	PointsCount int
}
