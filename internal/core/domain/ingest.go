package domain

import (
	"fmt"
	"strings"
	"time"
)

// IngestOptions configures one ingestion run.
type IngestOptions struct {
	// Collection is the target collection name.
	Collection string

	// Strategy selects the chunker for non-PDF files.
	Strategy ChunkStrategy

	// ChunkSize is the size threshold in characters.
	ChunkSize int

	// Prune deletes a document's points that the new upsert did not rewrite,
	// removing stale trailing chunks left by a previous, longer chunking.
	// Titles are matched ignoring case, like point ids.
	Prune bool
}

// Validate checks the options before anything is written.
func (o IngestOptions) Validate() error {
	if strings.TrimSpace(o.Collection) == "" {
		return fmt.Errorf("%w: collection name is required", ErrInvalidInput)
	}
	if !o.Strategy.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, o.Strategy)
	}
	if o.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, o.ChunkSize)
	}
	return nil
}

// OutcomeStatus is the result of ingesting a single file.
type OutcomeStatus string

// Per-file outcomes.
const (
	// OutcomeIngested means every chunk of the file was upserted.
	OutcomeIngested OutcomeStatus = "ingested"

	// OutcomeSkippedEmpty means the file produced no chunks. It is not an error.
	OutcomeSkippedEmpty OutcomeStatus = "skipped_empty"

	// OutcomeFailed means the file could not be read, chunked, embedded or stored.
	OutcomeFailed OutcomeStatus = "failed"
)

// FileOutcome records what happened to one file.
type FileOutcome struct {
	Path   string
	Title  string
	Status OutcomeStatus

	// Chunks is the number of points upserted for the file.
	Chunks int

	// Err is the failure reason when Status is OutcomeFailed.
	Err error
}

// Reason returns the failure message, or an empty string.
func (o FileOutcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// IngestReport collects per-file outcomes of an ingestion run.
type IngestReport struct {
	RunID      string
	Directory  string
	Collection string
	Strategy   ChunkStrategy
	ChunkSize  int

	// Empty is true when the directory contained no files.
	Empty bool

	Files      []FileOutcome
	StartedAt  time.Time
	FinishedAt time.Time
}

// Add appends a file outcome.
func (r *IngestReport) Add(o FileOutcome) {
	r.Files = append(r.Files, o)
}

// Ingested returns the number of successfully ingested files.
func (r *IngestReport) Ingested() int {
	return r.count(OutcomeIngested)
}

// Skipped returns the number of files skipped for producing no chunks.
func (r *IngestReport) Skipped() int {
	return r.count(OutcomeSkippedEmpty)
}

// Failed returns the number of files that failed.
func (r *IngestReport) Failed() int {
	return r.count(OutcomeFailed)
}

// PointsWritten returns the total number of points upserted.
func (r *IngestReport) PointsWritten() int {
	total := 0
	for _, f := range r.Files {
		total += f.Chunks
	}
	return total
}

// Duration returns how long the run took.
func (r *IngestReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *IngestReport) count(status OutcomeStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}
