package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIngestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    IngestOptions
		wantErr error
	}{
		{"valid", IngestOptions{Collection: "docs", Strategy: ChunkStrategyMarkdown, ChunkSize: 10}, nil},
		{"blank collection", IngestOptions{Collection: "  ", Strategy: ChunkStrategyFixed, ChunkSize: 10}, ErrInvalidInput},
		{"bad strategy", IngestOptions{Collection: "docs", Strategy: "lines", ChunkSize: 10}, ErrInvalidStrategy},
		{"zero size", IngestOptions{Collection: "docs", Strategy: ChunkStrategyFixed}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestIngestReport_Counters(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	report := &IngestReport{StartedAt: start}

	report.Add(FileOutcome{Path: "a.md", Status: OutcomeIngested, Chunks: 3})
	report.Add(FileOutcome{Path: "b.txt", Status: OutcomeSkippedEmpty})
	report.Add(FileOutcome{Path: "c.pdf", Status: OutcomeFailed, Err: errors.New("corrupt")})
	report.Add(FileOutcome{Path: "d.md", Status: OutcomeIngested, Chunks: 2})

	assert.Equal(t, 2, report.Ingested())
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 5, report.PointsWritten())
	assert.Equal(t, time.Duration(0), report.Duration())

	report.FinishedAt = start.Add(2 * time.Second)
	assert.Equal(t, 2*time.Second, report.Duration())
}

func TestFileOutcome_Reason(t *testing.T) {
	assert.Empty(t, FileOutcome{Status: OutcomeIngested}.Reason())
	assert.Equal(t, "corrupt", FileOutcome{Err: errors.New("corrupt")}.Reason())
}
