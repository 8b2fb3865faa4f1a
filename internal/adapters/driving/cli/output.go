package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// fileJSON is the JSON form of a file outcome.
type fileJSON struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Chunks int    `json:"chunks"`
	Error  string `json:"error,omitempty"`
}

// reportJSON is the JSON form of an ingest report.
type reportJSON struct {
	RunID      string     `json:"run_id"`
	Directory  string     `json:"directory,omitempty"`
	Collection string     `json:"collection"`
	Strategy   string     `json:"strategy"`
	ChunkSize  int        `json:"chunk_size"`
	Empty      bool       `json:"empty"`
	Ingested   int        `json:"ingested"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	Points     int        `json:"points"`
	DurationMS int64      `json:"duration_ms"`
	Files      []fileJSON `json:"files"`
}

func toReportJSON(r *domain.IngestReport) reportJSON {
	out := reportJSON{
		RunID:      r.RunID,
		Directory:  r.Directory,
		Collection: r.Collection,
		Strategy:   r.Strategy.String(),
		ChunkSize:  r.ChunkSize,
		Empty:      r.Empty,
		Ingested:   r.Ingested(),
		Skipped:    r.Skipped(),
		Failed:     r.Failed(),
		Points:     r.PointsWritten(),
		DurationMS: r.Duration().Milliseconds(),
		Files:      make([]fileJSON, 0, len(r.Files)),
	}
	for _, f := range r.Files {
		out.Files = append(out.Files, fileJSON{
			Path:   f.Path,
			Title:  f.Title,
			Status: string(f.Status),
			Chunks: f.Chunks,
			Error:  f.Reason(),
		})
	}
	return out
}

// hitJSON is the JSON form of a search hit.
type hitJSON struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload domain.Payload `json:"payload"`
}

func toHitsJSON(hits []domain.SearchHit) []hitJSON {
	out := make([]hitJSON, 0, len(hits))
	for _, h := range hits {
		out = append(out, hitJSON{ID: h.ID, Score: h.Score, Payload: h.Payload})
	}
	return out
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printReport(cmd *cobra.Command, r *domain.IngestReport) {
	if r.Empty {
		cmd.Printf("No files found in %s\n", r.Directory)
		return
	}

	for _, f := range r.Files {
		switch f.Status {
		case domain.OutcomeIngested:
			cmd.Printf("  ok      %s (%d chunks)\n", f.Path, f.Chunks)
		case domain.OutcomeSkippedEmpty:
			cmd.Printf("  skipped %s (no content)\n", f.Path)
		case domain.OutcomeFailed:
			cmd.Printf("  failed  %s: %s\n", f.Path, f.Reason())
		}
	}

	cmd.Printf("\n%d ingested, %d skipped, %d failed, %d point(s) in %q (%s)\n",
		r.Ingested(), r.Skipped(), r.Failed(), r.PointsWritten(), r.Collection,
		r.Duration().Round(time.Millisecond))
}

// FormatHit renders a hit as a header line followed by the indented summary.
func FormatHit(h domain.SearchHit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | chunk %d | score %.3f", h.Payload.Title, h.Payload.ChunkID, h.Score)
	if page := h.Payload.PageNumber(); page > 0 {
		fmt.Fprintf(&b, " | page %d", page)
	}
	b.WriteByte('\n')
	for _, line := range strings.Split(h.Payload.Summary, "\n") {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
