package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantTitle  string
		wantType   string
		wantDir    string
		wantSource string
	}{
		{
			name:       "markdown",
			path:       filepath.Join("data", "texts", "Guide.md"),
			wantTitle:  "Guide",
			wantType:   "md",
			wantDir:    "texts",
			wantSource: "Guide.md",
		},
		{
			name:       "upper case extension",
			path:       filepath.Join("uploaded", "Report.PDF"),
			wantTitle:  "Report",
			wantType:   "pdf",
			wantDir:    "uploaded",
			wantSource: "Report.PDF",
		},
		{
			name:       "multiple dots",
			path:       filepath.Join("docs", "notes.v2.txt"),
			wantTitle:  "notes.v2",
			wantType:   "txt",
			wantDir:    "docs",
			wantSource: "notes.v2.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(tt.path)
			assert.Equal(t, tt.wantTitle, doc.Title)
			assert.Equal(t, tt.wantType, doc.SourceType)
			assert.Equal(t, tt.wantDir, doc.SourceDir)
			assert.Equal(t, tt.wantSource, doc.Source())
			assert.Equal(t, tt.path, doc.SourcePath)
		})
	}
}

func TestDocument_IsPDF(t *testing.T) {
	assert.True(t, NewDocument("a/b.pdf").IsPDF())
	assert.True(t, NewDocument("a/b.Pdf").IsPDF())
	assert.False(t, NewDocument("a/b.md").IsPDF())
}
