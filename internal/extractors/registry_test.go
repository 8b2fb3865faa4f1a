package extractors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

type stubExtractor struct {
	name string
	exts []string
}

func (s *stubExtractor) Name() string { return s.name }
func (s *stubExtractor) SupportedExtensions() []string { return s.exts }
func (s *stubExtractor) Extract(_ context.Context, _ string) ([]domain.Page, error) {
	return []domain.Page{{Text: s.name}}, nil
}

func TestRegistry_For(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubExtractor{name: "text"})
	r.Register(&stubExtractor{name: "pdf", exts: []string{"pdf"}})

	tests := []struct {
		path string
		want string
	}{
		{"a/b.pdf", "pdf"},
		{"a/b.PDF", "pdf"},
		{"a/b.md", "text"},
		{"a/b.csv", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e, err := r.For(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name())
		})
	}
}

func TestRegistry_NoFallback(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubExtractor{name: "pdf", exts: []string{"pdf"}})

	_, err := r.Extract(context.Background(), "notes.txt")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestDefaultRegistry_ReadsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld"), 0o600))

	pages, err := NewDefaultRegistry().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "hello\nworld", pages[0].Text)
}

func TestDefaultRegistry_WrapsExtractorErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o600))

	_, err := NewDefaultRegistry().Extract(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrUndecodable)
	assert.Contains(t, err.Error(), "extractor plaintext")
}
