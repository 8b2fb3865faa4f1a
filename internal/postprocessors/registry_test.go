package postprocessors

import (
	"errors"
	"reflect"
	"testing"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// registryMockChunker is a simple mock for testing registry functionality.
type registryMockChunker struct {
	name string
	size int
}

func (m *registryMockChunker) Name() string { return m.name }
func (m *registryMockChunker) Chunk(text string) []string { return []string{text} }

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Build_PassesSize(t *testing.T) {
	r := NewRegistry()
	r.Register("test", func(size int) (driven.Chunker, error) {
		return &registryMockChunker{name: "test", size: size}, nil
	})

	c, err := r.Build("test", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.(*registryMockChunker).size; got != 42 {
		t.Errorf("expected size 42, got %d", got)
	}
}

func TestRegistry_Build_UnknownStrategy(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Build("sentences", 100)
	if !errors.Is(err, domain.ErrInvalidStrategy) {
		t.Errorf("expected ErrInvalidStrategy, got %v", err)
	}
}

func TestRegistry_Build_InvalidSize(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Build("fixed", 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewDefaultRegistry()

	want := []string{"fixed", "markdown", "markdown-smart"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		c, err := r.Build(name, 500)
		if err != nil {
			t.Fatalf("Build(%q) error: %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("Build(%q) returned chunker named %q", name, c.Name())
		}
	}
}
