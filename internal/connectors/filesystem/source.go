// Package filesystem lists and watches the files of a local directory.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// Source enumerates ingestible files directly under a directory.
// A file is ingestible when it is a regular file, is not hidden and has an
// extension. Subdirectories are never descended into.
type Source struct{}

// NewSource creates a directory source.
func NewSource() *Source {
	return &Source{}
}

// List returns ingestible file paths sorted by name.
func (s *Source) List(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if !isIngestible(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// isIngestible reports whether a file name looks like a document.
func isIngestible(name string) bool {
	if isHidden(name) {
		return false
	}
	return filepath.Ext(name) != ""
}

// isHidden checks if a file name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ".")
}
