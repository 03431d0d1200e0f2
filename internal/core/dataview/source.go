package dataview

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source delivers data views to a host. LoadMore extends the current view
// with the next segment of rows; callers must not issue it while a previous
// request is outstanding.
type Source interface {
	Load(ctx context.Context) (*DataView, error)
	LoadMore(ctx context.Context) (*DataView, error)
}

// Decode parses a data view from YAML or JSON bytes.
func Decode(data []byte) (*DataView, error) {
	var v DataView
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse data view: %w", err)
	}
	return &v, nil
}

// ReadFile loads a full data view from disk.
func ReadFile(path string) (*DataView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data view: %w", err)
	}
	return Decode(data)
}

// FileSource serves a data view file in pages of PageSize rows. A PageSize
// of zero serves every row at once.
type FileSource struct {
	path     string
	pageSize int

	mu     sync.Mutex
	full   *DataView
	loaded int
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a paged source for the file at path.
func NewFileSource(path string, pageSize int) *FileSource {
	return &FileSource{path: path, pageSize: max(pageSize, 0)}
}

// Path returns the file backing the source.
func (s *FileSource) Path() string {
	return s.path
}

// Load re-reads the file and returns a view with at least one page of rows.
// Rows already delivered by LoadMore stay delivered.
func (s *FileSource) Load(ctx context.Context) (*DataView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full, err := ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.full = full
	s.loaded = max(s.loaded, s.pageSize)
	return s.window(), nil
}

// LoadMore extends the delivered rows by one page.
func (s *FileSource) LoadMore(ctx context.Context) (*DataView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.full == nil {
		return nil, fmt.Errorf("load more: source not loaded")
	}

	s.loaded += s.pageSize
	return s.window(), nil
}

// window returns a copy of the full view truncated to the loaded rows.
func (s *FileSource) window() *DataView {
	total := 0
	if cat := s.full.Category(); cat != nil {
		total = cat.Len()
	}

	n := total
	if s.pageSize > 0 && s.loaded < total {
		n = s.loaded
	}

	out := &DataView{
		Metadata: s.full.Metadata,
		Values:   make([]Series, len(s.full.Values)),
	}
	out.Metadata.Segment = n < total

	out.Categories = make([]CategoryColumn, len(s.full.Categories))
	for i, c := range s.full.Categories {
		out.Categories[i] = CategoryColumn{
			Source:         c.Source,
			Values:         head(c.Values, n),
			Identity:       head(c.Identity, n),
			IdentityFields: c.IdentityFields,
			Objects:        head(c.Objects, n),
		}
	}

	for i, sr := range s.full.Values {
		out.Values[i] = Series{
			Source:     sr.Source,
			Values:     head(sr.Values, n),
			Highlights: head(sr.Highlights, n),
		}
	}

	return out
}

// head returns the first n items, preserving nil-ness of the input.
func head[T any](items []T, n int) []T {
	if items == nil {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n:n]
}
