// Package engine implements the row-driven batch-processing core: header
// validation, record mapping, per-row eligibility, template rendering and
// the ordered batch pass itself. The engine is pure; all side effects are
// confined to the action injected into a Processor.
package engine

import (
	"fmt"
	"strings"
)

// ShapeKind identifies why a header row is structurally unusable.
type ShapeKind string

const (
	// ShapeInsufficientHeaders means fewer than two usable headers remain
	// after trimming blanks and collapsing duplicates.
	ShapeInsufficientHeaders ShapeKind = "insufficient_headers"
	// ShapeMissingColumn means a required named column is absent.
	ShapeMissingColumn ShapeKind = "missing_column"
)

// ShapeError reports a structurally unusable header row. It is fatal to the
// whole batch: no row is processed once one is returned.
type ShapeError struct {
	Kind   ShapeKind
	Column string // set for ShapeMissingColumn
}

func (e *ShapeError) Error() string {
	switch e.Kind {
	case ShapeMissingColumn:
		return fmt.Sprintf("required column %q not found in header row", e.Column)
	default:
		return "header row needs at least two unique non-empty headers"
	}
}

// ValidateHeader checks that the header row contains at least two headers
// that are non-empty after trimming and unique among each other. Duplicate
// names collapse in lookups, so they do not count twice.
func ValidateHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		seen[h] = struct{}{}
	}
	if len(seen) < 2 {
		return &ShapeError{Kind: ShapeInsufficientHeaders}
	}
	return nil
}

// RequireColumn returns the 0-based index of the named column. The first
// match wins when a header name is duplicated. Callers resolve every
// required column before the main pass so a missing one aborts the batch
// before any side effect occurs.
func RequireColumn(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, &ShapeError{Kind: ShapeMissingColumn, Column: name}
}
