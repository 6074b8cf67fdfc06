// Package patch replaces the section of a document delimited by two
// literal markers, leaving every other byte untouched.
package patch

import (
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

// ErrEmptyMarker is returned when a marker is the empty string, which would match anywhere.
var ErrEmptyMarker = &domain.ConfigError{Key: "marker", Reason: "markers must not be empty"}

// Span is the byte range strictly between the two markers.
type Span struct {
	From int
	To   int
}

// Locate finds the first start marker and the first end marker after it.
func Locate(text, start, end string) (Span, error) {
	if start == "" || end == "" {
		return Span{}, ErrEmptyMarker
	}
	s := strings.Index(text, start)
	if s < 0 {
		return Span{}, &domain.MarkerNotFoundError{Marker: start, Which: "start"}
	}
	from := s + len(start)
	e := strings.Index(text[from:], end)
	if e < 0 {
		return Span{}, &domain.MarkerNotFoundError{Marker: end, Which: "end"}
	}
	return Span{From: from, To: from + e}, nil
}

// Apply returns text with the span between the markers replaced by
// "\n" + replacement + "\n". Nothing is replaced when either marker is missing.
func Apply(text, start, end, replacement string) (string, error) {
	span, err := Locate(text, start, end)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(span.From + len(replacement) + 2 + len(text) - span.To)
	b.WriteString(text[:span.From])
	b.WriteString("\n")
	b.WriteString(replacement)
	b.WriteString("\n")
	b.WriteString(text[span.To:])
	return b.String(), nil
}
