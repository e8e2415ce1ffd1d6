// Package matcher decides whether a PDF's extracted text contains a term.
package matcher

import (
	"context"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/jonathan/pdf-scanner/internal/extract"
)

// ErrorSink receives per-file failures.
type ErrorSink interface {
	Record(path string, err error)
}

// Matcher performs a case-insensitive substring search over page text.
type Matcher struct {
	opener extract.Opener
	fsys   billy.Filesystem
	term   string
	sink   ErrorSink
}

// New returns a Matcher for term. The term is lower-cased once here.
func New(opener extract.Opener, fsys billy.Filesystem, term string, sink ErrorSink) *Matcher {
	return &Matcher{
		opener: opener,
		fsys:   fsys,
		term:   strings.ToLower(term),
		sink:   sink,
	}
}

// Match reports whether any page of path contains the term. Pages are read
// in order and the first hit stops the scan. Failures are sent to the sink
// and count as no match.
func (m *Matcher) Match(path string) bool {
	found, err := m.search(path)
	if err != nil {
		if m.sink != nil {
			m.sink.Record(path, err)
		}
		return false
	}
	return found
}

func (m *Matcher) search(path string) (bool, error) {
	doc, err := m.opener.Open(m.fsys, path)
	if err != nil {
		return false, err
	}
	defer func() { _ = doc.Close() }()

	pages, err := doc.NumPage()
	if err != nil {
		return false, err
	}
	for n := 1; n <= pages; n++ {
		text, err := doc.PageText(n)
		if err != nil {
			return false, err
		}
		if strings.Contains(strings.ToLower(text), m.term) {
			return true, nil
		}
	}
	return false, nil
}

// MatchChunk runs Match over every path in chunk, in order, and returns the
// matching paths. It stops early with ctx.Err() if ctx is cancelled.
func (m *Matcher) MatchChunk(ctx context.Context, chunk []string) ([]string, error) {
	var matches []string
	for _, path := range chunk {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.Match(path) {
			matches = append(matches, path)
		}
	}
	return matches, nil
}
