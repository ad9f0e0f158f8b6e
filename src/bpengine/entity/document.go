package entity

import (
	"fmt"
	"sort"
	"strconv"

	"go.lsp.dev/uri"
)

// MarkerID identifies a range marker (a highlighter) kept up to date by its document.
type MarkerID uint64

// DocumentChangeEvent describes a single replacement applied to a document.
type DocumentChangeEvent struct {
	URI       uri.URI
	Offset    int
	OldLength int
	NewLength int
	// Stamp is the modification stamp after the change.
	Stamp int64
}

// Document is a live, mutable text buffer.
type Document interface {
	URI() uri.URI
	// ModificationStamp increases with every change.
	ModificationStamp() int64
	// Snapshot returns an immutable view of the current text.
	Snapshot() DocumentSnapshot
	LineCount() int
	LineStartOffset(line int) (int, error)
	LineEndOffset(line int) (int, error)
	LineNumber(offset int) (int, error)
	// Subscribe registers a listener invoked synchronously after each change.
	Subscribe(listener func(DocumentChangeEvent)) (unsubscribe func())

	CreateMarker(r TextRange) (MarkerID, error)
	// Marker returns the current range of a marker and false once it became invalid or was disposed.
	Marker(id MarkerID) (TextRange, bool)
	DisposeMarker(id MarkerID)
}

// DocumentSnapshot is an immutable copy of a document's text with its line table.
type DocumentSnapshot struct {
	URI   uri.URI
	Stamp int64
	Text  string

	lineStarts []int
}

// NewDocumentSnapshot builds a snapshot. lineStarts holds the offset of each line start; the first entry is 0.
func NewDocumentSnapshot(u uri.URI, stamp int64, text string, lineStarts []int) DocumentSnapshot {
	if len(lineStarts) == 0 {
		lineStarts = []int{0}
	}
	return DocumentSnapshot{
		URI:        u,
		Stamp:      stamp,
		Text:       text,
		lineStarts: lineStarts,
	}
}

// LineCount returns the number of lines, counting a trailing empty line after a final newline.
func (s DocumentSnapshot) LineCount() int {
	return len(s.lineStarts)
}

// LineStartOffset returns the offset of the first character of the line.
func (s DocumentSnapshot) LineStartOffset(line int) (int, error) {
	if line < 0 || line >= len(s.lineStarts) {
		return 0, fmt.Errorf("line %d out of range 0-%d", line, len(s.lineStarts)-1)
	}
	return s.lineStarts[line], nil
}

// LineEndOffset returns the offset just past the last character of the line, excluding the line terminator.
func (s DocumentSnapshot) LineEndOffset(line int) (int, error) {
	if line < 0 || line >= len(s.lineStarts) {
		return 0, fmt.Errorf("line %d out of range 0-%d", line, len(s.lineStarts)-1)
	}
	end := len(s.Text)
	if line+1 < len(s.lineStarts) {
		end = s.lineStarts[line+1] - 1
		if end > s.lineStarts[line] && s.Text[end-1] == '\r' {
			end--
		}
	}
	return end, nil
}

// LineText returns the text of the line without its terminator.
func (s DocumentSnapshot) LineText(line int) (string, error) {
	start, err := s.LineStartOffset(line)
	if err != nil {
		return "", err
	}
	end, err := s.LineEndOffset(line)
	if err != nil {
		return "", err
	}
	return s.Text[start:end], nil
}

// LineNumber returns the 0-based line containing the offset.
func (s DocumentSnapshot) LineNumber(offset int) (int, error) {
	if offset < 0 || offset > len(s.Text) {
		return 0, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(s.Text))
	}
	return sort.Search(len(s.lineStarts), func(i int) bool {
		return offset < s.lineStarts[i]
	}) - 1, nil
}

// DocumentLineKey is the coalescing key of an update request. A nil Line means the whole document.
type DocumentLineKey struct {
	URI  uri.URI
	Line *int
}

// NewDocumentKey returns a key covering the whole document.
func NewDocumentKey(u uri.URI) DocumentLineKey {
	return DocumentLineKey{URI: u}
}

// NewLineKey returns a key covering a single line.
func NewLineKey(u uri.URI, line int) DocumentLineKey {
	return DocumentLineKey{URI: u, Line: &line}
}

// String implements fmt.Stringer, and is used as the merge queue key.
func (k DocumentLineKey) String() string {
	if k.Line == nil {
		return string(k.URI)
	}
	return string(k.URI) + "#" + strconv.Itoa(*k.Line)
}
