package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	protocolmapper "github.com/uber/bp-engine/src/bpengine/internal/protocol"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/atomic"
)

// Document is an in-memory text buffer with range markers and change listeners.
type Document struct {
	uri   uri.URI
	stamp atomic.Int64

	mu         sync.RWMutex
	text       string
	mapper     *protocolmapper.TextOffsetMapper
	markers    map[entity.MarkerID]*marker
	nextMarker entity.MarkerID
	listeners  map[int]func(entity.DocumentChangeEvent)
	nextID     int
	disposed   bool
}

var _ entity.Document = (*Document)(nil)

// NewDocument creates a document holding the given text.
func NewDocument(u uri.URI, text string) *Document {
	return &Document{
		uri:       u,
		text:      text,
		mapper:    protocolmapper.NewTextOffsetMapper([]byte(text)),
		markers:   make(map[entity.MarkerID]*marker),
		listeners: make(map[int]func(entity.DocumentChangeEvent)),
	}
}

// URI returns the document's identity.
func (d *Document) URI() uri.URI {
	return d.uri
}

// ModificationStamp returns a counter incremented by every edit.
func (d *Document) ModificationStamp() int64 {
	return d.stamp.Load()
}

// Text returns the current content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Snapshot returns an immutable view of the current content.
func (d *Document) Snapshot() entity.DocumentSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return entity.NewDocumentSnapshot(d.uri, d.stamp.Load(), d.text, d.mapper.LineStarts())
}

func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mapper.LineCount()
}

func (d *Document) LineStartOffset(line int) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mapper.LineStartOffset(line)
}

func (d *Document) LineEndOffset(line int) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mapper.LineEndOffset(line)
}

func (d *Document) LineNumber(offset int) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mapper.LineNumber(offset)
}

// Subscribe registers a listener called synchronously, outside the document lock, after each edit.
func (d *Document) Subscribe(listener func(entity.DocumentChangeEvent)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners[id] = listener
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

// CreateMarker starts tracking a range through edits.
func (d *Document) CreateMarker(r entity.TextRange) (entity.MarkerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return 0, &errors.DisposedError{What: fmt.Sprintf("document %q", d.uri)}
	}
	if r.Start < 0 || r.Start > r.End || r.End > len(d.text) {
		return 0, fmt.Errorf("invalid marker range %s (document length %d)", r, len(d.text))
	}
	d.nextMarker++
	d.markers[d.nextMarker] = &marker{start: r.Start, end: r.End, valid: true}
	return d.nextMarker, nil
}

// Marker returns the current range of a marker, or false once it is invalid or disposed.
func (d *Document) Marker(id entity.MarkerID) (entity.TextRange, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m, ok := d.markers[id]
	if !ok || !m.valid {
		return entity.TextRange{}, false
	}
	return m.textRange(), true
}

// DisposeMarker stops tracking a marker. Unknown ids are ignored.
func (d *Document) DisposeMarker(id entity.MarkerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.markers, id)
}

// Replace substitutes [start, end) with text.
func (d *Document) Replace(start, end int, text string) error {
	event, listeners, err := d.replace(start, end, text)
	if err != nil {
		return err
	}
	notify(listeners, event)
	return nil
}

// ApplyContentChanges applies incremental LSP edits in order, each against the result of the previous one.
func (d *Document) ApplyContentChanges(changes []protocol.TextDocumentContentChangeEvent) error {
	for i, change := range changes {
		d.mu.RLock()
		start, end, err := d.mapper.RangeOffsets(change.Range)
		d.mu.RUnlock()
		if err != nil {
			return fmt.Errorf("unable to apply change %d: %w", i, err)
		}
		if err := d.Replace(start, end, change.Text); err != nil {
			return fmt.Errorf("unable to apply change %d: %w", i, err)
		}
	}
	return nil
}

// SetText replaces the whole content with the minimal set of edits, so markers outside the changed
// regions keep their place.
func (d *Document) SetText(text string) error {
	current := d.Text()
	if current == text {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(current, text, false))
	edits := diffsToEdits(diffs)

	// Apply from the end so earlier offsets remain valid.
	for i := len(edits) - 1; i >= 0; i-- {
		if err := d.Replace(edits[i].start, edits[i].end, edits[i].text); err != nil {
			return err
		}
	}
	return nil
}

// Dispose drops every marker and listener. Later edits fail.
func (d *Document) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disposed = true
	d.markers = make(map[entity.MarkerID]*marker)
	d.listeners = make(map[int]func(entity.DocumentChangeEvent))
}

func (d *Document) replace(start, end int, text string) (entity.DocumentChangeEvent, []func(entity.DocumentChangeEvent), error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return entity.DocumentChangeEvent{}, nil, &errors.DisposedError{What: fmt.Sprintf("document %q", d.uri)}
	}
	if start < 0 || start > end || end > len(d.text) {
		return entity.DocumentChangeEvent{}, nil, fmt.Errorf("invalid replacement range [%d, %d) (document length %d)", start, end, len(d.text))
	}

	d.text = d.text[:start] + text + d.text[end:]
	d.mapper = protocolmapper.NewTextOffsetMapper([]byte(d.text))
	for _, m := range d.markers {
		m.apply(start, end-start, len(text))
	}

	event := entity.DocumentChangeEvent{
		URI:       d.uri,
		Offset:    start,
		OldLength: end - start,
		NewLength: len(text),
		Stamp:     d.stamp.Inc(),
	}

	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]func(entity.DocumentChangeEvent), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, d.listeners[id])
	}
	return event, listeners, nil
}

func notify(listeners []func(entity.DocumentChangeEvent), event entity.DocumentChangeEvent) {
	for _, l := range listeners {
		l(event)
	}
}

type edit struct {
	start, end int
	text       string
}

// diffsToEdits converts diffs into replacements expressed in offsets of the original text.
func diffsToEdits(diffs []diffmatchpatch.Diff) []edit {
	edits := make([]edit, 0, len(diffs))
	offset := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			edits = append(edits, edit{start: offset, end: offset + len(d.Text)})
			offset += len(d.Text)
		case diffmatchpatch.DiffEqual:
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			// Merge a delete directly followed by an insert into one replacement.
			if n := len(edits); n > 0 && edits[n-1].end == offset && edits[n-1].text == "" {
				edits[n-1].text = d.Text
				continue
			}
			edits = append(edits, edit{start: offset, end: offset, text: d.Text})
		}
	}
	return edits
}
