// Package document keeps the documents open in the editor.
package document

import (
	"context"
	"sort"
	"sync"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Observer is notified of document lifecycle events. Calls are synchronous, on the editing goroutine.
type Observer interface {
	DocumentOpened(ctx context.Context, doc entity.Document)
	DocumentChanged(event entity.DocumentChangeEvent)
	DocumentClosed(ctx context.Context, u uri.URI)
}

// Repository is an entity-scoped repository of open documents.
type Repository interface {
	// Open registers a document, or replaces the text of one already open.
	Open(ctx context.Context, u uri.URI, text string) (entity.Document, error)
	Get(ctx context.Context, u uri.URI) (entity.Document, error)
	// Change applies incremental LSP edits.
	Change(ctx context.Context, u uri.URI, changes []protocol.TextDocumentContentChangeEvent) (stamp int64, err error)
	// Replace substitutes a byte range.
	Replace(ctx context.Context, u uri.URI, start, end int, text string) (stamp int64, err error)
	// SetText replaces the whole content, diffing it against the current one.
	SetText(ctx context.Context, u uri.URI, text string) (stamp int64, err error)
	Close(ctx context.Context, u uri.URI) error
	// URIs returns every open document, sorted.
	URIs(ctx context.Context) []uri.URI
	AddObserver(o Observer)
}

type repository struct {
	mu        sync.RWMutex
	documents map[uri.URI]*entry
	observers []Observer
	stats     tally.Scope
}

type entry struct {
	doc         *Document
	unsubscribe func()
}

// New returns a repository of in-memory documents.
func New(stats tally.Scope) Repository {
	return &repository{
		documents: make(map[uri.URI]*entry),
		stats:     stats,
	}
}

func (r *repository) Open(ctx context.Context, u uri.URI, text string) (entity.Document, error) {
	r.mu.Lock()
	if e, ok := r.documents[u]; ok {
		r.mu.Unlock()
		if err := e.doc.SetText(text); err != nil {
			return nil, err
		}
		return e.doc, nil
	}

	doc := NewDocument(u, text)
	e := &entry{doc: doc}
	e.unsubscribe = doc.Subscribe(r.onChange)
	r.documents[u] = e
	r.stats.Gauge("open_documents").Update(float64(len(r.documents)))
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	for _, o := range observers {
		o.DocumentOpened(ctx, doc)
	}
	return doc, nil
}

func (r *repository) Get(ctx context.Context, u uri.URI) (entity.Document, error) {
	doc, err := r.get(u)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *repository) Change(ctx context.Context, u uri.URI, changes []protocol.TextDocumentContentChangeEvent) (int64, error) {
	doc, err := r.get(u)
	if err != nil {
		return 0, err
	}
	if err := doc.ApplyContentChanges(changes); err != nil {
		return 0, err
	}
	return doc.ModificationStamp(), nil
}

func (r *repository) Replace(ctx context.Context, u uri.URI, start, end int, text string) (int64, error) {
	doc, err := r.get(u)
	if err != nil {
		return 0, err
	}
	if err := doc.Replace(start, end, text); err != nil {
		return 0, err
	}
	return doc.ModificationStamp(), nil
}

func (r *repository) SetText(ctx context.Context, u uri.URI, text string) (int64, error) {
	doc, err := r.get(u)
	if err != nil {
		return 0, err
	}
	if err := doc.SetText(text); err != nil {
		return 0, err
	}
	return doc.ModificationStamp(), nil
}

func (r *repository) Close(ctx context.Context, u uri.URI) error {
	r.mu.Lock()
	e, ok := r.documents[u]
	if !ok {
		r.mu.Unlock()
		return &errors.DocumentNotFoundError{URI: u}
	}
	delete(r.documents, u)
	r.stats.Gauge("open_documents").Update(float64(len(r.documents)))
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	e.unsubscribe()
	for _, o := range observers {
		o.DocumentClosed(ctx, u)
	}
	e.doc.Dispose()
	return nil
}

func (r *repository) URIs(ctx context.Context) []uri.URI {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]uri.URI, 0, len(r.documents))
	for u := range r.documents {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (r *repository) AddObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

func (r *repository) get(u uri.URI) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.documents[u]
	if !ok {
		return nil, &errors.DocumentNotFoundError{URI: u}
	}
	return e.doc, nil
}

func (r *repository) onChange(event entity.DocumentChangeEvent) {
	r.stats.Counter("changes").Inc(1)

	r.mu.RLock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.RUnlock()

	for _, o := range observers {
		o.DocumentChanged(event)
	}
}
