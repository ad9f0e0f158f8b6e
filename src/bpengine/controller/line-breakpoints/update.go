package linebreakpoints

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gofrs/uuid"
	"github.com/uber/bp-engine/src/bpengine/entity"
	bperrors "github.com/uber/bp-engine/src/bpengine/internal/errors"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func (c *controller) QueueUpdate(key entity.DocumentLineKey) {
	c.queue.Queue(key.String(), func(ctx context.Context) {
		c.runUpdate(ctx, key)
	})
}

func (c *controller) QueueUpdateNow(key entity.DocumentLineKey) <-chan struct{} {
	return c.queue.QueueNow(key.String(), func(ctx context.Context) {
		c.runUpdate(ctx, key)
	})
}

func (c *controller) Flush(ctx context.Context) error {
	return c.queue.Flush(ctx)
}

// runUpdate executes on the queue worker. A closed document or engine aborts silently.
func (c *controller) runUpdate(ctx context.Context, key entity.DocumentLineKey) {
	if ctx.Err() != nil {
		return
	}
	if _, err := c.documents.Get(ctx, key.URI); err != nil {
		c.logger.Debugw("skipping update of closed document", "key", key.String())
		return
	}

	if err := c.CleanUp(ctx, key.URI); err != nil {
		c.logger.Warnw("breakpoint clean-up failed", "file", key.URI, zap.Error(err))
	}

	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()
	if handler == nil {
		return
	}

	if err := handler.OnLinesUpdated(ctx, key); err != nil {
		var disposed *bperrors.DisposedError
		var notFound *bperrors.DocumentNotFoundError
		if ctx.Err() != nil || errors.As(err, &disposed) || errors.As(err, &notFound) {
			return
		}
		c.logger.Warnw("breakpoint update failed", "key", key.String(), zap.Error(err))
	}
}

func (c *controller) CleanUp(ctx context.Context, u uri.URI) error {
	doc, err := c.documents.Get(ctx, u)
	if err != nil {
		return nil
	}
	snapshot := doc.Snapshot()

	c.mu.Lock()
	entries := append([]*entry(nil), c.byFile[u]...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	var invalid, duplicates []uuid.UUID
	survivors := make(map[string]uuid.UUID)
	for _, e := range entries {
		if e.doc != nil && e.lineMarker != 0 {
			if _, ok := e.doc.Marker(e.lineMarker); !ok {
				invalid = append(invalid, e.bp.ID)
				continue
			}
		}
		key := c.groupKey(e.bp.TypeID, e.bp.Line, e.bp.HighlightRange, snapshot)
		if first, ok := survivors[key]; ok {
			c.logger.Infow("removing duplicate breakpoint", "id", e.bp.ID, "kept", first, "file", u, "line", e.bp.Line)
			duplicates = append(duplicates, e.bp.ID)
			continue
		}
		survivors[key] = e.bp.ID
	}
	c.mu.Unlock()

	var result error
	for _, id := range append(invalid, duplicates...) {
		if err := c.RemoveBreakpoint(ctx, id); err != nil {
			if _, ok := bperrors.NotFoundBreakpoint(err); ok {
				continue
			}
			result = multierr.Append(result, err)
		}
	}
	c.stats.Counter("cleanup_invalid").Inc(int64(len(invalid)))
	c.stats.Counter("cleanup_duplicates").Inc(int64(len(duplicates)))
	return result
}

// groupKey is the identity used for duplicate detection. With inline breakpoints several breakpoints
// may share a line as long as they differ in type or highlight start.
func (c *controller) groupKey(typeID string, line int, r *entity.TextRange, doc entity.DocumentSnapshot) string {
	if !c.inline {
		return fmt.Sprintf("%d", line)
	}
	start := -1
	if r != nil {
		start = r.Start
	} else if offset, err := doc.LineStartOffset(line); err == nil {
		start = offset
	}
	return fmt.Sprintf("%s|%d|%d", typeID, line, start)
}

// DocumentOpened attaches markers to the breakpoints of the document.
func (c *controller) DocumentOpened(ctx context.Context, doc entity.Document) {
	c.mu.Lock()
	for _, e := range c.byFile[doc.URI()] {
		c.detachLocked(e)
		c.attachLocked(e, doc)
	}
	c.mu.Unlock()

	c.QueueUpdate(entity.NewDocumentKey(doc.URI()))
}

// DocumentChanged refreshes the line and highlight range of every breakpoint in the edited document from
// its markers, then schedules an update of the document.
func (c *controller) DocumentChanged(event entity.DocumentChangeEvent) {
	var moved []entity.Breakpoint

	c.mu.Lock()
	for _, e := range c.byFile[event.URI] {
		if e.doc == nil || e.lineMarker == 0 {
			continue
		}
		r, ok := e.doc.Marker(e.lineMarker)
		if !ok {
			continue
		}
		line, err := e.doc.LineNumber(r.Start)
		if err != nil {
			continue
		}
		changed := line != e.bp.Line
		e.bp.Line = line
		if e.rangeMarker != 0 {
			if hr, ok := e.doc.Marker(e.rangeMarker); ok && (e.bp.HighlightRange == nil || *e.bp.HighlightRange != hr) {
				e.bp.HighlightRange = &hr
				changed = true
			}
		}
		if changed {
			moved = append(moved, e.bp.Clone())
		}
	}
	c.mu.Unlock()

	for _, bp := range moved {
		c.fire(entity.BreakpointChanged, bp)
	}
	c.QueueUpdate(entity.NewDocumentKey(event.URI))
}

// DocumentClosed releases the markers of the document's breakpoints. The breakpoints stay registered.
func (c *controller) DocumentClosed(ctx context.Context, u uri.URI) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.byFile[u] {
		c.detachLocked(e)
	}
}
