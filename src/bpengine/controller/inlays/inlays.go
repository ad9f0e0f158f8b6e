// Package inlays renders the resolved variants and breakpoints of updated lines through the editor gateway.
package inlays

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	tally "github.com/uber-go/tally/v4"
	linebreakpoints "github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints"
	"github.com/uber/bp-engine/src/bpengine/controller/variants"
	"github.com/uber/bp-engine/src/bpengine/entity"
	editorclient "github.com/uber/bp-engine/src/bpengine/gateway/editor-client"
	bperrors "github.com/uber/bp-engine/src/bpengine/internal/errors"
	protocolmapper "github.com/uber/bp-engine/src/bpengine/internal/protocol"
	"github.com/uber/bp-engine/src/bpengine/mapper"
	"github.com/uber/bp-engine/src/bpengine/model"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	_nameKey = "inlays"

	// _lineConcurrency bounds the lines rendered in parallel for one update.
	_lineConcurrency = 4
)

// Controller draws breakpoint visuals for the lines of each scheduled update.
type Controller interface {
	linebreakpoints.UpdateHandler
	document.Observer

	// RenderedLines returns the lines of a document that currently show inline glyphs, in ascending order.
	RenderedLines(u uri.URI) []int
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Logger      *zap.SugaredLogger
	Stats       tally.Scope
	Breakpoints linebreakpoints.Controller
	Documents   document.Repository
	Resolver    variants.Resolver
	Gateway     editorclient.Gateway
}

type controller struct {
	logger      *zap.SugaredLogger
	stats       tally.Scope
	breakpoints linebreakpoints.Controller
	documents   document.Repository
	resolver    variants.Resolver
	gateway     editorclient.Gateway

	mu       sync.Mutex
	rendered map[uri.URI]map[int]struct{}
}

// New creates the visual layer and installs it as the update handler of the breakpoint registry.
func New(p Params) Controller {
	c := &controller{
		logger:      p.Logger.With("plugin", _nameKey),
		stats:       p.Stats.SubScope("inlays"),
		breakpoints: p.Breakpoints,
		documents:   p.Documents,
		resolver:    p.Resolver,
		gateway:     p.Gateway,
		rendered:    make(map[uri.URI]map[int]struct{}),
	}
	p.Breakpoints.SetUpdateHandler(c)
	p.Documents.AddObserver(c)
	return c
}

func (c *controller) OnLinesUpdated(ctx context.Context, key entity.DocumentLineKey) error {
	doc, err := c.documents.Get(ctx, key.URI)
	if err != nil {
		return err
	}
	snapshot := doc.Snapshot()
	lines := c.linesToUpdate(ctx, key)
	if len(lines) == 0 {
		return nil
	}

	matches, err := c.resolver.Resolve(ctx, doc, lines)
	var stale *bperrors.StaleDocumentError
	if errors.As(err, &stale) || (err == nil && doc.ModificationStamp() != snapshot.Stamp) {
		c.stats.Counter("restarts").Inc(1)
		c.logger.Debugw("document changed while resolving, update queued again", "key", key.String())
		c.breakpoints.QueueUpdate(key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolving variants of %q: %w", key.URI, err)
	}

	positions := protocolmapper.NewTextOffsetMapper([]byte(snapshot.Text))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(_lineConcurrency)
	for _, line := range lines {
		g.Go(func() error {
			return c.renderLine(ctx, snapshot, positions, line, matches[line])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	c.stats.Counter("rendered_lines").Inc(int64(len(lines)))
	return nil
}

// linesToUpdate returns the requested line, or for a whole-document update every breakpoint line and every
// line that still shows glyphs from an earlier pass.
func (c *controller) linesToUpdate(ctx context.Context, key entity.DocumentLineKey) []int {
	if key.Line != nil {
		return []int{*key.Line}
	}

	c.mu.Lock()
	lines := make([]int, 0, len(c.rendered[key.URI]))
	for line := range c.rendered[key.URI] {
		lines = append(lines, line)
	}
	c.mu.Unlock()

	for _, bp := range c.breakpoints.BreakpointsInFile(ctx, key.URI) {
		lines = append(lines, bp.Line)
	}
	slices.Sort(lines)
	return slices.Compact(lines)
}

func (c *controller) renderLine(ctx context.Context, snapshot entity.DocumentSnapshot, positions *protocolmapper.TextOffsetMapper, line int, matches []entity.VariantMatch) error {
	lineStart, err := snapshot.LineStartOffset(line)
	if err != nil {
		c.forget(snapshot.URI, line)
		return nil
	}
	lineEnd, _ := snapshot.LineEndOffset(line)

	if err := c.gateway.RemoveGlyphsInRange(ctx, &model.RemoveGlyphsInRangeParams{
		URI:   snapshot.URI,
		Range: model.TextRange{Start: lineStart, End: lineEnd},
	}); err != nil {
		return err
	}

	placed := false
	if c.breakpoints.InlineBreakpointsEnabled() {
		for _, m := range matches {
			params := &model.PlaceInlineGlyphParams{URI: snapshot.URI, Line: line, Offset: lineStart}
			if m.Variant != nil {
				v := mapper.VariantToModel(*m.Variant)
				params.Variant = &v
				if m.Variant.HighlightRange != nil {
					params.Offset = m.Variant.HighlightRange.Start
				}
			}
			if m.Breakpoint != nil {
				b := mapper.BreakpointToModel(*m.Breakpoint)
				params.Breakpoint = &b
				if m.Variant == nil && m.Breakpoint.HighlightRange != nil {
					params.Offset = m.Breakpoint.HighlightRange.Start
				}
			}
			if params.Position, err = positions.OffsetPosition(params.Offset); err != nil {
				return fmt.Errorf("placing glyph of line %d: %w", line, err)
			}
			if err := c.gateway.PlaceInlineGlyph(ctx, params); err != nil {
				return err
			}
			placed = true
		}
	}
	if placed {
		c.remember(snapshot.URI, line)
	} else {
		c.forget(snapshot.URI, line)
	}

	for _, bp := range c.breakpoints.BreakpointsAtLine(ctx, snapshot.URI, line) {
		if err := c.gateway.PlaceLineHighlighter(ctx, &model.PlaceLineHighlighterParams{
			URI:        snapshot.URI,
			Line:       line,
			Breakpoint: mapper.BreakpointToModel(bp),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *controller) remember(u uri.URI, line int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines, ok := c.rendered[u]
	if !ok {
		lines = make(map[int]struct{})
		c.rendered[u] = lines
	}
	lines[line] = struct{}{}
}

func (c *controller) forget(u uri.URI, line int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.rendered[u], line)
	if len(c.rendered[u]) == 0 {
		delete(c.rendered, u)
	}
}

func (c *controller) RenderedLines(u uri.URI) []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]int, 0, len(c.rendered[u]))
	for line := range c.rendered[u] {
		lines = append(lines, line)
	}
	slices.Sort(lines)
	return lines
}

func (c *controller) DocumentOpened(ctx context.Context, doc entity.Document) {}

func (c *controller) DocumentChanged(event entity.DocumentChangeEvent) {}

func (c *controller) DocumentClosed(ctx context.Context, u uri.URI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rendered, u)
}
