// Package linebreakpoints owns the registry of line breakpoints and keeps it in sync with edited documents.
package linebreakpoints

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	breakpointtypes "github.com/uber/bp-engine/src/bpengine/controller/breakpoint-types"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/factory"
	"github.com/uber/bp-engine/src/bpengine/internal/clock"
	bperrors "github.com/uber/bp-engine/src/bpengine/internal/errors"
	mergequeue "github.com/uber/bp-engine/src/bpengine/internal/merge-queue"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_nameKey   = "line-breakpoints"
	_configKey = "lineBreakpoints"

	_defaultMergeWindow = 300 * time.Millisecond
)

// Listener receives breakpoint model events. Calls are synchronous and made without holding the registry lock.
type Listener interface {
	OnBreakpointEvent(kind entity.BreakpointEventKind, bp entity.Breakpoint)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(kind entity.BreakpointEventKind, bp entity.Breakpoint)

// OnBreakpointEvent calls f.
func (f ListenerFunc) OnBreakpointEvent(kind entity.BreakpointEventKind, bp entity.Breakpoint) {
	f(kind, bp)
}

// UpdateHandler performs the visual work of a scheduled update, after the clean-up pass.
type UpdateHandler interface {
	OnLinesUpdated(ctx context.Context, key entity.DocumentLineKey) error
}

// Controller is the registry of line breakpoints and its update scheduler.
type Controller interface {
	document.Observer

	// Register adds a breakpoint. With initializeVisualsNow the call returns once its visuals were produced.
	Register(ctx context.Context, bp entity.Breakpoint, initializeVisualsNow bool) error
	// Unregister removes a breakpoint without notifying listeners. Unknown ids are a no-op returning false.
	Unregister(ctx context.Context, id uuid.UUID) bool

	AddBreakpoint(ctx context.Context, req entity.BreakpointRequest) (entity.Breakpoint, error)
	RemoveBreakpoint(ctx context.Context, id uuid.UUID) error
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (entity.Breakpoint, error)
	SetCondition(ctx context.Context, id uuid.UUID, condition string) (entity.Breakpoint, error)
	SetLine(ctx context.Context, id uuid.UUID, line int) (entity.Breakpoint, error)
	SetFile(ctx context.Context, id uuid.UUID, u uri.URI, line int) (entity.Breakpoint, error)

	Breakpoint(ctx context.Context, id uuid.UUID) (entity.Breakpoint, error)
	Breakpoints(ctx context.Context) []entity.Breakpoint
	BreakpointsInFile(ctx context.Context, u uri.URI) []entity.Breakpoint
	BreakpointsAtLine(ctx context.Context, u uri.URI, line int) []entity.Breakpoint

	// QueueUpdate schedules an update that is merged with other requests for the same key.
	QueueUpdate(key entity.DocumentLineKey)
	// QueueUpdateNow schedules an update without waiting for the merge window.
	QueueUpdateNow(key entity.DocumentLineKey) <-chan struct{}
	// Flush runs every pending update.
	Flush(ctx context.Context) error
	// CleanUp drops breakpoints whose line was deleted and prunes duplicates.
	CleanUp(ctx context.Context, u uri.URI) error
	// FileRemoved drops every breakpoint of a deleted file.
	FileRemoved(ctx context.Context, u uri.URI) error

	AddListener(l Listener)
	SetUpdateHandler(h UpdateHandler)
	InlineBreakpointsEnabled() bool
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Documents document.Repository
	Types     breakpointtypes.Registry
	Clock     clock.Clock `optional:"true"`
}

// Config is the lineBreakpoints section of the configuration.
type Config struct {
	MergeWindow       time.Duration `yaml:"mergeWindow"`
	InlineBreakpoints bool          `yaml:"inlineBreakpoints"`
}

type controller struct {
	logger    *zap.SugaredLogger
	stats     tally.Scope
	documents document.Repository
	types     breakpointtypes.Registry
	queue     *mergequeue.Queue
	inline    bool

	mu        sync.Mutex
	byFile    map[uri.URI][]*entry
	byID      map[uuid.UUID]*entry
	seq       uint64
	listeners []Listener
	handler   UpdateHandler
}

// entry is a registered breakpoint with the markers tracking it in its open document.
type entry struct {
	bp          entity.Breakpoint
	seq         uint64
	doc         entity.Document
	lineMarker  entity.MarkerID
	rangeMarker entity.MarkerID
}

// New creates the breakpoint registry and subscribes it to document events.
func New(p Params) (Controller, error) {
	cfg := Config{
		MergeWindow:       _defaultMergeWindow,
		InlineBreakpoints: true,
	}
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", _configKey, err)
	}

	logger := p.Logger.With("plugin", _nameKey)
	stats := p.Stats.SubScope("line_breakpoints")
	opts := []mergequeue.Option{
		mergequeue.WithLogger(logger),
		mergequeue.WithStats(stats.SubScope("queue")),
	}
	if p.Clock != nil {
		opts = append(opts, mergequeue.WithClock(p.Clock))
	}

	c := &controller{
		logger:    logger,
		stats:     stats,
		documents: p.Documents,
		types:     p.Types,
		queue:     mergequeue.New(_nameKey, cfg.MergeWindow, opts...),
		inline:    cfg.InlineBreakpoints,
		byFile:    make(map[uri.URI][]*entry),
		byID:      make(map[uuid.UUID]*entry),
	}
	p.Documents.AddObserver(c)

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			c.queue.Close()
			return nil
		},
	})

	logger.Infow("line breakpoints initialized", "mergeWindow", cfg.MergeWindow, "inlineBreakpoints", cfg.InlineBreakpoints)
	return c, nil
}

func (c *controller) InlineBreakpointsEnabled() bool {
	return c.inline
}

func (c *controller) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *controller) SetUpdateHandler(h UpdateHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

func (c *controller) Register(ctx context.Context, bp entity.Breakpoint, initializeVisualsNow bool) error {
	c.mu.Lock()
	if _, ok := c.byID[bp.ID]; ok {
		c.mu.Unlock()
		return fmt.Errorf("breakpoint %q already registered", bp.ID)
	}
	c.seq++
	e := &entry{bp: bp.Clone(), seq: c.seq}
	if doc, err := c.documents.Get(ctx, bp.FileURL); err == nil {
		c.attachLocked(e, doc)
	}
	c.byID[bp.ID] = e
	c.byFile[bp.FileURL] = append(c.byFile[bp.FileURL], e)
	c.stats.Gauge("registered").Update(float64(len(c.byID)))
	snapshot := e.bp.Clone()
	c.mu.Unlock()

	c.fire(entity.BreakpointAdded, snapshot)

	if !initializeVisualsNow {
		c.QueueUpdate(entity.NewLineKey(bp.FileURL, bp.Line))
		return nil
	}
	select {
	case <-c.QueueUpdateNow(entity.NewDocumentKey(bp.FileURL)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *controller) Unregister(ctx context.Context, id uuid.UUID) bool {
	c.mu.Lock()
	e, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		c.logger.Debugw("unregister of unknown breakpoint ignored", "id", id)
		return false
	}
	c.removeLocked(e)
	key := entity.NewLineKey(e.bp.FileURL, e.bp.Line)
	c.mu.Unlock()

	c.QueueUpdate(key)
	return true
}

func (c *controller) AddBreakpoint(ctx context.Context, req entity.BreakpointRequest) (entity.Breakpoint, error) {
	bpType, err := c.types.Get(req.TypeID)
	if err != nil {
		return entity.Breakpoint{}, err
	}

	invalid := &bperrors.InvalidPlacementError{TypeID: req.TypeID, URI: req.FileURL, Line: req.Line}
	if req.Line < 0 {
		return entity.Breakpoint{}, invalid
	}
	if doc, err := c.documents.Get(ctx, req.FileURL); err == nil {
		snapshot := doc.Snapshot()
		if req.Line >= snapshot.LineCount() {
			return entity.Breakpoint{}, invalid
		}
		ok, err := bpType.CanPlaceAt(ctx, snapshot, req.Line)
		if err != nil {
			return entity.Breakpoint{}, fmt.Errorf("checking placement of %q: %w", req.TypeID, err)
		}
		if !ok {
			return entity.Breakpoint{}, invalid
		}
		if existing, ok := c.findSame(req, snapshot); ok {
			c.logger.Debugw("breakpoint already exists", "id", existing.ID, "type", req.TypeID, "line", req.Line)
			return existing, nil
		}
	}

	suspend := req.SuspendPolicy
	if suspend == entity.SuspendThread && !bpType.SupportsSuspendThread() {
		suspend = entity.SuspendAll
	}

	bp := entity.Breakpoint{
		ID:             factory.UUID(),
		TypeID:         req.TypeID,
		FileURL:        req.FileURL,
		Line:           req.Line,
		Properties:     req.Properties,
		Enabled:        true,
		SuspendPolicy:  suspend,
		Condition:      req.Condition,
		LogExpression:  req.LogExpression,
		Temporary:      req.Temporary,
		HighlightRange: req.HighlightRange,
		Group:          req.Group,
		Description:    req.Description,
	}
	if err := c.Register(ctx, bp, true); err != nil {
		return entity.Breakpoint{}, err
	}
	return bp.Clone(), nil
}

// findSame returns a registered breakpoint the clean-up pass would consider a duplicate of the request.
func (c *controller) findSame(req entity.BreakpointRequest, doc entity.DocumentSnapshot) (entity.Breakpoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	want := c.groupKey(req.TypeID, req.Line, req.HighlightRange, doc)
	for _, e := range c.byFile[req.FileURL] {
		if e.bp.Line == req.Line && c.groupKey(e.bp.TypeID, e.bp.Line, e.bp.HighlightRange, doc) == want {
			return e.bp.Clone(), true
		}
	}
	return entity.Breakpoint{}, false
}

func (c *controller) RemoveBreakpoint(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	e, ok := c.byID[id]
	var snapshot entity.Breakpoint
	if ok {
		snapshot = e.bp.Clone()
	}
	c.mu.Unlock()

	if !ok || !c.Unregister(ctx, id) {
		return &bperrors.BreakpointNotFoundError{ID: id}
	}
	c.fire(entity.BreakpointRemoved, snapshot)
	return nil
}

func (c *controller) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (entity.Breakpoint, error) {
	return c.update(ctx, id, func(e *entry) bool {
		if e.bp.Enabled == enabled {
			return false
		}
		e.bp.Enabled = enabled
		return true
	})
}

func (c *controller) SetCondition(ctx context.Context, id uuid.UUID, condition string) (entity.Breakpoint, error) {
	return c.update(ctx, id, func(e *entry) bool {
		if e.bp.Condition == condition {
			return false
		}
		e.bp.Condition = condition
		return true
	})
}

func (c *controller) SetLine(ctx context.Context, id uuid.UUID, line int) (entity.Breakpoint, error) {
	c.mu.Lock()
	e, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		return entity.Breakpoint{}, &bperrors.BreakpointNotFoundError{ID: id}
	}
	u := e.bp.FileURL
	c.mu.Unlock()

	return c.SetFile(ctx, id, u, line)
}

func (c *controller) SetFile(ctx context.Context, id uuid.UUID, u uri.URI, line int) (entity.Breakpoint, error) {
	doc, docErr := c.documents.Get(ctx, u)
	outOfRange := line < 0 || (docErr == nil && line >= doc.LineCount())

	c.mu.Lock()
	e, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		return entity.Breakpoint{}, &bperrors.BreakpointNotFoundError{ID: id}
	}
	if outOfRange {
		typeID := e.bp.TypeID
		c.mu.Unlock()
		return entity.Breakpoint{}, &bperrors.InvalidPlacementError{TypeID: typeID, URI: u, Line: line}
	}
	oldKey := entity.NewLineKey(e.bp.FileURL, e.bp.Line)
	if e.bp.FileURL == u && e.bp.Line == line {
		snapshot := e.bp.Clone()
		c.mu.Unlock()
		return snapshot, nil
	}

	c.detachLocked(e)
	if e.bp.FileURL != u {
		c.byFile[e.bp.FileURL] = without(c.byFile[e.bp.FileURL], e)
		if len(c.byFile[e.bp.FileURL]) == 0 {
			delete(c.byFile, e.bp.FileURL)
		}
		c.byFile[u] = append(c.byFile[u], e)
		e.bp.FileURL = u
	}
	e.bp.Line = line
	e.bp.HighlightRange = nil
	if docErr == nil {
		c.attachLocked(e, doc)
	}
	snapshot := e.bp.Clone()
	c.mu.Unlock()

	c.fire(entity.BreakpointChanged, snapshot)
	c.QueueUpdate(oldKey)
	c.QueueUpdate(entity.NewLineKey(u, line))
	return snapshot, nil
}

// update applies a change to a breakpoint's attributes, firing BreakpointChanged when it reports a change.
func (c *controller) update(ctx context.Context, id uuid.UUID, change func(e *entry) bool) (entity.Breakpoint, error) {
	c.mu.Lock()
	e, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		return entity.Breakpoint{}, &bperrors.BreakpointNotFoundError{ID: id}
	}
	changed := change(e)
	snapshot := e.bp.Clone()
	c.mu.Unlock()

	if changed {
		c.fire(entity.BreakpointChanged, snapshot)
		c.QueueUpdate(entity.NewLineKey(snapshot.FileURL, snapshot.Line))
	}
	return snapshot, nil
}

func (c *controller) Breakpoint(ctx context.Context, id uuid.UUID) (entity.Breakpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byID[id]
	if !ok {
		return entity.Breakpoint{}, &bperrors.BreakpointNotFoundError{ID: id}
	}
	return e.bp.Clone(), nil
}

func (c *controller) Breakpoints(ctx context.Context) []entity.Breakpoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]entity.Breakpoint, 0, len(c.byID))
	for _, e := range c.byID {
		result = append(result, e.bp.Clone())
	}
	sortBreakpoints(result)
	return result
}

func (c *controller) BreakpointsInFile(ctx context.Context, u uri.URI) []entity.Breakpoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]entity.Breakpoint, 0, len(c.byFile[u]))
	for _, e := range c.byFile[u] {
		result = append(result, e.bp.Clone())
	}
	sortBreakpoints(result)
	return result
}

func (c *controller) BreakpointsAtLine(ctx context.Context, u uri.URI, line int) []entity.Breakpoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result []entity.Breakpoint
	for _, e := range c.byFile[u] {
		if e.bp.Line == line {
			result = append(result, e.bp.Clone())
		}
	}
	return result
}

func (c *controller) FileRemoved(ctx context.Context, u uri.URI) error {
	c.mu.Lock()
	ids := make([]uuid.UUID, 0, len(c.byFile[u]))
	for _, e := range c.byFile[u] {
		ids = append(ids, e.bp.ID)
	}
	c.mu.Unlock()

	var err error
	for _, id := range ids {
		err = multierr.Append(err, c.RemoveBreakpoint(ctx, id))
	}
	if len(ids) > 0 {
		c.logger.Infow("removed breakpoints of deleted file", "file", u, "count", len(ids))
	}
	return err
}

func (c *controller) fire(kind entity.BreakpointEventKind, bp entity.Breakpoint) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.OnBreakpointEvent(kind, bp.Clone())
	}
}

// attachLocked creates the markers tracking the breakpoint's line and highlight range in doc.
func (c *controller) attachLocked(e *entry, doc entity.Document) {
	e.doc = doc
	start, err := doc.LineStartOffset(e.bp.Line)
	if err != nil {
		c.logger.Debugw("breakpoint line outside of document", "id", e.bp.ID, "file", e.bp.FileURL, "line", e.bp.Line)
		return
	}
	end, err := doc.LineEndOffset(e.bp.Line)
	if err != nil {
		return
	}
	if e.lineMarker, err = doc.CreateMarker(entity.TextRange{Start: start, End: end}); err != nil {
		c.logger.Debugw("unable to track breakpoint line", "id", e.bp.ID, zap.Error(err))
		return
	}
	if e.bp.HighlightRange != nil {
		if e.rangeMarker, err = doc.CreateMarker(*e.bp.HighlightRange); err != nil {
			c.logger.Debugw("unable to track breakpoint range", "id", e.bp.ID, zap.Error(err))
		}
	}
}

func (c *controller) detachLocked(e *entry) {
	if e.doc != nil {
		e.doc.DisposeMarker(e.lineMarker)
		e.doc.DisposeMarker(e.rangeMarker)
	}
	e.doc = nil
	e.lineMarker = 0
	e.rangeMarker = 0
}

func (c *controller) removeLocked(e *entry) {
	c.detachLocked(e)
	delete(c.byID, e.bp.ID)
	c.byFile[e.bp.FileURL] = without(c.byFile[e.bp.FileURL], e)
	if len(c.byFile[e.bp.FileURL]) == 0 {
		delete(c.byFile, e.bp.FileURL)
	}
	c.stats.Gauge("registered").Update(float64(len(c.byID)))
}

func without(entries []*entry, e *entry) []*entry {
	result := entries[:0:0]
	for _, other := range entries {
		if other != e {
			result = append(result, other)
		}
	}
	return result
}

func sortBreakpoints(bps []entity.Breakpoint) {
	sort.Slice(bps, func(i, j int) bool {
		if bps[i].FileURL != bps[j].FileURL {
			return bps[i].FileURL < bps[j].FileURL
		}
		if bps[i].Line != bps[j].Line {
			return bps[i].Line < bps[j].Line
		}
		return bps[i].ID.String() < bps[j].ID.String()
	})
}
