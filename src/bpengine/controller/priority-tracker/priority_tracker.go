// Package prioritytracker detects when users replace the default variant a breakpoint was placed with by
// another variant on the same line, which hints that the default was the wrong pick.
package prioritytracker

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	linebreakpoints "github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/clock"
	mergequeue "github.com/uber/bp-engine/src/bpengine/internal/merge-queue"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey   = "priority-tracker"
	_configKey = "priorityTracker"
	_cleanKey  = "clean"

	_defaultWindow       = 10 * time.Second
	_defaultCleanupDelay = time.Second

	// _contextLines is the number of source lines shown on each side of the breakpoint line in a report.
	_contextLines = 2

	// _maxReports bounds the report history kept in memory.
	_maxReports = 100
)

// Pattern names the event sequence that triggered a report.
type Pattern string

const (
	// PatternAddAddRemove is "added X, added Y, removed X".
	PatternAddAddRemove Pattern = "added X, added Y, removed X"
	// PatternAddRemoveAdd is "added X, removed X, added Y".
	PatternAddRemoveAdd Pattern = "added X, removed X, added Y"
)

// Report describes one detected anomaly.
type Report struct {
	Pattern Pattern
	// Default is the breakpoint the engine placed first.
	Default entity.Breakpoint
	// Chosen is the breakpoint the user ended up with.
	Chosen entity.Breakpoint
	// Context holds the source lines around the breakpoint line, when the document is open.
	Context string
}

// Tracker watches breakpoint events.
type Tracker interface {
	linebreakpoints.Listener

	// Reports returns the most recent anomalies, oldest first. At most _maxReports are kept.
	Reports() []Report
	// Clean drops events that left the window.
	Clean()
}

// Params are inbound parameters to initialize a new tracker.
type Params struct {
	fx.In

	Config      config.Provider
	Lifecycle   fx.Lifecycle
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
	Breakpoints linebreakpoints.Controller
	Documents   document.Repository
	Clock       clock.Clock `optional:"true"`
	// Output receives a readable copy of every report.
	Output io.Writer `name:"priorityTrackerOutput" optional:"true"`
}

// Config is the priorityTracker section of the configuration.
type Config struct {
	Window       time.Duration `yaml:"window"`
	CleanupDelay time.Duration `yaml:"cleanupDelay"`
}

type eventKind int

const (
	added eventKind = iota
	removed
)

type event struct {
	kind eventKind
	bp   entity.Breakpoint
	at   time.Time
}

type tracker struct {
	logger    *zap.SugaredLogger
	stats     tally.Scope
	documents document.Repository
	clock     clock.Clock
	output    io.Writer
	window    time.Duration
	queue     *mergequeue.Queue

	mu      sync.Mutex
	events  map[string][]event
	enabled map[uuid.UUID]bool
	reports []Report
}

// New creates a tracker listening to the breakpoint registry.
func New(p Params) (Tracker, error) {
	cfg := Config{
		Window:       _defaultWindow,
		CleanupDelay: _defaultCleanupDelay,
	}
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", _configKey, err)
	}

	c := p.Clock
	if c == nil {
		c = clock.New()
	}
	logger := p.Logger.With("plugin", _nameKey)
	stats := p.Stats.SubScope("priority_tracker")

	t := &tracker{
		logger:    logger,
		stats:     stats,
		documents: p.Documents,
		clock:     c,
		output:    p.Output,
		window:    cfg.Window,
		queue: mergequeue.New(_nameKey, cfg.CleanupDelay,
			mergequeue.WithClock(c),
			mergequeue.WithLogger(logger),
			mergequeue.WithStats(stats.SubScope("queue")),
		),
		events:  make(map[string][]event),
		enabled: make(map[uuid.UUID]bool),
	}
	p.Breakpoints.AddListener(t)

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			t.queue.Close()
			return nil
		},
	})
	return t, nil
}

func (t *tracker) OnBreakpointEvent(kind entity.BreakpointEventKind, bp entity.Breakpoint) {
	var ev eventKind
	t.mu.Lock()
	switch kind {
	case entity.BreakpointAdded:
		t.enabled[bp.ID] = bp.Enabled
		ev = added
	case entity.BreakpointRemoved:
		delete(t.enabled, bp.ID)
		ev = removed
	case entity.BreakpointChanged:
		wasEnabled := t.enabled[bp.ID]
		t.enabled[bp.ID] = bp.Enabled
		if !wasEnabled || bp.Enabled {
			t.mu.Unlock()
			return
		}
		ev = removed
	default:
		t.mu.Unlock()
		return
	}

	key := entity.NewLineKey(bp.FileURL, bp.Line).String()
	now := t.clock.Now()
	events := append(t.inWindow(t.events[key], now), event{kind: ev, bp: bp, at: now})
	report, ok := detect(events)
	if ok {
		delete(t.events, key)
	} else {
		t.events[key] = events
	}
	t.mu.Unlock()

	if ok {
		t.report(report)
	}
	t.queue.Queue(_cleanKey, func(context.Context) { t.Clean() })
}

// detect checks the last three events at one location.
func detect(events []event) (Report, bool) {
	if len(events) < 3 {
		return Report{}, false
	}
	e1, e2, e3 := events[len(events)-3], events[len(events)-2], events[len(events)-1]
	if e1.kind != added {
		return Report{}, false
	}

	var r Report
	switch {
	case e2.kind == added && e3.kind == removed && e3.bp.ID == e1.bp.ID && e2.bp.ID != e1.bp.ID:
		r = Report{Pattern: PatternAddAddRemove, Default: e1.bp, Chosen: e2.bp}
	case e2.kind == removed && e3.kind == added && e2.bp.ID == e1.bp.ID && e3.bp.ID != e1.bp.ID:
		r = Report{Pattern: PatternAddRemoveAdd, Default: e1.bp, Chosen: e3.bp}
	default:
		return Report{}, false
	}
	if similar(r.Default, r.Chosen) {
		return Report{}, false
	}
	return r, true
}

// similar reports whether two breakpoints have the same structural signature.
func similar(a, b entity.Breakpoint) bool {
	if a.TypeID != b.TypeID || a.Description != b.Description {
		return false
	}
	if a.HighlightRange == nil || b.HighlightRange == nil {
		return a.HighlightRange == nil && b.HighlightRange == nil
	}
	return *a.HighlightRange == *b.HighlightRange
}

func (t *tracker) report(r Report) {
	r.Context = t.sourceContext(r.Default)

	t.mu.Lock()
	if len(t.reports) == _maxReports {
		copy(t.reports, t.reports[1:])
		t.reports = t.reports[:_maxReports-1]
	}
	t.reports = append(t.reports, r)
	t.mu.Unlock()

	t.stats.Counter("reports").Inc(1)
	t.logger.Warnw("default breakpoint variant was replaced",
		"pattern", string(r.Pattern),
		"file", r.Default.FileURL,
		"line", r.Default.Line,
		"defaultType", r.Default.TypeID,
		"defaultRange", r.Default.HighlightRange,
		"defaultBreakpoint", r.Default.ID,
		"chosenType", r.Chosen.TypeID,
		"chosenRange", r.Chosen.HighlightRange,
		"chosenBreakpoint", r.Chosen.ID,
		"context", r.Context,
	)
	if t.output != nil {
		fmt.Fprintf(t.output, "%s: %s:%d default %s was replaced by %s\n%s",
			r.Pattern, r.Default.FileURL, r.Default.Line+1, r.Default.TypeID, r.Chosen.TypeID, r.Context)
	}
}

func (t *tracker) sourceContext(bp entity.Breakpoint) string {
	doc, err := t.documents.Get(context.Background(), bp.FileURL)
	if err != nil {
		return ""
	}
	snapshot := doc.Snapshot()

	var b strings.Builder
	for line := max(bp.Line-_contextLines, 0); line <= bp.Line+_contextLines && line < snapshot.LineCount(); line++ {
		text, err := snapshot.LineText(line)
		if err != nil {
			break
		}
		marker := "  "
		if line == bp.Line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%d: %s\n", marker, line+1, text)
	}
	return b.String()
}

func (t *tracker) Reports() []Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Report(nil), t.reports...)
}

func (t *tracker) Clean() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	for key, events := range t.events {
		if kept := t.inWindow(events, now); len(kept) > 0 {
			t.events[key] = kept
		} else {
			delete(t.events, key)
		}
	}
}

// inWindow drops the events older than the window.
func (t *tracker) inWindow(events []event, now time.Time) []event {
	i := 0
	for i < len(events) && now.Sub(events[i].at) > t.window {
		i++
	}
	return events[i:]
}
