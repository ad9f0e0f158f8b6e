package linebreakpoints

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	breakpointtypes "github.com/uber/bp-engine/src/bpengine/controller/breakpoint-types"
	"github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints/linebreakpointsmock"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/factory"
	bperrors "github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	ctrl  *controller
	docs  document.Repository
	stats tally.TestScope
}

func newFixture(t *testing.T, mergeWindow string, inline bool) fixture {
	provider, err := config.NewStaticProvider(map[string]interface{}{
		_configKey: map[string]interface{}{
			"mergeWindow":       mergeWindow,
			"inlineBreakpoints": inline,
		},
	})
	require.NoError(t, err)

	types, err := breakpointtypes.New(breakpointtypes.Params{Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)

	stats := tally.NewTestScope("", nil)
	docs := document.New(stats)
	lc := fxtest.NewLifecycle(t)
	c, err := New(Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    zap.NewNop().Sugar(),
		Stats:     stats,
		Documents: docs,
		Types:     types,
	})
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return fixture{ctrl: c.(*controller), docs: docs, stats: stats}
}

// recorder collects breakpoint events.
type recorder struct {
	mu     sync.Mutex
	events []entity.BreakpointEventKind
	bps    []entity.Breakpoint
}

func (r *recorder) OnBreakpointEvent(kind entity.BreakpointEventKind, bp entity.Breakpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind)
	r.bps = append(r.bps, bp)
}

func (r *recorder) kinds() []entity.BreakpointEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.BreakpointEventKind(nil), r.events...)
}

func counter(scope tally.TestScope, name string) int64 {
	var total int64
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == name || strings.HasSuffix(c.Name(), "."+name) {
			total += c.Value()
		}
	}
	return total
}

func TestNewInvalidConfig(t *testing.T) {
	provider, err := config.NewStaticProvider(map[string]interface{}{
		_configKey: map[string]interface{}{"mergeWindow": "soon"},
	})
	require.NoError(t, err)

	_, err = New(Params{
		Config:    provider,
		Lifecycle: fxtest.NewLifecycle(t),
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NoopScope,
		Documents: document.New(tally.NoopScope),
	})
	assert.Error(t, err)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")

	bp1 := factory.Breakpoint(breakpointtypes.LineTypeID, u, 1)
	bp2 := factory.Breakpoint(breakpointtypes.LineTypeID, u, 2)
	require.NoError(t, f.ctrl.Register(ctx, bp1, false))
	require.NoError(t, f.ctrl.Register(ctx, bp2, false))
	assert.Error(t, f.ctrl.Register(ctx, bp2, false))

	assert.True(t, f.ctrl.Unregister(ctx, bp1.ID))
	assert.False(t, f.ctrl.Unregister(ctx, bp1.ID))
	assert.False(t, f.ctrl.Unregister(ctx, factory.UUID()))

	remaining := f.ctrl.BreakpointsInFile(ctx, u)
	require.Len(t, remaining, 1)
	assert.Equal(t, bp2.ID, remaining[0].ID)
}

func TestAddBreakpoint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")
	_, err := f.docs.Open(ctx, u, "package main\n\nfunc main() {\n\tprintln(1)\n}\n")
	require.NoError(t, err)

	mock := gomock.NewController(t)
	handler := linebreakpointsmock.NewMockUpdateHandler(mock)
	handler.EXPECT().OnLinesUpdated(gomock.Any(), entity.NewDocumentKey(u)).Return(nil).MinTimes(1)
	handler.EXPECT().OnLinesUpdated(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.ctrl.SetUpdateHandler(handler)

	events := &recorder{}
	f.ctrl.AddListener(events)

	req := factory.BreakpointRequest(breakpointtypes.LineTypeID, u, 3)
	req.SuspendPolicy = entity.SuspendThread
	req.Condition = "x > 1"
	bp, err := f.ctrl.AddBreakpoint(ctx, req)
	require.NoError(t, err)
	assert.True(t, bp.Enabled)
	assert.Equal(t, 3, bp.Line)
	assert.Equal(t, entity.SuspendThread, bp.SuspendPolicy)
	assert.Equal(t, []entity.BreakpointEventKind{entity.BreakpointAdded}, events.kinds())

	got, err := f.ctrl.Breakpoint(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, bp, got)

	// Adding the same breakpoint again returns the registered one.
	again, err := f.ctrl.AddBreakpoint(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, bp.ID, again.ID)
	assert.Len(t, f.ctrl.Breakpoints(ctx), 1)

	// A method breakpoint may share the line of a line breakpoint.
	_, err = f.ctrl.AddBreakpoint(ctx, factory.BreakpointRequest(breakpointtypes.MethodTypeID, u, 2))
	require.NoError(t, err)
	_, err = f.ctrl.AddBreakpoint(ctx, factory.BreakpointRequest(breakpointtypes.LineTypeID, u, 2))
	require.NoError(t, err)
	assert.Len(t, f.ctrl.BreakpointsAtLine(ctx, u, 2), 2)

	var invalid *bperrors.InvalidPlacementError
	_, err = f.ctrl.AddBreakpoint(ctx, factory.BreakpointRequest(breakpointtypes.LineTypeID, u, 1))
	assert.ErrorAs(t, err, &invalid)
	for _, line := range []int{-1, 6, 40} {
		_, err = f.ctrl.AddBreakpoint(ctx, factory.BreakpointRequest(breakpointtypes.LineTypeID, u, line))
		require.ErrorAs(t, err, &invalid, "line %d", line)
		assert.Equal(t, line, invalid.Line)
	}

	var typeNotFound *bperrors.TypeNotFoundError
	_, err = f.ctrl.AddBreakpoint(ctx, factory.BreakpointRequest("watch", u, 3))
	assert.ErrorAs(t, err, &typeNotFound)
}

func TestAddBreakpointToClosedDocument(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/closed.go")

	bp, err := f.ctrl.AddBreakpoint(ctx, factory.BreakpointRequest(breakpointtypes.LineTypeID, u, 40))
	require.NoError(t, err)
	assert.Equal(t, 40, bp.Line)

	// Opening the document attaches the breakpoint; a line outside the text is left untracked.
	_, err = f.docs.Open(ctx, u, "short\n")
	require.NoError(t, err)
	require.NoError(t, f.ctrl.Flush(ctx))
	assert.Len(t, f.ctrl.BreakpointsInFile(ctx, u), 1)
}

func TestDocumentChangeMovesBreakpoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")
	doc, err := f.docs.Open(ctx, u, "a\nb\nc\n")
	require.NoError(t, err)

	bp1 := factory.Breakpoint(breakpointtypes.LineTypeID, u, 1)
	bp2 := factory.Breakpoint(breakpointtypes.LineTypeID, u, 2)
	require.NoError(t, f.ctrl.Register(ctx, bp1, false))
	require.NoError(t, f.ctrl.Register(ctx, bp2, false))
	require.NoError(t, f.ctrl.Flush(ctx))

	events := &recorder{}
	f.ctrl.AddListener(events)

	_, err = f.docs.Replace(ctx, u, 0, 0, "x\n")
	require.NoError(t, err)

	// Lines are refreshed synchronously, before any scheduled update runs.
	got, err := f.ctrl.Breakpoint(ctx, bp1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Line)
	got, err = f.ctrl.Breakpoint(ctx, bp2.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Line)
	assert.Equal(t, []entity.BreakpointEventKind{entity.BreakpointChanged, entity.BreakpointChanged}, events.kinds())
	assert.Equal(t, 1, f.ctrl.queue.Pending())

	// Editing inside a line does not move it.
	_, err = f.docs.Replace(ctx, u, 4, 4, "bb")
	require.NoError(t, err)
	assert.Len(t, events.kinds(), 2)
	assert.Equal(t, "x\na\nbbb\nc\n", doc.Snapshot().Text)
}

func TestCleanUpRemovesDeletedLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")
	_, err := f.docs.Open(ctx, u, "a\nb\nc\n")
	require.NoError(t, err)

	bp := factory.Breakpoint(breakpointtypes.LineTypeID, u, 1)
	require.NoError(t, f.ctrl.Register(ctx, bp, false))

	mock := gomock.NewController(t)
	listener := linebreakpointsmock.NewMockListener(mock)
	listener.EXPECT().OnBreakpointEvent(entity.BreakpointRemoved, gomock.Any()).Do(func(_ entity.BreakpointEventKind, removed entity.Breakpoint) {
		assert.Equal(t, bp.ID, removed.ID)
	})
	f.ctrl.AddListener(listener)

	// Delete "b\n".
	_, err = f.docs.Replace(ctx, u, 2, 4, "")
	require.NoError(t, err)
	require.NoError(t, f.ctrl.Flush(ctx))

	assert.Empty(t, f.ctrl.BreakpointsInFile(ctx, u))
	assert.Equal(t, int64(1), counter(f.stats, "cleanup_invalid"))
}

func TestCleanUpPrunesDuplicates(t *testing.T) {
	tests := []struct {
		name      string
		inline    bool
		otherType string
		wantKept  int
	}{
		{name: "same type merges", inline: true, otherType: breakpointtypes.LineTypeID, wantKept: 1},
		{name: "different types coexist inline", inline: true, otherType: breakpointtypes.MethodTypeID, wantKept: 2},
		{name: "one per line without inline", inline: false, otherType: breakpointtypes.MethodTypeID, wantKept: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, "1h", tt.inline)
			u := uri.File("/src/main.go")
			_, err := f.docs.Open(ctx, u, "a\nb\nc\n")
			require.NoError(t, err)

			first := factory.Breakpoint(breakpointtypes.LineTypeID, u, 0)
			second := factory.Breakpoint(tt.otherType, u, 1)
			require.NoError(t, f.ctrl.Register(ctx, first, false))
			require.NoError(t, f.ctrl.Register(ctx, second, false))

			// Join lines 0 and 1.
			_, err = f.docs.Replace(ctx, u, 1, 2, "")
			require.NoError(t, err)
			require.NoError(t, f.ctrl.Flush(ctx))

			kept := f.ctrl.BreakpointsInFile(ctx, u)
			require.Len(t, kept, tt.wantKept)
			assert.Contains(t, ids(kept), first.ID.String())
			for _, bp := range kept {
				assert.Equal(t, 0, bp.Line)
			}
			assert.Equal(t, int64(2-tt.wantKept), counter(f.stats, "cleanup_duplicates"))
		})
	}
}

func TestQueueUpdateMerges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")
	_, err := f.docs.Open(ctx, u, "a\n")
	require.NoError(t, err)
	require.NoError(t, f.ctrl.Flush(ctx))

	mock := gomock.NewController(t)
	handler := linebreakpointsmock.NewMockUpdateHandler(mock)
	handler.EXPECT().OnLinesUpdated(gomock.Any(), entity.NewLineKey(u, 0)).Return(nil).Times(1)
	f.ctrl.SetUpdateHandler(handler)

	for i := 0; i < 10; i++ {
		f.ctrl.QueueUpdate(entity.NewLineKey(u, 0))
	}
	require.NoError(t, f.ctrl.Flush(ctx))
}

func TestUpdateOfClosedDocumentIsSkipped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)

	mock := gomock.NewController(t)
	handler := linebreakpointsmock.NewMockUpdateHandler(mock)
	f.ctrl.SetUpdateHandler(handler)

	f.ctrl.QueueUpdate(entity.NewDocumentKey(uri.File("/src/unknown.go")))
	require.NoError(t, f.ctrl.Flush(ctx))
	<-f.ctrl.QueueUpdateNow(entity.NewDocumentKey(uri.File("/src/unknown.go")))
}

func TestAttributeChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")
	other := uri.File("/src/other.go")
	_, err := f.docs.Open(ctx, u, "a\nb\nc\n")
	require.NoError(t, err)

	bp := factory.Breakpoint(breakpointtypes.LineTypeID, u, 0)
	require.NoError(t, f.ctrl.Register(ctx, bp, false))
	events := &recorder{}
	f.ctrl.AddListener(events)

	got, err := f.ctrl.SetEnabled(ctx, bp.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	_, err = f.ctrl.SetEnabled(ctx, bp.ID, false)
	require.NoError(t, err)

	got, err = f.ctrl.SetCondition(ctx, bp.ID, "i == 3")
	require.NoError(t, err)
	assert.Equal(t, "i == 3", got.Condition)

	got, err = f.ctrl.SetLine(ctx, bp.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Line)
	var placement *bperrors.InvalidPlacementError
	_, err = f.ctrl.SetLine(ctx, bp.ID, 10)
	require.ErrorAs(t, err, &placement)
	assert.Equal(t, 10, placement.Line)
	_, err = f.ctrl.SetLine(ctx, bp.ID, -1)
	assert.ErrorAs(t, err, &placement)

	got, err = f.ctrl.SetFile(ctx, bp.ID, other, 7)
	require.NoError(t, err)
	assert.Equal(t, other, got.FileURL)
	assert.Empty(t, f.ctrl.BreakpointsInFile(ctx, u))
	assert.Len(t, f.ctrl.BreakpointsInFile(ctx, other), 1)

	assert.Equal(t, []entity.BreakpointEventKind{
		entity.BreakpointChanged,
		entity.BreakpointChanged,
		entity.BreakpointChanged,
		entity.BreakpointChanged,
	}, events.kinds())

	var notFound *bperrors.BreakpointNotFoundError
	missing := factory.UUID()
	_, err = f.ctrl.SetEnabled(ctx, missing, true)
	assert.ErrorAs(t, err, &notFound)
	_, err = f.ctrl.SetLine(ctx, missing, 1)
	assert.ErrorAs(t, err, &notFound)
	_, err = f.ctrl.SetFile(ctx, missing, u, 1)
	assert.ErrorAs(t, err, &notFound)
	_, err = f.ctrl.Breakpoint(ctx, missing)
	assert.ErrorAs(t, err, &notFound)
	assert.ErrorAs(t, f.ctrl.RemoveBreakpoint(ctx, missing), &notFound)
}

func TestFileRemoved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/deleted.go")
	keep := uri.File("/src/kept.go")

	for line := 0; line < 3; line++ {
		require.NoError(t, f.ctrl.Register(ctx, factory.Breakpoint(breakpointtypes.LineTypeID, u, line), false))
	}
	require.NoError(t, f.ctrl.Register(ctx, factory.Breakpoint(breakpointtypes.LineTypeID, keep, 0), false))

	events := &recorder{}
	f.ctrl.AddListener(events)

	require.NoError(t, f.ctrl.FileRemoved(ctx, u))
	assert.Empty(t, f.ctrl.BreakpointsInFile(ctx, u))
	assert.Len(t, f.ctrl.Breakpoints(ctx), 1)
	assert.Equal(t, []entity.BreakpointEventKind{entity.BreakpointRemoved, entity.BreakpointRemoved, entity.BreakpointRemoved}, events.kinds())
}

func TestRegisterWaitsForVisuals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")
	_, err := f.docs.Open(ctx, u, "a\n")
	require.NoError(t, err)

	var updated []entity.DocumentLineKey
	mock := gomock.NewController(t)
	handler := linebreakpointsmock.NewMockUpdateHandler(mock)
	handler.EXPECT().OnLinesUpdated(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key entity.DocumentLineKey) error {
		updated = append(updated, key)
		return nil
	}).AnyTimes()
	f.ctrl.SetUpdateHandler(handler)

	require.NoError(t, f.ctrl.Register(ctx, factory.Breakpoint(breakpointtypes.LineTypeID, u, 0), true))
	assert.Contains(t, updated, entity.NewDocumentKey(u))
}

func TestDocumentClosedKeepsBreakpoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "1h", true)
	u := uri.File("/src/main.go")
	_, err := f.docs.Open(ctx, u, "a\nb\n")
	require.NoError(t, err)

	bp := factory.Breakpoint(breakpointtypes.LineTypeID, u, 1)
	require.NoError(t, f.ctrl.Register(ctx, bp, false))
	require.NoError(t, f.docs.Close(ctx, u))
	require.NoError(t, f.ctrl.Flush(ctx))

	got, err := f.ctrl.Breakpoint(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Line)
	assert.True(t, f.ctrl.InlineBreakpointsEnabled())
}

func ids(bps []entity.Breakpoint) []string {
	result := make([]string, 0, len(bps))
	for _, bp := range bps {
		result = append(result, bp.ID.String())
	}
	return result
}
