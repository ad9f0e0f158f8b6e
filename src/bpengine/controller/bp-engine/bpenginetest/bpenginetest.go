// Package bpenginetest provides an in-process engine and a behavioural suite shared by the implementations
// of bpengine.Controller.
package bpenginetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	bpengine "github.com/uber/bp-engine/src/bpengine/controller/bp-engine"
	breakpointtypes "github.com/uber/bp-engine/src/bpengine/controller/breakpoint-types"
	linebreakpoints "github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints"
	"github.com/uber/bp-engine/src/bpengine/controller/variants"
	bperrors "github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/model"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

// Source is the document the suite opens. Line 3 holds a function literal.
const Source = "package main\n\nfunc main() {\n\tgo func() {}()\n}\n"

// Project is the topic of every request made by the suite.
var Project = model.Topic{Project: "bpenginetest"}

// NewMonolith returns an in-process engine backed by real components. It is stopped when the test ends.
func NewMonolith(t testing.TB) bpengine.Controller {
	provider, err := config.NewStaticProvider(map[string]interface{}{
		"lineBreakpoints": map[string]interface{}{
			"mergeWindow":       "10ms",
			"inlineBreakpoints": true,
		},
		"variants": map[string]interface{}{
			"cache": variants.CacheRevision,
		},
	})
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	stats := tally.NewTestScope("", nil)
	lc := fxtest.NewLifecycle(t)

	types, err := breakpointtypes.New(breakpointtypes.Params{Logger: logger})
	require.NoError(t, err)
	types.Freeze()

	docs := document.New(stats)
	breakpoints, err := linebreakpoints.New(linebreakpoints.Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    logger,
		Stats:     stats,
		Documents: docs,
		Types:     types,
	})
	require.NoError(t, err)

	resolver, err := variants.New(variants.Params{
		Config:      provider,
		Logger:      logger,
		Stats:       stats,
		Types:       types,
		Breakpoints: breakpoints,
		Documents:   docs,
	})
	require.NoError(t, err)

	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return bpengine.New(bpengine.Params{
		Logger:      logger,
		Stats:       stats,
		Documents:   docs,
		Breakpoints: breakpoints,
		Resolver:    resolver,
		Types:       types,
	})
}

// Run exercises every operation of the engine against api and checks the observable results.
func Run(t *testing.T, api bpengine.Controller) {
	ctx := context.Background()
	u := uri.File("/home/user/project/main.go")

	t.Run("breakpoint types", func(t *testing.T) {
		types, err := api.BreakpointTypes(ctx, &model.BreakpointTypesParams{Topic: Project})
		require.NoError(t, err)
		require.Len(t, types, 2)
		assert.Equal(t, breakpointtypes.MethodTypeID, types[0].ID)
		assert.Equal(t, breakpointtypes.LineTypeID, types[1].ID)
	})

	stamp, err := api.OpenDocument(ctx, &model.OpenDocumentParams{Topic: Project, URI: u, Text: Source})
	require.NoError(t, err)

	t.Run("resolve without breakpoints", func(t *testing.T) {
		result, err := api.ResolveVariants(ctx, &model.ResolveVariantsParams{Topic: Project, URI: u, Lines: []int{3}})
		require.NoError(t, err)
		require.Len(t, result.Lines, 1)
		assert.Equal(t, 3, result.Lines[0].Line)
		require.Len(t, result.Lines[0].Matches, 2)
		for _, m := range result.Lines[0].Matches {
			assert.NotNil(t, m.Variant)
			assert.Nil(t, m.Breakpoint)
		}
	})

	bp, err := api.AddBreakpoint(ctx, &model.AddBreakpointParams{
		Topic:          Project,
		TypeID:         breakpointtypes.LineTypeID,
		FileURL:        u,
		Line:           3,
		Properties:     map[string]string{breakpointtypes.LambdaOrdinalProperty: "0"},
		HighlightRange: &model.TextRange{Start: 32, End: 41},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, bp.ID)
	assert.True(t, bp.Enabled)
	assert.Equal(t, 3, bp.Line)

	t.Run("resolve pairs the lambda", func(t *testing.T) {
		result, err := api.ResolveVariants(ctx, &model.ResolveVariantsParams{Topic: Project, URI: u, Lines: []int{3}})
		require.NoError(t, err)
		require.Len(t, result.Lines, 1)
		matches := result.Lines[0].Matches
		require.Len(t, matches, 2)
		assert.Nil(t, matches[0].Breakpoint)
		require.NotNil(t, matches[1].Breakpoint)
		assert.Equal(t, bp.ID, matches[1].Breakpoint.ID)
		assert.Equal(t, &model.TextRange{Start: 32, End: 41}, matches[1].Variant.HighlightRange)
	})

	t.Run("attributes", func(t *testing.T) {
		got, err := api.SetEnabled(ctx, &model.SetEnabledParams{Topic: Project, ID: bp.ID, Enabled: false})
		require.NoError(t, err)
		assert.False(t, got.Enabled)

		got, err = api.SetCondition(ctx, &model.SetConditionParams{Topic: Project, ID: bp.ID, Condition: "n > 1"})
		require.NoError(t, err)
		assert.Equal(t, "n > 1", got.Condition)

		got, err = api.GetBreakpoint(ctx, &model.BreakpointIDParams{Topic: Project, ID: bp.ID})
		require.NoError(t, err)
		assert.False(t, got.Enabled)
		assert.Equal(t, "n > 1", got.Condition)
	})

	t.Run("edits move the breakpoint", func(t *testing.T) {
		text := "// header\n" + Source
		next, err := api.ChangeDocument(ctx, &model.ChangeDocumentParams{Topic: Project, URI: u, Text: &text})
		require.NoError(t, err)
		assert.Greater(t, next.Stamp, stamp.Stamp)

		got, err := api.GetBreakpoint(ctx, &model.BreakpointIDParams{Topic: Project, ID: bp.ID})
		require.NoError(t, err)
		assert.Equal(t, 4, got.Line)
		assert.Equal(t, &model.TextRange{Start: 42, End: 51}, got.HighlightRange)
	})

	t.Run("move", func(t *testing.T) {
		got, err := api.SetLine(ctx, &model.SetLineParams{Topic: Project, ID: bp.ID, Line: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, got.Line)
		assert.Nil(t, got.HighlightRange)

		other := uri.File("/home/user/project/other.go")
		got, err = api.SetFile(ctx, &model.SetFileParams{Topic: Project, ID: bp.ID, FileURL: other, Line: 7})
		require.NoError(t, err)
		assert.Equal(t, other, got.FileURL)

		inFile, err := api.GetBreakpoints(ctx, &model.GetBreakpointsParams{Topic: Project, FileURL: u})
		require.NoError(t, err)
		assert.Empty(t, inFile)

		all, err := api.GetBreakpoints(ctx, &model.GetBreakpointsParams{Topic: Project})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, bp.ID, all[0].ID)

		_, err = api.SetFile(ctx, &model.SetFileParams{Topic: Project, ID: bp.ID, FileURL: u, Line: 3})
		require.NoError(t, err)
	})

	t.Run("queue update", func(t *testing.T) {
		line := 3
		assert.NoError(t, api.QueueUpdate(ctx, &model.QueueUpdateParams{Topic: Project, URI: u, Line: &line}))
		assert.NoError(t, api.QueueUpdate(ctx, &model.QueueUpdateParams{Topic: Project, URI: u, Now: true}))
	})

	t.Run("invalid requests", func(t *testing.T) {
		_, err := api.AddBreakpoint(ctx, &model.AddBreakpointParams{Topic: Project, TypeID: "watchpoint", FileURL: u, Line: 3})
		var typeErr *bperrors.TypeNotFoundError
		require.True(t, errors.As(err, &typeErr), "got %v", err)
		assert.Equal(t, "watchpoint", typeErr.TypeID)

		_, err = api.AddBreakpoint(ctx, &model.AddBreakpointParams{Topic: Project, TypeID: breakpointtypes.LineTypeID, FileURL: u, Line: 2})
		var placement *bperrors.InvalidPlacementError
		require.True(t, errors.As(err, &placement), "got %v", err)
		assert.Equal(t, 2, placement.Line)

		for _, line := range []int{-1, 100} {
			_, err = api.AddBreakpoint(ctx, &model.AddBreakpointParams{Topic: Project, TypeID: breakpointtypes.LineTypeID, FileURL: u, Line: line})
			require.True(t, errors.As(err, &placement), "line %d: got %v", line, err)
			assert.Equal(t, line, placement.Line)
			assert.True(t, bperrors.IsBadRequest(err))

			_, err = api.SetLine(ctx, &model.SetLineParams{Topic: Project, ID: bp.ID, Line: line})
			require.True(t, errors.As(err, &placement), "line %d: got %v", line, err)
			assert.Equal(t, breakpointtypes.LineTypeID, placement.TypeID)
			assert.True(t, bperrors.IsBadRequest(err))
		}

		_, err = api.GetBreakpoint(ctx, &model.BreakpointIDParams{Topic: Project, ID: "not-a-uuid"})
		var invalid *bperrors.InvalidIDError
		require.True(t, errors.As(err, &invalid), "got %v", err)
		assert.Equal(t, "not-a-uuid", invalid.ID)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, api.RemoveBreakpoint(ctx, &model.BreakpointIDParams{Topic: Project, ID: bp.ID}))

		_, err := api.GetBreakpoint(ctx, &model.BreakpointIDParams{Topic: Project, ID: bp.ID})
		var notFound *bperrors.BreakpointNotFoundError
		require.True(t, errors.As(err, &notFound), "got %v", err)
		assert.Equal(t, bp.ID, notFound.ID.String())

		err = api.RemoveBreakpoint(ctx, &model.BreakpointIDParams{Topic: Project, ID: bp.ID})
		assert.True(t, errors.As(err, &notFound), "got %v", err)
	})

	t.Run("close", func(t *testing.T) {
		require.NoError(t, api.CloseDocument(ctx, &model.CloseDocumentParams{Topic: Project, URI: u}))

		_, err := api.ResolveVariants(ctx, &model.ResolveVariantsParams{Topic: Project, URI: u, Lines: []int{3}})
		var notOpen *bperrors.DocumentNotFoundError
		require.True(t, errors.As(err, &notOpen), "got %v", err)
		assert.Equal(t, u, notOpen.URI)
	})
}
