// Package bpengine is the in-process implementation of the breakpoint engine API.
package bpengine

import (
	"context"
	"fmt"

	tally "github.com/uber-go/tally/v4"
	breakpointtypes "github.com/uber/bp-engine/src/bpengine/controller/breakpoint-types"
	linebreakpoints "github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints"
	"github.com/uber/bp-engine/src/bpengine/controller/variants"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/mapper"
	"github.com/uber/bp-engine/src/bpengine/model"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "bp-engine"

// Controller is the breakpoint engine API shared by the frontend and the backend.
// Implementations exchange model records only.
type Controller interface {
	OpenDocument(ctx context.Context, params *model.OpenDocumentParams) (*model.DocumentStamp, error)
	ChangeDocument(ctx context.Context, params *model.ChangeDocumentParams) (*model.DocumentStamp, error)
	CloseDocument(ctx context.Context, params *model.CloseDocumentParams) error

	AddBreakpoint(ctx context.Context, params *model.AddBreakpointParams) (*model.Breakpoint, error)
	RemoveBreakpoint(ctx context.Context, params *model.BreakpointIDParams) error
	SetEnabled(ctx context.Context, params *model.SetEnabledParams) (*model.Breakpoint, error)
	SetCondition(ctx context.Context, params *model.SetConditionParams) (*model.Breakpoint, error)
	SetLine(ctx context.Context, params *model.SetLineParams) (*model.Breakpoint, error)
	SetFile(ctx context.Context, params *model.SetFileParams) (*model.Breakpoint, error)

	GetBreakpoint(ctx context.Context, params *model.BreakpointIDParams) (*model.Breakpoint, error)
	GetBreakpoints(ctx context.Context, params *model.GetBreakpointsParams) ([]model.Breakpoint, error)
	ResolveVariants(ctx context.Context, params *model.ResolveVariantsParams) (*model.ResolveVariantsResult, error)
	// QueueUpdate schedules a visual update. With Now set it returns once the update ran.
	QueueUpdate(ctx context.Context, params *model.QueueUpdateParams) error
	BreakpointTypes(ctx context.Context, params *model.BreakpointTypesParams) ([]model.BreakpointType, error)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Logger      *zap.SugaredLogger
	Stats       tally.Scope
	Documents   document.Repository
	Breakpoints linebreakpoints.Controller
	Resolver    variants.Resolver
	Types       breakpointtypes.Registry
}

type controller struct {
	logger      *zap.SugaredLogger
	stats       tally.Scope
	documents   document.Repository
	breakpoints linebreakpoints.Controller
	resolver    variants.Resolver
	types       breakpointtypes.Registry
}

// New creates the in-process engine.
func New(p Params) Controller {
	return &controller{
		logger:      p.Logger.With("plugin", _nameKey),
		stats:       p.Stats.SubScope("bp_engine"),
		documents:   p.Documents,
		breakpoints: p.Breakpoints,
		resolver:    p.Resolver,
		types:       p.Types,
	}
}

func (c *controller) OpenDocument(ctx context.Context, params *model.OpenDocumentParams) (*model.DocumentStamp, error) {
	doc, err := c.documents.Open(ctx, params.URI, params.Text)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", params.URI, err)
	}
	return &model.DocumentStamp{Stamp: doc.ModificationStamp()}, nil
}

func (c *controller) ChangeDocument(ctx context.Context, params *model.ChangeDocumentParams) (*model.DocumentStamp, error) {
	var stamp int64
	var err error
	if params.Text != nil {
		stamp, err = c.documents.SetText(ctx, params.URI, *params.Text)
	} else {
		stamp, err = c.documents.Change(ctx, params.URI, params.Changes)
	}
	if err != nil {
		return nil, fmt.Errorf("changing %q: %w", params.URI, err)
	}
	return &model.DocumentStamp{Stamp: stamp}, nil
}

func (c *controller) CloseDocument(ctx context.Context, params *model.CloseDocumentParams) error {
	return c.documents.Close(ctx, params.URI)
}

func (c *controller) AddBreakpoint(ctx context.Context, params *model.AddBreakpointParams) (*model.Breakpoint, error) {
	req, err := mapper.ParamsToBreakpointRequest(params)
	if err != nil {
		return nil, err
	}
	bp, err := c.breakpoints.AddBreakpoint(ctx, req)
	if err != nil {
		return nil, err
	}
	c.stats.Counter("breakpoints_added").Inc(1)
	c.logger.Debugw("breakpoint added", "breakpoint", bp.String())
	return breakpointResult(bp), nil
}

func (c *controller) RemoveBreakpoint(ctx context.Context, params *model.BreakpointIDParams) error {
	id, err := mapper.StringToID(params.ID)
	if err != nil {
		return err
	}
	if err := c.breakpoints.RemoveBreakpoint(ctx, id); err != nil {
		return err
	}
	c.stats.Counter("breakpoints_removed").Inc(1)
	return nil
}

func (c *controller) SetEnabled(ctx context.Context, params *model.SetEnabledParams) (*model.Breakpoint, error) {
	id, err := mapper.StringToID(params.ID)
	if err != nil {
		return nil, err
	}
	return breakpointResultOrError(c.breakpoints.SetEnabled(ctx, id, params.Enabled))
}

func (c *controller) SetCondition(ctx context.Context, params *model.SetConditionParams) (*model.Breakpoint, error) {
	id, err := mapper.StringToID(params.ID)
	if err != nil {
		return nil, err
	}
	return breakpointResultOrError(c.breakpoints.SetCondition(ctx, id, params.Condition))
}

func (c *controller) SetLine(ctx context.Context, params *model.SetLineParams) (*model.Breakpoint, error) {
	id, err := mapper.StringToID(params.ID)
	if err != nil {
		return nil, err
	}
	return breakpointResultOrError(c.breakpoints.SetLine(ctx, id, params.Line))
}

func (c *controller) SetFile(ctx context.Context, params *model.SetFileParams) (*model.Breakpoint, error) {
	id, err := mapper.StringToID(params.ID)
	if err != nil {
		return nil, err
	}
	return breakpointResultOrError(c.breakpoints.SetFile(ctx, id, params.FileURL, params.Line))
}

func (c *controller) GetBreakpoint(ctx context.Context, params *model.BreakpointIDParams) (*model.Breakpoint, error) {
	id, err := mapper.StringToID(params.ID)
	if err != nil {
		return nil, err
	}
	return breakpointResultOrError(c.breakpoints.Breakpoint(ctx, id))
}

func (c *controller) GetBreakpoints(ctx context.Context, params *model.GetBreakpointsParams) ([]model.Breakpoint, error) {
	if params.FileURL != "" {
		return mapper.BreakpointsToModel(c.breakpoints.BreakpointsInFile(ctx, params.FileURL)), nil
	}
	return mapper.BreakpointsToModel(c.breakpoints.Breakpoints(ctx)), nil
}

func (c *controller) ResolveVariants(ctx context.Context, params *model.ResolveVariantsParams) (*model.ResolveVariantsResult, error) {
	doc, err := c.documents.Get(ctx, params.URI)
	if err != nil {
		return nil, err
	}
	lines, err := c.resolver.Resolve(ctx, doc, params.Lines)
	if err != nil {
		return nil, err
	}
	return mapper.MatchesToModel(lines), nil
}

func (c *controller) QueueUpdate(ctx context.Context, params *model.QueueUpdateParams) error {
	key := entity.NewDocumentKey(params.URI)
	if params.Line != nil {
		key = entity.NewLineKey(params.URI, *params.Line)
	}

	if !params.Now {
		c.breakpoints.QueueUpdate(key)
		return nil
	}
	select {
	case <-c.breakpoints.QueueUpdateNow(key):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *controller) BreakpointTypes(ctx context.Context, params *model.BreakpointTypesParams) ([]model.BreakpointType, error) {
	types := c.types.Types()
	result := make([]model.BreakpointType, 0, len(types))
	for _, t := range types {
		result = append(result, mapper.BreakpointTypeToModel(t))
	}
	return result, nil
}

func breakpointResult(bp entity.Breakpoint) *model.Breakpoint {
	m := mapper.BreakpointToModel(bp)
	return &m
}

func breakpointResultOrError(bp entity.Breakpoint, err error) (*model.Breakpoint, error) {
	if err != nil {
		return nil, err
	}
	return breakpointResult(bp), nil
}
