package controller

import (
	bpengine "github.com/uber/bp-engine/src/bpengine/controller/bp-engine"
	breakpointtypes "github.com/uber/bp-engine/src/bpengine/controller/breakpoint-types"
	filewatch "github.com/uber/bp-engine/src/bpengine/controller/file-watch"
	"github.com/uber/bp-engine/src/bpengine/controller/inlays"
	linebreakpoints "github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints"
	prioritytracker "github.com/uber/bp-engine/src/bpengine/controller/priority-tracker"
	"github.com/uber/bp-engine/src/bpengine/controller/variants"
	"github.com/uber/bp-engine/src/bpengine/internal/clock"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.uber.org/fx"
)

// Module provides the in-process breakpoint engine and the components listening to it.
var Module = fx.Options(
	fx.Provide(clock.New),
	fx.Provide(document.New),
	fx.Provide(breakpointtypes.New),
	fx.Provide(linebreakpoints.New),
	fx.Provide(variants.New),
	fx.Provide(inlays.New),
	fx.Provide(prioritytracker.New),
	fx.Provide(filewatch.New),
	fx.Provide(bpengine.New),
	fx.Invoke(func(inlays.Controller) {}),
	fx.Invoke(func(prioritytracker.Tracker) {}),
	fx.Invoke(func(filewatch.Controller) {}),
	// Types are registered while the graph is built; nothing may register after startup.
	fx.Invoke(func(r breakpointtypes.Registry) { r.Freeze() }),
)
