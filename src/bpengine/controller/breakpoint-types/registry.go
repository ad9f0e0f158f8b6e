// Package breakpointtypes holds the kinds of line breakpoints the engine can place.
package breakpointtypes

import (
	"fmt"
	"sort"
	"sync"

	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "breakpoint-types"

// Registry is the set of known breakpoint types. Types are registered during startup, after which the
// registry is frozen and read without locking contention.
type Registry interface {
	Register(t entity.BreakpointType) error
	// Freeze rejects further registrations.
	Freeze()
	Get(id string) (entity.BreakpointType, error)
	// Types returns every type ordered by priority, highest first, registration order for ties.
	Types() []entity.BreakpointType
}

// Params are inbound parameters to initialize a new registry.
type Params struct {
	fx.In

	Logger *zap.SugaredLogger
}

type registry struct {
	logger *zap.SugaredLogger

	mu     sync.RWMutex
	byID   map[string]entity.BreakpointType
	sorted []entity.BreakpointType
	frozen bool
}

// New creates a registry holding the built-in types.
func New(p Params) (Registry, error) {
	r := &registry{
		logger: p.Logger.With("plugin", _nameKey),
		byID:   make(map[string]entity.BreakpointType),
	}
	for _, t := range []entity.BreakpointType{NewLineType(), NewMethodType()} {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(t entity.BreakpointType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("cannot register breakpoint type %q: registry is frozen", t.ID())
	}
	if _, ok := r.byID[t.ID()]; ok {
		return fmt.Errorf("breakpoint type %q already registered", t.ID())
	}

	r.byID[t.ID()] = t
	r.sorted = append(r.sorted, t)
	sort.SliceStable(r.sorted, func(i, j int) bool {
		return r.sorted[i].Priority() > r.sorted[j].Priority()
	})
	r.logger.Debugw("registered breakpoint type", "type", t.ID(), "priority", t.Priority())
	return nil
}

func (r *registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

func (r *registry) Get(id string) (entity.BreakpointType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, &errors.TypeNotFoundError{TypeID: id}
	}
	return t, nil
}

func (r *registry) Types() []entity.BreakpointType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.BreakpointType(nil), r.sorted...)
}
