// Package variants pairs the placements offered by breakpoint types with the breakpoints registered on a line.
package variants

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	breakpointtypes "github.com/uber/bp-engine/src/bpengine/controller/breakpoint-types"
	linebreakpoints "github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints"
	"github.com/uber/bp-engine/src/bpengine/entity"
	bperrors "github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/repository/document"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	_nameKey   = "variants"
	_configKey = "variants"
)

// Resolver computes, for lines of a document, which variants are available and which breakpoints occupy them.
type Resolver interface {
	// Resolve returns the matches of every requested line. Lines outside of the document resolve to nothing.
	// A StaleDocumentError is returned when the document changed during the computation.
	Resolve(ctx context.Context, doc entity.Document, lines []int) (map[int][]entity.VariantMatch, error)
}

// Params are inbound parameters to initialize a new resolver.
type Params struct {
	fx.In

	Config      config.Provider
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
	Types       breakpointtypes.Registry
	Breakpoints linebreakpoints.Controller
	Documents   document.Repository
}

// Config is the variants section of the configuration.
type Config struct {
	Cache            string `yaml:"cache"`
	LimitConcurrency bool   `yaml:"limitConcurrency"`
	Permits          int64  `yaml:"permits"`
}

type resolver struct {
	logger      *zap.SugaredLogger
	stats       tally.Scope
	types       breakpointtypes.Registry
	breakpoints linebreakpoints.Controller
	cache       Cache
	limiter     *semaphore.Weighted
}

// New creates a resolver. It invalidates its cache on document and breakpoint events.
func New(p Params) (Resolver, error) {
	cfg := Config{
		Cache:   CacheNone,
		Permits: 1,
	}
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", _configKey, err)
	}
	if cfg.Cache != CacheNone && cfg.Cache != CacheRevision {
		return nil, fmt.Errorf("unknown variant cache %q", cfg.Cache)
	}

	r := &resolver{
		logger:      p.Logger.With("plugin", _nameKey),
		stats:       p.Stats.SubScope("variants"),
		types:       p.Types,
		breakpoints: p.Breakpoints,
		cache:       NewCache(cfg.Cache),
	}
	if cfg.LimitConcurrency {
		if cfg.Permits < 1 {
			return nil, fmt.Errorf("variants.permits must be positive, got %d", cfg.Permits)
		}
		r.limiter = semaphore.NewWeighted(cfg.Permits)
	}

	p.Breakpoints.AddListener(linebreakpoints.ListenerFunc(func(_ entity.BreakpointEventKind, bp entity.Breakpoint) {
		r.cache.Invalidate(bp.FileURL)
	}))
	p.Documents.AddObserver(r)
	return r, nil
}

func (r *resolver) Resolve(ctx context.Context, doc entity.Document, lines []int) (map[int][]entity.VariantMatch, error) {
	u := doc.URI()
	generation := r.cache.Generation(u)
	snapshot := doc.Snapshot()
	if cached, ok := r.cache.Get(u, snapshot.Stamp, lines); ok {
		r.stats.Counter("cache_hits").Inc(1)
		return cached, nil
	}

	if r.limiter != nil {
		if err := r.limiter.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer r.limiter.Release(1)
	}

	result := make(map[int][]entity.VariantMatch, len(lines))
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result[line] = r.resolveLine(ctx, snapshot, line)
	}
	r.stats.Counter("resolved_lines").Inc(int64(len(lines)))

	if stamp := doc.ModificationStamp(); stamp != snapshot.Stamp {
		r.stats.Counter("stale").Inc(1)
		return nil, &bperrors.StaleDocumentError{URI: u, ExpectedStamp: snapshot.Stamp, ActualStamp: stamp}
	}
	r.cache.Put(u, generation, snapshot.Stamp, lines, result)
	return result, nil
}

func (r *resolver) resolveLine(ctx context.Context, snapshot entity.DocumentSnapshot, line int) []entity.VariantMatch {
	if line < 0 || line >= snapshot.LineCount() {
		return nil
	}
	lineStart, _ := snapshot.LineStartOffset(line)
	variants := r.computeVariants(ctx, snapshot, line)
	breakpoints := r.breakpoints.BreakpointsAtLine(ctx, snapshot.URI, line)

	if len(breakpoints) == 1 {
		if len(variants) == 0 || (len(variants) == 1 && matches(variants[0], breakpoints[0], lineStart)) {
			return []entity.VariantMatch{}
		}
	}

	result := make([]entity.VariantMatch, 0, len(variants)+len(breakpoints))
	consumed := make(map[uuid.UUID]bool, len(breakpoints))
	for i := range variants {
		v := &variants[i]
		var matching []*entity.Breakpoint
		for j := range breakpoints {
			if matches(*v, breakpoints[j], lineStart) {
				matching = append(matching, &breakpoints[j])
			}
		}

		switch len(matching) {
		case 0:
			result = append(result, entity.VariantMatch{Variant: v})
		case 1:
			b := matching[0]
			if consumed[b.ID] {
				r.warnInconsistent(snapshot, line, "variant matches a breakpoint that is already paired", *v, matching)
				continue
			}
			consumed[b.ID] = true
			result = append(result, entity.VariantMatch{Variant: v, Breakpoint: b})
		default:
			r.warnInconsistent(snapshot, line, "variant matches several breakpoints", *v, matching)
			for _, b := range matching {
				consumed[b.ID] = true
				result = append(result, entity.VariantMatch{Variant: v, Breakpoint: b})
			}
		}
	}

	for j := range breakpoints {
		if !consumed[breakpoints[j].ID] {
			result = append(result, entity.VariantMatch{Breakpoint: &breakpoints[j]})
		}
	}
	return result
}

// computeVariants collects the non-multi variants of every type that can be placed on the line.
func (r *resolver) computeVariants(ctx context.Context, snapshot entity.DocumentSnapshot, line int) []entity.Variant {
	var result []entity.Variant
	for _, t := range r.types.Types() {
		ok, err := t.CanPlaceAt(ctx, snapshot, line)
		if err == nil && ok {
			var variants []entity.Variant
			variants, err = t.ComputeVariants(ctx, snapshot, line)
			for _, v := range variants {
				if !t.IsMultiVariant(v) {
					result = append(result, v)
				}
			}
		}

		var notReady *bperrors.IndexNotReadyError
		switch {
		case errors.As(err, &notReady):
			r.stats.Counter("index_not_ready").Inc(1)
			r.logger.Debugw("index not ready, no variants for line", "file", snapshot.URI, "line", line, "type", t.ID())
			return nil
		case err != nil:
			r.logger.Warnw("computing variants failed", "file", snapshot.URI, "line", line, "type", t.ID(), zap.Error(err))
		}
	}
	return result
}

func (r *resolver) warnInconsistent(snapshot entity.DocumentSnapshot, line int, msg string, v entity.Variant, matching []*entity.Breakpoint) {
	ids := make([]string, 0, len(matching))
	for _, b := range matching {
		ids = append(ids, b.ID.String())
	}
	text, _ := snapshot.LineText(line)
	r.stats.Counter("consistency_warnings").Inc(1)
	r.logger.Warnw(msg,
		"file", snapshot.URI,
		"line", line,
		"lineText", text,
		"variantType", v.TypeID,
		"variantRange", v.HighlightRange,
		"breakpoints", ids,
	)
}

// matches reports whether a breakpoint occupies a variant: same type and same effective highlight start.
func matches(v entity.Variant, b entity.Breakpoint, lineStart int) bool {
	return v.TypeID == b.TypeID && effectiveStart(v.HighlightRange, lineStart) == effectiveStart(b.HighlightRange, lineStart)
}

func effectiveStart(r *entity.TextRange, lineStart int) int {
	if r == nil {
		return lineStart
	}
	return r.Start
}

func (r *resolver) DocumentOpened(ctx context.Context, doc entity.Document) {
	r.cache.Invalidate(doc.URI())
}

func (r *resolver) DocumentChanged(event entity.DocumentChangeEvent) {
	r.cache.Invalidate(event.URI)
}

func (r *resolver) DocumentClosed(ctx context.Context, u uri.URI) {
	r.cache.Remove(u)
}
