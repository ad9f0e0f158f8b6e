// Package mapper converts between entities, wire models and JSON-RPC requests.
package mapper

import (
	"maps"
	"slices"

	"github.com/gofrs/uuid"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/model"
)

// StringToID parses a breakpoint id received on the wire.
func StringToID(s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, &errors.InvalidIDError{ID: s}
	}
	return id, nil
}

// RangeToModel maps an optional entity range to its model equivalent.
func RangeToModel(r *entity.TextRange) *model.TextRange {
	if r == nil {
		return nil
	}
	return &model.TextRange{Start: r.Start, End: r.End}
}

// ModelToRange maps an optional model range to its entity equivalent.
func ModelToRange(r *model.TextRange) *entity.TextRange {
	if r == nil {
		return nil
	}
	return &entity.TextRange{Start: r.Start, End: r.End}
}

// BreakpointToModel maps a Breakpoint entity to its model equivalent.
func BreakpointToModel(b entity.Breakpoint) model.Breakpoint {
	return model.Breakpoint{
		ID:             b.ID.String(),
		TypeID:         b.TypeID,
		FileURL:        b.FileURL,
		Line:           b.Line,
		Properties:     maps.Clone(b.Properties),
		Enabled:        b.Enabled,
		SuspendPolicy:  b.SuspendPolicy.String(),
		Condition:      b.Condition,
		LogExpression:  b.LogExpression,
		Temporary:      b.Temporary,
		HighlightRange: RangeToModel(b.HighlightRange),
		Group:          b.Group,
		Description:    b.Description,
	}
}

// BreakpointsToModel maps a list of Breakpoint entities to their model equivalents.
func BreakpointsToModel(bps []entity.Breakpoint) []model.Breakpoint {
	result := make([]model.Breakpoint, 0, len(bps))
	for _, b := range bps {
		result = append(result, BreakpointToModel(b))
	}
	return result
}

// ModelToBreakpoint maps a model Breakpoint to its entity equivalent.
func ModelToBreakpoint(b model.Breakpoint) (entity.Breakpoint, error) {
	id, err := StringToID(b.ID)
	if err != nil {
		return entity.Breakpoint{}, err
	}
	policy, err := entity.ParseSuspendPolicy(b.SuspendPolicy)
	if err != nil {
		return entity.Breakpoint{}, err
	}
	return entity.Breakpoint{
		ID:             id,
		TypeID:         b.TypeID,
		FileURL:        b.FileURL,
		Line:           b.Line,
		Properties:     maps.Clone(b.Properties),
		Enabled:        b.Enabled,
		SuspendPolicy:  policy,
		Condition:      b.Condition,
		LogExpression:  b.LogExpression,
		Temporary:      b.Temporary,
		HighlightRange: ModelToRange(b.HighlightRange),
		Group:          b.Group,
		Description:    b.Description,
	}, nil
}

// ModelToBreakpoints maps a list of model Breakpoints to their entity equivalents.
func ModelToBreakpoints(bps []model.Breakpoint) ([]entity.Breakpoint, error) {
	result := make([]entity.Breakpoint, 0, len(bps))
	for _, b := range bps {
		bp, err := ModelToBreakpoint(b)
		if err != nil {
			return nil, err
		}
		result = append(result, bp)
	}
	return result, nil
}

// BreakpointRequestToParams maps a BreakpointRequest entity to the addBreakpoint parameters.
func BreakpointRequestToParams(topic model.Topic, req entity.BreakpointRequest) *model.AddBreakpointParams {
	return &model.AddBreakpointParams{
		Topic:          topic,
		TypeID:         req.TypeID,
		FileURL:        req.FileURL,
		Line:           req.Line,
		Properties:     maps.Clone(req.Properties),
		SuspendPolicy:  req.SuspendPolicy.String(),
		Condition:      req.Condition,
		LogExpression:  req.LogExpression,
		Temporary:      req.Temporary,
		HighlightRange: RangeToModel(req.HighlightRange),
		Group:          req.Group,
		Description:    req.Description,
	}
}

// ParamsToBreakpointRequest maps the addBreakpoint parameters to a BreakpointRequest entity.
func ParamsToBreakpointRequest(p *model.AddBreakpointParams) (entity.BreakpointRequest, error) {
	policy, err := entity.ParseSuspendPolicy(p.SuspendPolicy)
	if err != nil {
		return entity.BreakpointRequest{}, err
	}
	return entity.BreakpointRequest{
		TypeID:         p.TypeID,
		FileURL:        p.FileURL,
		Line:           p.Line,
		Properties:     maps.Clone(p.Properties),
		SuspendPolicy:  policy,
		Condition:      p.Condition,
		LogExpression:  p.LogExpression,
		Temporary:      p.Temporary,
		HighlightRange: ModelToRange(p.HighlightRange),
		Group:          p.Group,
		Description:    p.Description,
	}, nil
}

// VariantToModel maps a Variant entity to its model equivalent.
func VariantToModel(v entity.Variant) model.Variant {
	return model.Variant{
		TypeID:         v.TypeID,
		Priority:       v.Priority,
		HighlightRange: RangeToModel(v.HighlightRange),
		Tooltip:        v.Tooltip,
		Properties:     maps.Clone(v.Properties),
	}
}

// ModelToVariant maps a model Variant to its entity equivalent.
func ModelToVariant(v model.Variant) entity.Variant {
	return entity.Variant{
		TypeID:         v.TypeID,
		Priority:       v.Priority,
		HighlightRange: ModelToRange(v.HighlightRange),
		Tooltip:        v.Tooltip,
		Properties:     maps.Clone(v.Properties),
	}
}

// MatchToModel maps a VariantMatch entity to its model equivalent.
func MatchToModel(m entity.VariantMatch) model.VariantMatch {
	var result model.VariantMatch
	if m.Variant != nil {
		v := VariantToModel(*m.Variant)
		result.Variant = &v
	}
	if m.Breakpoint != nil {
		b := BreakpointToModel(*m.Breakpoint)
		result.Breakpoint = &b
	}
	return result
}

// MatchesToModel maps resolved lines to the resolveVariants result, ordered by line.
func MatchesToModel(lines map[int][]entity.VariantMatch) *model.ResolveVariantsResult {
	result := &model.ResolveVariantsResult{Lines: make([]model.LineMatches, 0, len(lines))}
	for _, line := range slices.Sorted(maps.Keys(lines)) {
		matches := make([]model.VariantMatch, 0, len(lines[line]))
		for _, m := range lines[line] {
			matches = append(matches, MatchToModel(m))
		}
		result.Lines = append(result.Lines, model.LineMatches{Line: line, Matches: matches})
	}
	return result
}

// ModelToMatches maps the resolveVariants result back to resolved lines.
func ModelToMatches(result *model.ResolveVariantsResult) (map[int][]entity.VariantMatch, error) {
	lines := make(map[int][]entity.VariantMatch, len(result.Lines))
	for _, l := range result.Lines {
		matches := make([]entity.VariantMatch, 0, len(l.Matches))
		for _, m := range l.Matches {
			var match entity.VariantMatch
			if m.Variant != nil {
				v := ModelToVariant(*m.Variant)
				match.Variant = &v
			}
			if m.Breakpoint != nil {
				b, err := ModelToBreakpoint(*m.Breakpoint)
				if err != nil {
					return nil, err
				}
				match.Breakpoint = &b
			}
			matches = append(matches, match)
		}
		lines[l.Line] = matches
	}
	return lines, nil
}

// BreakpointTypeToModel maps a registered breakpoint type to its model description.
func BreakpointTypeToModel(t entity.BreakpointType) model.BreakpointType {
	return model.BreakpointType{
		ID:                    t.ID(),
		Priority:              t.Priority(),
		SupportsSuspendThread: t.SupportsSuspendThread(),
	}
}
