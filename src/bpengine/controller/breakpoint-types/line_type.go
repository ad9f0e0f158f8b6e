package breakpointtypes

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/uber/bp-engine/src/bpengine/entity"
)

const (
	// LineTypeID identifies plain line breakpoints.
	LineTypeID = "line"
	// LambdaOrdinalProperty discriminates line breakpoints placed inside function literals.
	// -1 stands for the line itself, outside any literal.
	LambdaOrdinalProperty = "lambdaOrdinal"

	_linePriority = 10
)

var _funcLiteral = regexp.MustCompile(`\bfunc\s*\(`)

type lineType struct{}

// NewLineType returns the breakpoint type that stops on a line, or inside one of its function literals.
func NewLineType() entity.BreakpointType {
	return lineType{}
}

func (lineType) ID() string {
	return LineTypeID
}

func (lineType) Priority() int {
	return _linePriority
}

func (lineType) SupportsSuspendThread() bool {
	return true
}

func (lineType) IsMultiVariant(v entity.Variant) bool {
	return v.Multi
}

func (lineType) CanPlaceAt(ctx context.Context, doc entity.DocumentSnapshot, line int) (bool, error) {
	text, err := doc.LineText(line)
	if err != nil {
		return false, err
	}
	trimmed := strings.TrimSpace(text)
	return trimmed != "" && !strings.HasPrefix(trimmed, "//"), nil
}

// ComputeVariants returns a single whole line variant, or, when the line holds function literals, a
// catch-all variant followed by the line itself and one variant per literal.
func (t lineType) ComputeVariants(ctx context.Context, doc entity.DocumentSnapshot, line int) ([]entity.Variant, error) {
	ok, err := t.CanPlaceAt(ctx, doc, line)
	if err != nil || !ok {
		return nil, err
	}
	text, err := doc.LineText(line)
	if err != nil {
		return nil, err
	}
	lineStart, err := doc.LineStartOffset(line)
	if err != nil {
		return nil, err
	}

	literals := findFuncLiterals(text)
	if len(literals) == 0 {
		return []entity.Variant{{
			TypeID:   LineTypeID,
			Priority: _linePriority,
			Tooltip:  "Line",
		}}, nil
	}

	variants := []entity.Variant{
		{
			TypeID:   LineTypeID,
			Priority: _linePriority,
			Tooltip:  "All",
			Multi:    true,
		},
		{
			TypeID:         LineTypeID,
			Priority:       _linePriority,
			HighlightRange: &entity.TextRange{Start: lineStart + firstNonSpace(text), End: lineStart + literals[0].Start},
			Tooltip:        "Line",
			Properties:     map[string]string{LambdaOrdinalProperty: "-1"},
		},
	}
	for i, l := range literals {
		variants = append(variants, entity.Variant{
			TypeID:         LineTypeID,
			Priority:       _linePriority,
			HighlightRange: &entity.TextRange{Start: lineStart + l.Start, End: lineStart + l.End},
			Tooltip:        "Lambda " + strconv.Itoa(i+1),
			Properties:     map[string]string{LambdaOrdinalProperty: strconv.Itoa(i)},
		})
	}
	return variants, nil
}

// findFuncLiterals returns the column range of each function literal, ending at its closing brace or at
// the end of the line.
func findFuncLiterals(text string) []entity.TextRange {
	var result []entity.TextRange
	for _, loc := range _funcLiteral.FindAllStringIndex(text, -1) {
		if strings.TrimSpace(text[:loc[0]]) == "" {
			// A declaration, not a literal.
			continue
		}
		result = append(result, entity.TextRange{Start: loc[0], End: literalEnd(text, loc[1])})
	}
	return result
}

func literalEnd(text string, from int) int {
	depth := 0
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(text)
}

func firstNonSpace(text string) int {
	return len(text) - len(strings.TrimLeft(text, " \t"))
}
