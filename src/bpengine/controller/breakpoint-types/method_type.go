package breakpointtypes

import (
	"context"
	"regexp"

	"github.com/uber/bp-engine/src/bpengine/entity"
)

const (
	// MethodTypeID identifies breakpoints that stop on entry to a function.
	MethodTypeID = "method"
	// MethodNameProperty holds the name of the function a method breakpoint belongs to.
	MethodNameProperty = "method"

	_methodPriority = 20
)

var _funcDecl = regexp.MustCompile(`^\s*(func)\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)\s*[\[(]`)

type methodType struct{}

// NewMethodType returns the breakpoint type placed on function declarations.
func NewMethodType() entity.BreakpointType {
	return methodType{}
}

func (methodType) ID() string {
	return MethodTypeID
}

func (methodType) Priority() int {
	return _methodPriority
}

func (methodType) SupportsSuspendThread() bool {
	return true
}

func (methodType) IsMultiVariant(entity.Variant) bool {
	return false
}

func (methodType) CanPlaceAt(ctx context.Context, doc entity.DocumentSnapshot, line int) (bool, error) {
	text, err := doc.LineText(line)
	if err != nil {
		return false, err
	}
	return _funcDecl.MatchString(text), nil
}

func (methodType) ComputeVariants(ctx context.Context, doc entity.DocumentSnapshot, line int) ([]entity.Variant, error) {
	text, err := doc.LineText(line)
	if err != nil {
		return nil, err
	}
	m := _funcDecl.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, nil
	}
	lineStart, err := doc.LineStartOffset(line)
	if err != nil {
		return nil, err
	}

	name := text[m[4]:m[5]]
	return []entity.Variant{{
		TypeID:         MethodTypeID,
		Priority:       _methodPriority,
		HighlightRange: &entity.TextRange{Start: lineStart + m[2], End: lineStart + len(text)},
		Tooltip:        "Method " + name,
		Properties:     map[string]string{MethodNameProperty: name},
	}}, nil
}
