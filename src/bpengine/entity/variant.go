package entity

import (
	"context"
)

// Variant is a candidate placement a breakpoint type offers for a line. Variants are recomputed on demand.
type Variant struct {
	TypeID   string `json:"typeId"`
	Priority int    `json:"priority"`
	// HighlightRange is nil when the variant covers the whole line.
	HighlightRange *TextRange        `json:"highlightRange,omitempty"`
	Tooltip        string            `json:"tooltip"`
	Multi          bool              `json:"multi"`
	Properties     map[string]string `json:"properties,omitempty"`
}

// VariantMatch pairs a variant with the breakpoint placed for it. At least one side is non-nil.
type VariantMatch struct {
	Variant    *Variant    `json:"variant,omitempty"`
	Breakpoint *Breakpoint `json:"breakpoint,omitempty"`
}

// BreakpointType is a pluggable kind of line breakpoint.
type BreakpointType interface {
	// ID is the stable identifier shared by the frontend and the backend.
	ID() string
	// Priority orders types, higher first.
	Priority() int
	// SupportsSuspendThread reports whether SuspendThread is meaningful for this kind.
	SupportsSuspendThread() bool
	// IsMultiVariant reports whether a variant is a catch-all that must not be shown inline on its own.
	IsMultiVariant(v Variant) bool
	// CanPlaceAt reports whether a breakpoint of this kind may exist on the line.
	CanPlaceAt(ctx context.Context, doc DocumentSnapshot, line int) (bool, error)
	// ComputeVariants enumerates placements on the line in document order.
	// Implementations may return an IndexNotReadyError while the project is still indexing.
	ComputeVariants(ctx context.Context, doc DocumentSnapshot, line int) ([]Variant, error)
}
