// Package entity contains the domain logic for the breakpoint engine.
package entity

import (
	"fmt"
	"maps"

	"github.com/gofrs/uuid"
	"go.lsp.dev/uri"
)

// SuspendPolicy controls what is paused when a breakpoint is hit.
type SuspendPolicy int

const (
	// SuspendAll pauses every thread of the debuggee.
	SuspendAll SuspendPolicy = iota
	// SuspendThread pauses only the thread that hit the breakpoint.
	SuspendThread
	// SuspendNone never pauses, used by logging breakpoints.
	SuspendNone
)

// String implements fmt.Stringer.
func (p SuspendPolicy) String() string {
	switch p {
	case SuspendAll:
		return "all"
	case SuspendThread:
		return "thread"
	case SuspendNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseSuspendPolicy returns the policy matching the given name.
func ParseSuspendPolicy(name string) (SuspendPolicy, error) {
	switch name {
	case "", "all":
		return SuspendAll, nil
	case "thread":
		return SuspendThread, nil
	case "none":
		return SuspendNone, nil
	default:
		return SuspendAll, fmt.Errorf("unknown suspend policy %q", name)
	}
}

// TextRange is a half-open [Start, End) range of document offsets.
type TextRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of characters covered by the range.
func (r TextRange) Len() int {
	return r.End - r.Start
}

// String implements fmt.Stringer.
func (r TextRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Breakpoint is a single line breakpoint owned by the breakpoint registry.
type Breakpoint struct {
	ID      uuid.UUID `json:"id" zap:"id"`
	TypeID  string    `json:"typeId" zap:"typeId"`
	FileURL uri.URI   `json:"fileUrl" zap:"fileUrl"`
	// Line is 0-based.
	Line int `json:"line" zap:"line"`
	// Properties discriminate breakpoints of the same type on the same line, e.g. a lambda ordinal.
	Properties map[string]string `json:"properties,omitempty" zap:"-"`

	Enabled       bool          `json:"enabled" zap:"enabled"`
	SuspendPolicy SuspendPolicy `json:"suspendPolicy" zap:"-"`
	Condition     string        `json:"condition,omitempty" zap:"-"`
	LogExpression string        `json:"logExpression,omitempty" zap:"-"`
	Temporary     bool          `json:"temporary" zap:"-"`
	// HighlightRange is nil when the breakpoint covers the whole line.
	HighlightRange *TextRange `json:"highlightRange,omitempty" zap:"-"`
	Group          string     `json:"group,omitempty" zap:"-"`
	Description    string     `json:"description,omitempty" zap:"-"`
}

// Clone returns a deep copy that can be handed out without sharing mutable state.
func (b Breakpoint) Clone() Breakpoint {
	c := b
	if b.HighlightRange != nil {
		r := *b.HighlightRange
		c.HighlightRange = &r
	}
	if b.Properties != nil {
		c.Properties = maps.Clone(b.Properties)
	}
	return c
}

// String implements fmt.Stringer.
func (b Breakpoint) String() string {
	return fmt.Sprintf("%s breakpoint %s at %s:%d", b.TypeID, b.ID, b.FileURL, b.Line)
}

// BreakpointRequest describes a breakpoint that should be created. New breakpoints start enabled.
type BreakpointRequest struct {
	TypeID         string
	FileURL        uri.URI
	Line           int
	Properties     map[string]string
	SuspendPolicy  SuspendPolicy
	Condition      string
	LogExpression  string
	Temporary      bool
	HighlightRange *TextRange
	Group          string
	Description    string
}

// BreakpointEventKind identifies a change to the breakpoint model.
type BreakpointEventKind int

const (
	// BreakpointAdded is fired after a breakpoint joins the registry.
	BreakpointAdded BreakpointEventKind = iota
	// BreakpointRemoved is fired after a breakpoint leaves the registry.
	BreakpointRemoved
	// BreakpointChanged is fired after any attribute of a registered breakpoint changed.
	BreakpointChanged
)

// String implements fmt.Stringer.
func (k BreakpointEventKind) String() string {
	switch k {
	case BreakpointAdded:
		return "added"
	case BreakpointRemoved:
		return "removed"
	case BreakpointChanged:
		return "changed"
	default:
		return "unknown"
	}
}
