// Package model holds the records exchanged between the frontend and the backend.
package model

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Methods served by the backend.
const (
	MethodOpenDocument     = "bpengine/openDocument"
	MethodChangeDocument   = "bpengine/changeDocument"
	MethodCloseDocument    = "bpengine/closeDocument"
	MethodAddBreakpoint    = "bpengine/addBreakpoint"
	MethodRemoveBreakpoint = "bpengine/removeBreakpoint"
	MethodSetEnabled       = "bpengine/setEnabled"
	MethodSetCondition     = "bpengine/setCondition"
	MethodSetLine          = "bpengine/setLine"
	MethodSetFile          = "bpengine/setFile"
	MethodGetBreakpoint    = "bpengine/getBreakpoint"
	MethodGetBreakpoints   = "bpengine/getBreakpoints"
	MethodResolveVariants  = "bpengine/resolveVariants"
	MethodQueueUpdate      = "bpengine/queueUpdate"
	MethodBreakpointTypes  = "bpengine/breakpointTypes"
)

// Topic scopes a request to one project.
type Topic struct {
	Project string `json:"project"`
}

// TextRange is a half-open range of document offsets.
type TextRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Breakpoint is the wire form of a line breakpoint.
type Breakpoint struct {
	ID             string            `json:"id"`
	TypeID         string            `json:"typeId"`
	FileURL        uri.URI           `json:"fileUrl"`
	Line           int               `json:"line"`
	Properties     map[string]string `json:"properties,omitempty"`
	Enabled        bool              `json:"enabled"`
	SuspendPolicy  string            `json:"suspendPolicy"`
	Condition      string            `json:"condition,omitempty"`
	LogExpression  string            `json:"logExpression,omitempty"`
	Temporary      bool              `json:"temporary,omitempty"`
	HighlightRange *TextRange        `json:"highlightRange,omitempty"`
	Group          string            `json:"group,omitempty"`
	Description    string            `json:"description,omitempty"`
}

// Variant is the wire form of a placement offered by a breakpoint type.
type Variant struct {
	TypeID         string            `json:"typeId"`
	Priority       int               `json:"priority"`
	HighlightRange *TextRange        `json:"highlightRange,omitempty"`
	Tooltip        string            `json:"tooltip,omitempty"`
	Properties     map[string]string `json:"properties,omitempty"`
}

// VariantMatch pairs a variant with its breakpoint. At least one side is set.
type VariantMatch struct {
	Variant    *Variant    `json:"variant,omitempty"`
	Breakpoint *Breakpoint `json:"breakpoint,omitempty"`
}

// LineMatches holds the matches of one line.
type LineMatches struct {
	Line    int            `json:"line"`
	Matches []VariantMatch `json:"matches"`
}

// BreakpointType describes a registered kind of breakpoint.
type BreakpointType struct {
	ID                    string `json:"id"`
	Priority              int    `json:"priority"`
	SupportsSuspendThread bool   `json:"supportsSuspendThread"`
}

// OpenDocumentParams opens, or resynchronizes, a document.
type OpenDocumentParams struct {
	Topic
	URI  uri.URI `json:"uri"`
	Text string  `json:"text"`
}

// ChangeDocumentParams applies edits to an open document. A non-nil Text replaces the whole content.
type ChangeDocumentParams struct {
	Topic
	URI     uri.URI                                   `json:"uri"`
	Changes []protocol.TextDocumentContentChangeEvent `json:"changes,omitempty"`
	Text    *string                                   `json:"text,omitempty"`
}

// DocumentStamp is the modification stamp of a document after a change.
type DocumentStamp struct {
	Stamp int64 `json:"stamp"`
}

// CloseDocumentParams closes a document.
type CloseDocumentParams struct {
	Topic
	URI uri.URI `json:"uri"`
}

// AddBreakpointParams requests a new breakpoint.
type AddBreakpointParams struct {
	Topic
	TypeID         string            `json:"typeId"`
	FileURL        uri.URI           `json:"fileUrl"`
	Line           int               `json:"line"`
	Properties     map[string]string `json:"properties,omitempty"`
	SuspendPolicy  string            `json:"suspendPolicy,omitempty"`
	Condition      string            `json:"condition,omitempty"`
	LogExpression  string            `json:"logExpression,omitempty"`
	Temporary      bool              `json:"temporary,omitempty"`
	HighlightRange *TextRange        `json:"highlightRange,omitempty"`
	Group          string            `json:"group,omitempty"`
	Description    string            `json:"description,omitempty"`
}

// BreakpointIDParams addresses a breakpoint by id.
type BreakpointIDParams struct {
	Topic
	ID string `json:"id"`
}

// SetEnabledParams enables or disables a breakpoint.
type SetEnabledParams struct {
	Topic
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// SetConditionParams changes the condition of a breakpoint.
type SetConditionParams struct {
	Topic
	ID        string `json:"id"`
	Condition string `json:"condition"`
}

// SetLineParams moves a breakpoint within its file.
type SetLineParams struct {
	Topic
	ID   string `json:"id"`
	Line int    `json:"line"`
}

// SetFileParams moves a breakpoint to another file.
type SetFileParams struct {
	Topic
	ID      string  `json:"id"`
	FileURL uri.URI `json:"fileUrl"`
	Line    int     `json:"line"`
}

// GetBreakpointsParams lists breakpoints, optionally of one file.
type GetBreakpointsParams struct {
	Topic
	FileURL uri.URI `json:"fileUrl,omitempty"`
}

// ResolveVariantsParams asks for the variant matches of document lines.
type ResolveVariantsParams struct {
	Topic
	URI   uri.URI `json:"uri"`
	Lines []int   `json:"lines"`
}

// ResolveVariantsResult holds the matches of every requested line, ordered by line.
type ResolveVariantsResult struct {
	Lines []LineMatches `json:"lines"`
}

// QueueUpdateParams schedules a visual update of a document or one of its lines.
type QueueUpdateParams struct {
	Topic
	URI  uri.URI `json:"uri"`
	Line *int    `json:"line,omitempty"`
	Now  bool    `json:"now,omitempty"`
}

// BreakpointTypesParams lists the registered breakpoint types.
type BreakpointTypesParams struct {
	Topic
}
